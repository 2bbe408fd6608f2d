// Package session ties one client together: the input world, the
// connection and the command stream it feeds, and the console.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/automoto/fragclient/archetypes"
	"github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/console"
	"github.com/automoto/fragclient/network"
	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/automoto/fragclient/systems"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Hooks are the game module's side of the session. Any of them may be nil.
type Hooks struct {
	// AdjustCamera places a third person or floating crosshair camera and
	// returns the angles the command aims at.
	AdjustCamera func(view [3]float64) [3]float64
	// MouseMoved receives the cursor while the UI or the game module has
	// the mouse.
	MouseMoved func(x, y int)
	// Command runs game commands such as "+zoom" or "weapon 3". Returning
	// false forwards the command to the server.
	Command func(line string) bool
	// CrosshairPlayer and LastAttacker name the client a private chat
	// goes to, or -1 for nobody.
	CrosshairPlayer func() int
	LastAttacker    func() int
}

// Session is the state of one client. It is not safe for concurrent use:
// input is queued and frames are run from the same goroutine.
type Session struct {
	world donburi.World
	ecs   *ecs.ECS
	entry *donburi.Entry
	in    *systems.Input
	pipe  *systems.PipelineData
	cfg   *config.ClientConfig
	hooks Hooks

	bindings map[int]string
	con      *console.Console
	slide    *console.Slide
	editLine []rune
	chat     chat

	bindingKey int // key whose binding is running, 0 otherwise

	conn *network.Connection
	cmds *network.CommandBuffer
	tx   *network.Transmitter

	started     bool
	realtime    int
	demoPlaying bool
	downloading bool

	// server clock, extrapolated from the newest ack
	ackCount       int
	ackServerTime  int32
	ackRealtime    int
	lastServerTime int32

	// keys injected while the queue drains wait for the next frame
	draining bool
	deferred []systems.InputEvent
}

// New creates a session over t. The session keeps its own copy of c.
func New(t network.Transport, c config.ClientConfig, con *console.Console, hooks Hooks) *Session {
	if con == nil {
		con = console.New(console.DefaultTextSize, nil)
	}
	cc := c
	s := &Session{
		world:    donburi.NewWorld(),
		cfg:      &cc,
		hooks:    hooks,
		bindings: config.DefaultBindings(),
		con:      con,
		chat:     chat{target: -1},
		slide:    console.NewSlide(c.ConsoleSpeed),
		conn:     network.NewConnection(t),
		cmds:     network.NewCommandBuffer(),
	}
	s.tx = network.NewTransmitter(s.conn, s.cmds, uint16(rand.IntN(1<<16)))
	s.entry = archetypes.SpawnClient(s.world, systems.Pipeline)
	s.in = systems.NewInput(s.entry, s.cfg, systems.Hooks{
		Exec:         s.Exec,
		AdjustCamera: hooks.AdjustCamera,
		MouseMoved:   hooks.MouseMoved,
		QueueKey: func(key int, down bool) {
			s.QueueKey(key, down, s.realtime)
		},
	})
	s.pipe = systems.Pipeline.Get(s.entry)
	s.pipe.Input = s.in
	s.pipe.Store = s.cmds
	s.pipe.Send = func(realtime int) error {
		return s.tx.WritePacket(realtime, s.cfg)
	}

	s.ecs = ecs.NewECS(s.world)
	s.ecs.AddSystem(systems.UpdateEvents)
	s.ecs.AddSystem(systems.UpdateCommands)
	s.ecs.AddSystem(systems.UpdatePacket)

	s.subscribe()
	return s
}

// Start runs the connection's receive loop until ctx is done.
func (s *Session) Start(ctx context.Context) {
	log.Printf("[session] connecting over %s transport", s.conn.Address())
	s.conn.Start(ctx)
}

// Close drops the connection.
func (s *Session) Close() {
	s.conn.Drop(errors.New("session closed"))
}

// Frame runs one client tick at realtime ms: it drains the input queued
// since the previous tick, builds this tick's command and sends a packet
// if the pacing gate allows. It returns the error that ended the session,
// if any.
func (s *Session) Frame(realtime int) error {
	st := s.conn.State()
	if st.Phase == netconfig.PhaseDisconnected {
		if err := s.conn.LastError(); err != nil {
			return err
		}
		return network.ErrNotConnected
	}

	f := s.in.Frame
	if !s.started {
		// nothing to measure the first frame against
		s.started = true
		s.realtime = realtime
		f.OldFrameTime = realtime
	}
	f.Frametime = realtime - s.realtime
	f.Realtime = realtime
	s.realtime = realtime
	f.Phase = st.Phase
	s.in.View.DeltaAngles = st.DeltaAngles
	s.in.Cgame.ServerTime = s.serverTime(st, realtime)

	s.pipe.Err = nil
	s.pipe.Pacing = systems.PacingInput{
		Phase:           st.Phase,
		DemoPlaying:     s.demoPlaying,
		Downloading:     s.downloading,
		Address:         s.conn.Address(),
		LANForcePackets: s.cfg.LANForcePackets,
		SinceLastSend:   s.tx.SinceLastSend(realtime),
		MaxPackets:      s.cfg.MaxPackets,
	}

	s.draining = true
	s.ecs.Update()
	s.draining = false
	for _, e := range s.deferred {
		systems.InputEvents.Publish(s.world, e)
	}
	s.deferred = s.deferred[:0]

	err := s.pipe.Err
	if errors.Is(err, systems.ErrBadAxis) {
		s.drop(err)
	}
	return err
}

// serverTime extrapolates the server clock from the newest ack. It never
// runs backwards.
func (s *Session) serverTime(st network.ServerState, realtime int) int32 {
	if st.Acks != s.ackCount {
		s.ackCount = st.Acks
		s.ackServerTime = st.ServerTime
		s.ackRealtime = realtime
	}
	if s.ackCount == 0 {
		return 0
	}
	t := s.ackServerTime + int32(realtime-s.ackRealtime)
	if t < s.lastServerTime {
		t = s.lastServerTime
	}
	s.lastServerTime = t
	return t
}

func (s *Session) drop(err error) {
	log.Printf("[session] dropped: %v", err)
	s.conn.Drop(err)
	for i := range s.in.Buttons.Buttons {
		systems.ReleaseAll(&s.in.Buttons.Buttons[i])
	}
}

// AddReliableCommand sends text to the server reliably. Overflowing the
// reliable window drops the session.
func (s *Session) AddReliableCommand(text string) error {
	if err := s.conn.AddReliableCommand(text); err != nil {
		if errors.Is(err, network.ErrCommandOverflow) {
			s.drop(err)
		}
		return fmt.Errorf("reliable command: %w", err)
	}
	return nil
}

// SetKeyCatcher sets which layers hold keyboard focus.
func (s *Session) SetKeyCatcher(catcher int) {
	s.in.Keys.Catcher = catcher
}

func (s *Session) KeyCatcher() int {
	return s.in.Keys.Catcher
}

// SetCgameState is what the game module reports each frame.
func (s *Session) SetCgameState(weapon uint8, sensitivity float64) {
	s.in.Cgame.Weapon = weapon
	s.in.Cgame.Sensitivity = sensitivity
}

// SetWeaponBar describes the touch weapon bar: its half width in 640 wide
// units, 0 when hidden, and the weapons on it ("1/2/5/").
func (s *Session) SetWeaponBar(width int, weapons string) {
	s.in.Cgame.WeaponBarWidth = width
	s.in.Cgame.WeaponBarWeapons = weapons
}

func (s *Session) SetHoldingUsableItem(holding bool) {
	s.in.Cgame.HoldingUsableItem = holding
}

func (s *Session) SetDemoPlaying(playing bool) {
	s.demoPlaying = playing
}

func (s *Session) SetDownloading(downloading bool) {
	s.downloading = downloading
}

func (s *Session) SetThirdPerson(on bool) {
	s.cfg.ThirdPerson = on
}

// ViewAngles returns the local view direction in degrees.
func (s *Session) ViewAngles() [3]float64 {
	return s.in.View.ViewAngles
}

// LastCommand is the most recent command built.
func (s *Session) LastCommand() messages.UserCmd {
	return s.in.Frame.LastCmd
}

// Graph returns the debug graph samples, oldest first.
func (s *Session) Graph() []float64 {
	return s.in.Graph.Ordered()
}

func (s *Session) Config() *config.ClientConfig { return s.cfg }

func (s *Session) Console() *console.Console { return s.con }

func (s *Session) Slide() *console.Slide { return s.slide }

func (s *Session) Connection() *network.Connection { return s.conn }

func (s *Session) Commands() *network.CommandBuffer { return s.cmds }

func (s *Session) Transmitter() *network.Transmitter { return s.tx }

func (s *Session) World() donburi.World { return s.world }

// Bindings returns the live key binding table.
func (s *Session) Bindings() map[int]string { return s.bindings }
