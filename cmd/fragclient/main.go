package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/automoto/fragclient/components"
	"github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/console"
	"github.com/automoto/fragclient/devices"
	"github.com/automoto/fragclient/fonts"
	"github.com/automoto/fragclient/hud"
	"github.com/automoto/fragclient/session"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/automoto/fragclient/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

const (
	layerGame ecs.LayerID = iota
	layerHUD
)

const graphScale = 4

type Game struct {
	ecs    *ecs.ECS
	sess   *session.Session
	poller *devices.Poller
	start  time.Time
	err    error
}

func NewGame(sess *session.Session, start time.Time) *Game {
	g := &Game{
		ecs:    ecs.NewECS(sess.World()),
		sess:   sess,
		poller: devices.NewPoller(),
		start:  start,
	}
	g.ecs.AddSystem(g.updateInput)
	g.ecs.AddSystem(g.updateConsole)
	g.ecs.AddRenderer(layerGame, drawTouch)
	g.ecs.AddRenderer(layerHUD, g.drawHUD)
	return g
}

func (g *Game) now() int {
	return int(time.Since(g.start).Milliseconds())
}

// updateInput polls the devices and runs one client frame.
func (g *Game) updateInput(_ *ecs.ECS) {
	now := g.now()
	g.poller.Poll(g.sess, now)
	if err := g.sess.Frame(now); err != nil && g.err == nil {
		g.err = err
	}

	captured := g.sess.Config().InputProfile == config.ProfileDesktop && g.sess.KeyCatcher() == 0
	if captured && ebiten.CursorMode() != ebiten.CursorModeCaptured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else if !captured && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (g *Game) updateConsole(_ *ecs.ECS) {
	g.sess.Slide().Run(1 / float64(ebiten.TPS()))
}

// drawTouch draws touch feedback for the local client.
func drawTouch(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := tags.LocalClient.First(e.World)
	if !ok {
		return
	}
	hud.DrawAttackButton(screen, components.Touch.Get(entry))
}

func (g *Game) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	c := g.sess.Config()
	con := g.sess.Console()
	if g.sess.KeyCatcher()&netconfig.KeyCatchConsole == 0 {
		hud.DrawNotify(screen, con, g.now(), int(c.ConsoleNotifyTime*1000))
	}
	if prompt, line, ok := g.sess.ChatLine(); ok {
		hud.DrawChat(screen, prompt, line)
	}
	hud.DrawConsole(screen, con, g.sess.Slide().Frac(), g.sess.EditLine())
	if c.DebugMove != config.DebugMoveOff {
		hud.DrawGraph(screen, g.sess.Graph(), graphScale)
	}
}

func (g *Game) Update() error {
	g.ecs.Update()
	return g.err
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ecs.DrawLayer(layerGame, screen)
	g.ecs.DrawLayer(layerHUD, screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	c := g.sess.Config()
	return c.VidWidth, c.VidHeight
}

func main() {
	server := flag.String("server", "127.0.0.1:27960", "server address, host:port for udp or a ws:// URL")
	transport := flag.String("transport", "udp", "transport: udp or ws")
	profile := flag.String("profile", "desktop", "input profile: desktop, touch or gamepad")
	flag.Parse()

	start := time.Now()
	con := console.New(console.DefaultTextSize, func() int {
		return int(time.Since(start).Milliseconds())
	})
	log.SetOutput(io.MultiWriter(os.Stderr, con))

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	c := config.C
	con.CheckResize(hud.ConsoleWidth(c.VidWidth))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t, err := session.Dial(ctx, *transport, *server)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	sess := session.New(t, c, con, session.Hooks{})

	if err := config.InitPersistence("fragclient"); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := config.LoadSettings(); err == nil && saved != nil {
		config.ApplySavedSettings(sess.Config(), sess.Bindings(), saved)
	}
	// an explicit flag beats the saved profile
	flag.Visit(func(f *flag.Flag) {
		if f.Name != "profile" {
			return
		}
		if p, ok := config.ParseInputProfile(*profile); ok {
			sess.Config().InputProfile = p
		} else {
			log.Printf("Warning: unknown input profile %q", *profile)
		}
	})
	log.Printf("[session] input profile %s", sess.Config().InputProfile)

	sess.Start(ctx)
	defer sess.Close()

	ebiten.SetWindowSize(c.VidWidth, c.VidHeight)
	ebiten.SetWindowTitle("fragclient")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	runErr := ebiten.RunGame(NewGame(sess, start))
	if err := config.SaveSettings(config.Snapshot(sess.Config(), sess.Bindings())); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
