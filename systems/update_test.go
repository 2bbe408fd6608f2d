package systems

import (
	"errors"
	"testing"
	"time"

	"github.com/automoto/fragclient/archetypes"
	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func newTestPipeline(t *testing.T) (*ecs.ECS, *PipelineData, *sliceStore, *[]int) {
	t.Helper()
	w := donburi.NewWorld()
	e := archetypes.SpawnClient(w, Pipeline)
	c := cfg.Default()
	store := &sliceStore{}
	sent := &[]int{}

	p := Pipeline.Get(e)
	p.Input = NewInput(e, &c, Hooks{})
	p.Store = store
	p.Send = func(realtime int) error {
		*sent = append(*sent, realtime)
		return nil
	}
	p.Input.Frame.Phase = netconfig.PhaseActive
	p.Pacing = PacingInput{
		Phase:         netconfig.PhaseActive,
		Address:       netconfig.AddressLoopback,
		SinceLastSend: time.Second,
		MaxPackets:    30,
	}

	x := ecs.NewECS(w)
	x.AddSystem(UpdateEvents)
	x.AddSystem(UpdateCommands)
	x.AddSystem(UpdatePacket)
	return x, p, store, sent
}

func TestPipelineBuildsAndSends(t *testing.T) {
	x, p, store, sent := newTestPipeline(t)
	p.Input.Frame.Realtime = 100
	x.Update()
	p.Input.Frame.Realtime = 116
	x.Update()

	if len(store.cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(store.cmds))
	}
	if len(*sent) != 2 || (*sent)[1] != 116 {
		t.Fatalf("sent at %v", *sent)
	}
	if p.Input.Frame.FrameTime != 116 {
		t.Fatalf("frame time %d", p.Input.Frame.FrameTime)
	}
}

func TestPipelineStopsOnError(t *testing.T) {
	x, p, store, sent := newTestPipeline(t)
	p.Input.Frame.Realtime = 100
	p.Fail(ErrBadAxis)
	p.Fail(errors.New("later"))
	x.Update()

	if !errors.Is(p.Err, ErrBadAxis) {
		t.Fatalf("kept %v, want the first error", p.Err)
	}
	if len(store.cmds) != 0 || len(*sent) != 0 {
		t.Fatalf("frame ran after an error: %d cmds, %d sends", len(store.cmds), len(*sent))
	}
}

func TestPipelinePacing(t *testing.T) {
	x, p, store, sent := newTestPipeline(t)
	p.Pacing.DemoPlaying = true
	p.Input.Frame.Realtime = 100
	x.Update()
	if len(store.cmds) != 1 || len(*sent) != 0 {
		t.Fatalf("demo playback: %d cmds, %d sends", len(store.cmds), len(*sent))
	}
}

func TestEventsApplyInArrivalOrder(t *testing.T) {
	x, p, _, _ := newTestPipeline(t)
	in := p.Input
	var seen []EventKind
	InputEvents.Subscribe(x.World, func(_ donburi.World, e InputEvent) {
		seen = append(seen, e.Kind)
		if e.Kind == EventKey && e.Down {
			// the position queued before the press is already applied
			if in.Touch.MouseX != 640 || in.Touch.MouseY != 20 {
				t.Fatalf("press saw mouse at %d,%d", in.Touch.MouseX, in.Touch.MouseY)
			}
		}
		p.Fail(ApplyEvent(in, e))
	})

	InputEvents.Publish(x.World, InputEvent{Kind: EventMouse, X: 640, Y: 20})
	InputEvents.Publish(x.World, InputEvent{Kind: EventKey, Key: cfg.KeyMouse1, Down: true, Time: 90})
	InputEvents.Publish(x.World, InputEvent{Kind: EventJoystick, Axis: int(cfg.AxisGamepadLeftX), Value: 300})
	p.Input.Frame.Realtime = 100
	x.Update()

	want := []EventKind{EventMouse, EventKey, EventJoystick}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
	if in.Axes.Joystick[cfg.AxisGamepadLeftX] != 300 {
		t.Fatalf("joystick axis not applied")
	}
}

func TestApplyEventBadAxis(t *testing.T) {
	in, _ := newTestInput(t)
	err := ApplyEvent(in, InputEvent{Kind: EventGyroscope, Axis: 7, Value: 1})
	if !errors.Is(err, ErrBadAxis) {
		t.Fatalf("got %v, want bad axis", err)
	}
}
