package systems

import (
	"math/rand"
	"testing"

	"github.com/automoto/fragclient/components"
	cfg "github.com/automoto/fragclient/config"
)

func TestTwoSourcesHoldButton(t *testing.T) {
	var b components.ButtonState

	KeyDown(&b, 17, 100)
	KeyDown(&b, 18, 120)
	if b.DownTime != 100 {
		t.Fatalf("downtime: got %d, want 100", b.DownTime)
	}

	KeyUp(&b, 17, 130, 16)
	if !b.Active {
		t.Fatalf("button released while source 18 still holds it")
	}

	KeyUp(&b, 99, 140, 16)
	if !b.Active {
		t.Fatalf("release from a non-holding source changed the button")
	}

	KeyUp(&b, 18, 150, 16)
	if b.Active {
		t.Fatalf("button still active after both sources released")
	}
	if b.Msec != 50 {
		t.Fatalf("msec: got %d, want 50", b.Msec)
	}
}

func TestThirdSourceIgnored(t *testing.T) {
	var b components.ButtonState
	KeyDown(&b, 1, 10)
	KeyDown(&b, 2, 10)
	KeyDown(&b, 3, 10)
	if b.Down != [2]int{1, 2} {
		t.Fatalf("slots: got %v, want [1 2]", b.Down)
	}
	KeyUp(&b, 3, 20, 16)
	KeyUp(&b, 1, 20, 16)
	if !b.Active {
		t.Fatalf("third source released the button")
	}
}

func TestRepeatDoesNotResetDownTime(t *testing.T) {
	var b components.ButtonState
	KeyDown(&b, 5, 100)
	b.WasPressed = false
	KeyDown(&b, 5, 300)
	if b.DownTime != 100 || b.WasPressed {
		t.Fatalf("repeat changed the latch: %+v", b)
	}
}

func TestKeyUpWithoutTimeAssumesHalfFrame(t *testing.T) {
	var b components.ButtonState
	KeyDown(&b, 5, 100)
	KeyUp(&b, 5, 0, 40)
	if b.Msec != 20 {
		t.Fatalf("msec: got %d, want 20", b.Msec)
	}
}

func TestKeyStateFraction(t *testing.T) {
	var b components.ButtonState

	KeyDown(&b, 17, 100)
	if got := KeyState(&b, 150, 50); got != 1 {
		t.Fatalf("held whole frame: got %v, want 1", got)
	}

	KeyUp(&b, 17, 175, 50)
	if got := KeyState(&b, 200, 50); got != 0.5 {
		t.Fatalf("released mid frame: got %v, want 0.5", got)
	}
	if got := KeyState(&b, 250, 50); got != 0 {
		t.Fatalf("after release: got %v, want 0", got)
	}
}

func TestKeyStateZeroFrame(t *testing.T) {
	var b components.ButtonState
	b.Msec = 10
	if got := KeyState(&b, 100, 0); got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
	if got := KeyState(&b, 100, 0); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestLatchRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 200; run++ {
		var b components.ButtonState
		now := 1
		for step := 0; step < 50; step++ {
			now += rng.Intn(20)
			source := 1 + rng.Intn(4)
			switch rng.Intn(5) {
			case 0:
				ReleaseAll(&b)
			case 1, 2:
				KeyDown(&b, source, now)
			default:
				KeyUp(&b, source, now, 16)
			}

			held := b.Down[0] != 0 || b.Down[1] != 0
			if b.Active != held {
				t.Fatalf("run %d step %d: active %v with slots %v", run, step, b.Active, b.Down)
			}

			if rng.Intn(3) == 0 {
				frac := KeyState(&b, now, 1+rng.Intn(40))
				if frac < 0 || frac > 1 {
					t.Fatalf("fraction out of range: %v", frac)
				}
				if b.Msec != 0 {
					t.Fatalf("bank not reset: %d", b.Msec)
				}
			}
		}
	}
}

func TestConsoleReleaseClearsBothSlots(t *testing.T) {
	in, _ := newTestInput(t)
	Exec(in, "+forward 17 100")
	Exec(in, "+forward")
	fwd := in.Buttons.Get(cfg.ButtonForward)
	if fwd.Down != [2]int{17, components.SourceConsole} {
		t.Fatalf("slots: got %v", fwd.Down)
	}
	Exec(in, "-forward")
	if fwd.Active || fwd.Down != [2]int{} {
		t.Fatalf("console release left %+v", *fwd)
	}
}
