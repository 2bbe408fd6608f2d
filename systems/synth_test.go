package systems

import (
	"reflect"
	"testing"

	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/gamemath"
	"github.com/automoto/fragclient/shared/netconfig"
)

func TestYawWraps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{181, -179},
		{-181, 179},
		{180, 180},
		{45, 45},
	}
	for _, tt := range tests {
		in, _ := newTestInput(t)
		in.View.ViewAngles[gamemath.Yaw] = tt.in
		cmd := frame(in, 16)
		if got := in.View.ViewAngles[gamemath.Yaw]; got != tt.want {
			t.Fatalf("yaw %v: got %v, want %v", tt.in, got, tt.want)
		}
		if got, want := cmd.Angles[gamemath.Yaw], gamemath.AngleToShort(tt.want); got != want {
			t.Fatalf("yaw %v: command angle got %d, want %d", tt.in, got, want)
		}
	}
}

func TestPitchClamp(t *testing.T) {
	in, _ := newTestInput(t)
	in.View.ViewAngles[gamemath.Pitch] = 150
	cmd := frame(in, 16)
	if got := in.View.ViewAngles[gamemath.Pitch]; got != 90 {
		t.Fatalf("got %v, want 90", got)
	}
	if got, want := cmd.Angles[gamemath.Pitch], gamemath.AngleToShort(90); got != want {
		t.Fatalf("command pitch got %d, want %d", got, want)
	}

	in.View.ViewAngles[gamemath.Pitch] = -150
	frame(in, 16)
	if got := in.View.ViewAngles[gamemath.Pitch]; got != -90 {
		t.Fatalf("got %v, want -90", got)
	}
}

func TestPitchThirdPerson(t *testing.T) {
	in, _ := newTestInput(t)
	in.Cfg.ThirdPerson = true
	in.View.ViewAngles[gamemath.Pitch] = 150
	frame(in, 16)
	if got := in.View.ViewAngles[gamemath.Pitch]; got != 150 {
		t.Fatalf("got %v, want 150", got)
	}
	in.View.ViewAngles[gamemath.Pitch] = 200
	frame(in, 16)
	if got := in.View.ViewAngles[gamemath.Pitch]; got != 180 {
		t.Fatalf("got %v, want 180", got)
	}
}

func TestPitchChangePerFrameLimited(t *testing.T) {
	in, _ := newTestInput(t)
	in.Cfg.ThirdPerson = true
	in.Cfg.Gyroscope = true
	in.Axes.Gyroscope[1] = 16384 * 120
	frame(in, 16)
	if got := in.View.ViewAngles[gamemath.Pitch]; got != 90 {
		t.Fatalf("got %v, want 90", got)
	}
	if in.Axes.Gyroscope != [3]int{} {
		t.Fatalf("gyroscope not consumed: %v", in.Axes.Gyroscope)
	}
}

func TestGyroscopeAxesSwap(t *testing.T) {
	in, _ := newTestInput(t)
	in.Cfg.Gyroscope = true
	in.Cfg.GyroscopeAxesSwap = cfg.GyroSwapX | cfg.GyroSwapXY
	in.Axes.Gyroscope[0] = 16384
	frame(in, 0)
	if got := in.View.ViewAngles[gamemath.Pitch]; got != -1 {
		t.Fatalf("pitch got %v, want -1", got)
	}
	if got := in.View.ViewAngles[gamemath.Yaw]; got != 0 {
		t.Fatalf("yaw got %v, want 0", got)
	}
}

func TestRollClearedWithoutGyroscope(t *testing.T) {
	in, _ := newTestInput(t)
	in.View.ViewAngles[gamemath.Roll] = 5
	frame(in, 16)
	if got := in.View.ViewAngles[gamemath.Roll]; got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestSwipeDecays(t *testing.T) {
	in, _ := newTestInput(t)
	in.Touch.SwipeActivated = true
	in.Touch.SwipeAngleRotate = 10

	for _, want := range []float64{4, 8, 10} {
		frame(in, 20)
		if got := in.View.ViewAngles[gamemath.Yaw]; got != want {
			t.Fatalf("yaw got %v, want %v", got, want)
		}
	}
	if in.Touch.SwipeActivated {
		t.Fatalf("swipe still active")
	}
	if in.Touch.SwipeTime != 60 {
		t.Fatalf("swipe time got %d, want 60", in.Touch.SwipeTime)
	}
}

func TestKeyMoveRunAndWalk(t *testing.T) {
	in, _ := newTestInput(t)
	in.Frame.FrameTime = 100
	Exec(in, "+forward 119 100")
	cmd := frame(in, 50)
	if cmd.ForwardMove != 127 || cmd.Buttons&netconfig.ButtonWalking != 0 {
		t.Fatalf("run: forward %d buttons %b", cmd.ForwardMove, cmd.Buttons)
	}

	Exec(in, "+speed 16 150")
	cmd = frame(in, 50)
	if cmd.ForwardMove != 64 || cmd.Buttons&netconfig.ButtonWalking == 0 {
		t.Fatalf("walk: forward %d buttons %b", cmd.ForwardMove, cmd.Buttons)
	}
}

func TestKeyMoveStrafe(t *testing.T) {
	in, _ := newTestInput(t)
	in.Frame.FrameTime = 100
	Exec(in, "+right 200 100")
	Exec(in, "+strafe 201 100")
	cmd := frame(in, 50)
	if cmd.RightMove != 127 {
		t.Fatalf("right move got %d, want 127", cmd.RightMove)
	}
	if got := in.View.ViewAngles[gamemath.Yaw]; got != 0 {
		t.Fatalf("turned by %v while strafing", got)
	}
}

func TestButtonBits(t *testing.T) {
	in, _ := newTestInput(t)
	Exec(in, "+button5 20 0")
	Exec(in, "-button5 20 0")
	cmd := frame(in, 16)
	if cmd.Buttons&(1<<5) == 0 {
		t.Fatalf("short press lost: %b", cmd.Buttons)
	}
	cmd = frame(in, 16)
	if cmd.Buttons&(1<<5) != 0 {
		t.Fatalf("short press sent twice: %b", cmd.Buttons)
	}

	in.Keys.KeysDown[65] = true
	cmd = frame(in, 16)
	if cmd.Buttons&netconfig.ButtonAny == 0 {
		t.Fatalf("any key bit missing: %b", cmd.Buttons)
	}

	in.Keys.Catcher = netconfig.KeyCatchConsole
	cmd = frame(in, 16)
	if cmd.Buttons&netconfig.ButtonTalk == 0 || cmd.Buttons&netconfig.ButtonAny != 0 {
		t.Fatalf("catcher bits wrong: %b", cmd.Buttons)
	}
}

func TestRailgunAutoZoom(t *testing.T) {
	in, log := newTestInput(t)
	in.Cgame.Weapon = netconfig.WeaponRailgun

	Exec(in, "+attack 200 0")
	if cmd := frame(in, 16); cmd.Buttons&netconfig.ButtonAttack != 0 {
		t.Fatalf("fired on press")
	}
	if cmd := frame(in, 16); cmd.Buttons&netconfig.ButtonAttack != 0 {
		t.Fatalf("fired while zoomed")
	}
	if !reflect.DeepEqual(log.lines, []string{"+zoom"}) {
		t.Fatalf("commands after press: %v", log.lines)
	}

	Exec(in, "-attack 200 40")
	if cmd := frame(in, 16); cmd.Buttons&netconfig.ButtonAttack == 0 {
		t.Fatalf("release did not fire")
	}
	if cmd := frame(in, 16); cmd.Buttons&netconfig.ButtonAttack != 0 {
		t.Fatalf("fired twice")
	}
	if !reflect.DeepEqual(log.lines, []string{"+zoom", "-zoom"}) {
		t.Fatalf("commands after release: %v", log.lines)
	}
}

func TestAimingSubtractsDeltaPitch(t *testing.T) {
	in, _ := newTestInput(t)
	in.View.ViewAngles[gamemath.Pitch] = 10
	in.View.DeltaAngles[gamemath.Pitch] = gamemath.AngleToShort(5)
	cmd := frame(in, 16)
	want := gamemath.AngleToShort(10 - gamemath.ShortToAngle(gamemath.AngleToShort(5)))
	if cmd.Angles[gamemath.Pitch] != want {
		t.Fatalf("got %d, want %d", cmd.Angles[gamemath.Pitch], want)
	}
}

func TestCameraAdjusterInThirdPerson(t *testing.T) {
	in, _ := newTestInput(t)
	in.Cfg.ThirdPerson = true
	var seen [3]float64
	in.Hooks.AdjustCamera = func(view [3]float64) [3]float64 {
		seen = view
		return [3]float64{1, 2, 0}
	}
	in.View.ViewAngles[gamemath.Pitch] = -120
	cmd := frame(in, 16)
	if seen[gamemath.Pitch] != -90 {
		t.Fatalf("adjuster saw pitch %v, want -90", seen[gamemath.Pitch])
	}
	if cmd.Angles[gamemath.Yaw] != gamemath.AngleToShort(2) {
		t.Fatalf("command yaw got %d", cmd.Angles[gamemath.Yaw])
	}
}

func TestFinishMove(t *testing.T) {
	in, _ := newTestInput(t)
	in.Cgame.Weapon = 3
	in.Cgame.ServerTime = 4242
	cmd := frame(in, 16)
	if cmd.Weapon != 3 || cmd.ServerTime != 4242 {
		t.Fatalf("got weapon %d time %d", cmd.Weapon, cmd.ServerTime)
	}
}

func TestCreateNewCommands(t *testing.T) {
	in, _ := newTestInput(t)
	store := &sliceStore{}

	in.Frame.Phase = netconfig.PhaseConnected
	if CreateNewCommands(in, store, 1000) || len(store.cmds) != 0 {
		t.Fatalf("command created before the gamestate")
	}

	in.Frame.Phase = netconfig.PhasePrimed
	CreateNewCommands(in, store, 1000)
	if in.Frame.FrameMsec != maxFrameMsec {
		t.Fatalf("frame msec got %d, want %d", in.Frame.FrameMsec, maxFrameMsec)
	}
	CreateNewCommands(in, store, 1016)
	if in.Frame.FrameMsec != 16 {
		t.Fatalf("frame msec got %d, want 16", in.Frame.FrameMsec)
	}
	if len(store.cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(store.cmds))
	}
}

func TestDebugGraph(t *testing.T) {
	in, _ := newTestInput(t)
	in.Cfg.DebugMove = cfg.DebugMoveYaw
	in.Touch.SwipeActivated = true
	in.Touch.SwipeAngleRotate = 3
	frame(in, 10)
	if got := in.Graph.Ordered(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("graph %v", got)
	}
}
