package systems

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/automoto/fragclient/components"
	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/gamemath"
	"github.com/automoto/fragclient/shared/netconfig"
)

func TestAdjustCrosshairNearEdges(t *testing.T) {
	in := newTouchInput(t) // 1280x720, border 120, offset 60

	x, y := AdjustCrosshairNearEdges(in, 640, 360)
	if x != 580 || y != 300 {
		t.Fatalf("center: got %d,%d, want 580,300", x, y)
	}
	if in.Touch.CameraYawSpeed != 0 || in.Touch.CameraPitchSpeed != 0 {
		t.Fatalf("center moved the camera")
	}

	x, y = AdjustCrosshairNearEdges(in, 100, 360)
	if x != 0 || y != 300 {
		t.Fatalf("left edge: got %d,%d, want 0,300", x, y)
	}
	if in.Touch.CameraYawSpeed != 1 {
		t.Fatalf("left edge yaw speed %d", in.Touch.CameraYawSpeed)
	}

	AdjustCrosshairNearEdges(in, 640, 700)
	if in.Touch.CameraPitchSpeed != 1 || in.Touch.WeaponBarActive {
		t.Fatalf("bottom edge: pitch %d bar %v", in.Touch.CameraPitchSpeed, in.Touch.WeaponBarActive)
	}

	AdjustCrosshairNearEdges(in, 640, 50)
	if in.Touch.CameraPitchSpeed != -1 || !in.Touch.WeaponBarActive {
		t.Fatalf("top edge: pitch %d bar %v", in.Touch.CameraPitchSpeed, in.Touch.WeaponBarActive)
	}
}

func TestShootUnderFingerKeepsPosition(t *testing.T) {
	in := newTouchInput(t)
	in.Cfg.TouchControls = cfg.TouchShootUnderFinger
	x, y := AdjustCrosshairNearEdges(in, 100, 50)
	if x != 100 || y != 50 {
		t.Fatalf("got %d,%d, want 100,50", x, y)
	}
	if in.Touch.CameraYawSpeed != 1 {
		t.Fatalf("edge speed not set")
	}
}

func TestWeaponBarSelect(t *testing.T) {
	in, log := newTestInput(t)
	in.Cfg.InputProfile = cfg.ProfileTouch
	in.Cfg.TouchControls = cfg.TouchTapToFire
	in.Cgame.WeaponBarWidth = 100
	in.Cgame.WeaponBarWeapons = "1/2/5/"

	MouseEvent(in, 600, 50) // 300 in 640 wide units: third slot
	if !in.Touch.WeaponBarActive {
		t.Fatalf("weapon bar not active")
	}
	Exec(in, "+attack 200 100")
	if !reflect.DeepEqual(log.lines, []string{"weapon 5"}) {
		t.Fatalf("got %v", log.lines)
	}
	if in.Buttons.Get(cfg.ButtonAction0).Active {
		t.Fatalf("weapon pick also pressed attack")
	}
}

func TestUseItemCorner(t *testing.T) {
	in := newTouchInput(t)
	in.Cgame.HoldingUsableItem = true
	in.Touch.MouseX, in.Touch.MouseY = 1200, 50
	Exec(in, "+attack 200 100")
	use := in.Buttons.Get(cfg.Action(2))
	if use.Active || !use.WasPressed {
		t.Fatalf("use item latch %+v", *use)
	}
	cmd := frame(in, 16)
	if cmd.Buttons&netconfig.ButtonUseHoldable == 0 {
		t.Fatalf("use bit missing: %b", cmd.Buttons)
	}
}

func TestSwipeSnap(t *testing.T) {
	in := newTouchInput(t)
	in.Cfg.TouchControls = cfg.TouchTapToFire
	in.Frame.Phase = netconfig.PhaseActive
	in.Touch.MouseX, in.Touch.MouseY = 640, 360

	Exec(in, fmt.Sprintf("+attack %d 100", cfg.KeyMouse1))
	if !in.Touch.MouseSwipingActive || in.Touch.SwipeTime != 0 {
		t.Fatalf("swipe not started")
	}
	in.View.ViewAngles[gamemath.Yaw] = 30
	Exec(in, fmt.Sprintf("-attack %d 150", cfg.KeyMouse1))

	if !in.Touch.SwipeActivated || in.Touch.SwipeAngleRotate != 60 {
		t.Fatalf("snap: active %v rotate %v", in.Touch.SwipeActivated, in.Touch.SwipeAngleRotate)
	}
	if got := in.Touch.AttackButton[components.AttackButtonAlpha]; got != tapButtonAlpha {
		t.Fatalf("tap button alpha %v", got)
	}
	if in.Touch.TapMouseX != 640 {
		t.Fatalf("tap position not stored")
	}
}

func TestTapButtonFires(t *testing.T) {
	in := newTouchInput(t)
	in.Cfg.TouchControls = cfg.TouchTapToFire
	in.Touch.TapMouseX, in.Touch.TapMouseY = 640, 360
	in.Touch.AttackButton[components.AttackButtonAlpha] = 0.5
	in.Touch.MouseX, in.Touch.MouseY = 650, 370

	Exec(in, fmt.Sprintf("+attack %d 100", cfg.KeyMouse1))
	if !in.Buttons.Get(cfg.ButtonAction0).Active {
		t.Fatalf("tap on the fire button did not fire")
	}
	if in.Touch.AttackButton[components.AttackButtonAlpha] != 0 {
		t.Fatalf("fire button still shown")
	}
}

func TestMultitouchFloating(t *testing.T) {
	in := newTouchInput(t)
	var keys []int
	in.Hooks.QueueKey = func(key int, down bool) {
		if down {
			keys = append(keys, key)
		}
	}

	in.Touch.MouseX, in.Touch.MouseY = 640, 360
	Mouse2Event(in, 200, 350)
	MultitouchDown(in)
	if in.Touch.CameraMultitouchYawSpeed != 1 {
		t.Fatalf("yaw speed %d", in.Touch.CameraMultitouchYawSpeed)
	}
	MultitouchUp(in)

	Mouse2Event(in, 650, 100)
	MultitouchDown(in)
	if !reflect.DeepEqual(keys, []int{multitouchTurnKey}) {
		t.Fatalf("queued %v", keys)
	}
}

func TestMultitouchDragRotates(t *testing.T) {
	in := newTouchInput(t)
	in.Cfg.TouchControls = cfg.TouchSwipeToAim
	Mouse2Event(in, 100, 100)
	MultitouchDown(in)
	Mouse2Event(in, 110, 100)
	if got := in.View.ViewAngles[gamemath.Yaw]; got >= 0 {
		t.Fatalf("drag did not turn: %v", got)
	}
}

func TestCenterView(t *testing.T) {
	in, _ := newTestInput(t)
	in.Touch.JoystickJumpTriggerTime = 100
	Exec(in, "+centerview")
	if !in.Touch.SwipeActivated || in.Touch.JoystickJumpTriggerTime != 0 {
		t.Fatalf("center view not started")
	}

	in, _ = newTestInput(t)
	in.Cfg.FreeLook = false
	Exec(in, "+mlook")
	if !in.Buttons.MLooking {
		t.Fatalf("mlook not set")
	}
	Exec(in, "-mlook")
	if in.Buttons.MLooking || !in.Touch.SwipeActivated {
		t.Fatalf("mlook release without freelook should center")
	}
}
