package systems

import (
	"math"
	"strings"

	"github.com/automoto/fragclient/components"
	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/gamemath"
	"github.com/automoto/fragclient/shared/netconfig"
)

const (
	swipeSnapMsec     = 300
	tapButtonAlpha    = 0.75
	weaponSlotWidth   = 40 // weapon bar slot, 640 wide units
	virtualWidth      = 640
	multitouchTurnKey = '/'
)

// MouseEvent stores the cursor and forwards it, pulled in from the screen
// edges in the touch aiming modes, to the game module. While the UI has
// focus the raw position is forwarded.
func MouseEvent(in *Input, x, y int) {
	t := in.Touch
	t.MouseX, t.MouseY = x, y

	if in.Keys.Catcher&netconfig.KeyCatchUI == 0 && in.Cfg.InputProfile != cfg.ProfileDesktop {
		x, y = AdjustCrosshairNearEdges(in, x, y)
	}
	if in.Hooks.MouseMoved != nil {
		in.Hooks.MouseMoved(x, y)
	}
}

// MouseDeltaEvent accumulates captured mouse motion for the next command.
func MouseDeltaEvent(in *Input, dx, dy int) {
	in.Axes.MouseDX += dx
	in.Axes.MouseDY += dy
}

// Mouse2Event tracks the second finger. Dragging it rotates the view
// unless the crosshair floats.
func Mouse2Event(in *Input, x, y int) {
	t := in.Touch
	if !in.controls(cfg.TouchFloatingCrosshair) && t.MultitouchActive {
		scale := in.Cfg.Sensitivity * in.Cgame.Sensitivity * 0.05
		in.View.ViewAngles[gamemath.Yaw] -= float64(x-t.MultitouchX) * scale
		in.View.ViewAngles[gamemath.Pitch] += float64(y-t.MultitouchY) * scale
	}
	t.MultitouchX, t.MultitouchY = x, y
}

// AdjustCrosshairNearEdges sets the edge camera speeds and weapon bar flag
// for a finger at x, y and returns where the crosshair should be drawn.
func AdjustCrosshairNearEdges(in *Input, x, y int) (int, int) {
	t, c := in.Touch, in.Cfg
	w, h := c.VidWidth, c.VidHeight
	border := h / 6
	offset := int(float64(border/2) * c.SwipeFreeCrosshairOffset)
	origX, origY := x, y

	t.CameraYawSpeed = 0
	t.CameraPitchSpeed = 0
	t.WeaponBarActive = false

	if !in.touchAiming() {
		if c.WeaponBarAtBottom {
			t.WeaponBarActive = y > h-border
		} else {
			t.WeaponBarActive = y < border
		}
		return x, y
	}

	sticky := c.SwipeFreeStickyEdges
	if x < border*3 {
		if x < border*2 {
			t.CameraYawSpeed = 1
		}
		if sticky {
			x = stickyEdge(x, border*3, border*2, offset)
		}
	} else if x > w-border*2 {
		if x > w-border {
			t.CameraYawSpeed = -1
		}
		if sticky {
			x = stickyEdge(x, w-border*2, w-border, w+offset)
		}
	}

	if y < border*2 {
		if y < border {
			t.CameraPitchSpeed = -1
			t.WeaponBarActive = !c.WeaponBarAtBottom
		}
		if sticky {
			y = stickyEdge(y, border*2, border, offset)
		}
	} else if y > h-border*2 {
		if y > h-border {
			t.CameraPitchSpeed = 1
			t.WeaponBarActive = c.WeaponBarAtBottom
		}
		if sticky {
			y = stickyEdge(y, h-border*2, h-border, h+offset)
		}
	}

	if c.TouchControls == cfg.TouchShootUnderFinger {
		return origX, origY
	}

	x -= offset
	y -= offset
	x = max(0, min(x, w-1))
	y = max(0, min(y, h-1))
	return x, y
}

// stickyEdge stretches the band between edge and from so that reaching
// from lands on to.
func stickyEdge(src, edge, from, to int) int {
	return edge + (src-edge)*(to-edge)/(from-edge)
}

func (in *Input) weaponBarHit(weaponX int) bool {
	t, w := in.Touch, in.Cgame.WeaponBarWidth
	if !t.WeaponBarActive {
		return false
	}
	if in.Cfg.WeaponBarAtBottom {
		return weaponX > virtualWidth-w*2
	}
	return weaponX > virtualWidth/2-w && weaponX < virtualWidth/2+w
}

// weaponAt returns the weapon in the bar slot under weaponX.
func (in *Input) weaponAt(weaponX int) (string, bool) {
	w := in.Cgame.WeaponBarWidth
	var slot int
	if in.Cfg.WeaponBarAtBottom {
		slot = (weaponX - virtualWidth + w*2) / weaponSlotWidth
	} else {
		slot = (weaponX - virtualWidth/2 + w) / weaponSlotWidth
	}
	parts := strings.Split(in.Cgame.WeaponBarWeapons, "/")
	// every weapon is terminated by a slash, the last part is never one
	if slot < 0 || slot >= len(parts)-1 || parts[slot] == "" {
		return "", false
	}
	return parts[slot], true
}

// AttackDown handles +attack. On touch profiles the primary finger may
// instead use an item, pick a weapon from the bar, or start a swipe.
func AttackDown(in *Input, source, downTime int) {
	attack := in.Buttons.Get(cfg.ButtonAction0)
	if in.Cfg.InputProfile == cfg.ProfileDesktop {
		KeyDown(attack, source, downTime)
		return
	}

	t, c, v := in.Touch, in.Cfg, &in.View.ViewAngles
	w, h := c.VidWidth, c.VidHeight
	weaponX := t.MouseX * virtualWidth / max(w, 1)

	switch {
	case in.Cgame.HoldingUsableItem && t.MouseY < h/6 && t.MouseX > w*5/6:
		use := in.Buttons.Get(cfg.Action(2))
		KeyDown(use, source, downTime)
		KeyUp(use, source, downTime, in.Frame.FrameMsec)
		return
	case in.weaponBarHit(weaponX):
		if weapon, ok := in.weaponAt(weaponX); ok {
			in.exec("weapon " + weapon)
		}
		return
	case c.TouchControls == cfg.TouchFloatingCrosshair, source != cfg.KeyMouse1:
		KeyDown(attack, source, downTime)
		return
	}

	tc := c.TouchControls
	t.MouseSwipingActive = true
	if tc != cfg.TouchShootUnderFinger {
		t.SwipeTime = 0
		t.SwipeAngleRotate = v[gamemath.Yaw]
		t.SwipeActivated = false
	}

	if tc == cfg.TouchTapToFire || tc == cfg.TouchAimUnderFinger {
		tap := h / 6 / 2
		if t.AttackButton[components.AttackButtonAlpha] > 0 &&
			abs(t.MouseX-t.TapMouseX) < tap && abs(t.MouseY-t.TapMouseY) < tap {
			KeyDown(attack, source, downTime)
		}
		t.AttackButton[components.AttackButtonAlpha] = 0
	}

	if attack.Active || (tc != cfg.TouchShootUnderFinger && tc != cfg.TouchAimUnderFinger) {
		return
	}

	sens := in.Cgame.Sensitivity
	yaw := -gamemath.Rad2Deg(math.Atan(float64(t.MouseX-w/2)*2/float64(w))) * sens
	pitch := gamemath.Rad2Deg(math.Atan(float64(t.MouseY-h/2)*2/float64(w))) * sens

	if tc == cfg.TouchShootUnderFinger {
		KeyDown(attack, source, downTime)
		in.Fire.DeferShooting = true
		t.MouseX, t.MouseY = AdjustCrosshairNearEdges(in, t.MouseX, t.MouseY)
		if t.CameraYawSpeed == 0 && t.CameraPitchSpeed == 0 {
			v[gamemath.Yaw] += yaw
			v[gamemath.Pitch] += pitch
		}
		return
	}
	t.SwipeActivated = true
	t.SwipeAngleRotate = yaw
	t.SwipeAngleRotatePitch = pitch
}

// AttackUp handles -attack. A release always arms the railgun shot; on
// touch profiles a quick swipe snaps the view and a tap leaves a fading
// fire button behind.
func AttackUp(in *Input, source int, hasSource bool, upTime int) {
	attack := in.Buttons.Get(cfg.ButtonAction0)
	t, c, v := in.Touch, in.Cfg, &in.View.ViewAngles

	t.AttackButton[components.AttackButtonAlpha] = 0
	if attack.Active {
		in.Fire.AttackReleased = true
	}

	if c.InputProfile == cfg.ProfileDesktop || c.TouchControls == cfg.TouchFloatingCrosshair || source != cfg.KeyMouse1 {
		release(in, attack, source, hasSource, upTime)
		return
	}

	tc := c.TouchControls
	diff := gamemath.AngleSubtract(v[gamemath.Yaw], t.SwipeAngleRotate)
	t.MouseSwipingActive = false

	if t.SwipeTime < swipeSnapMsec && math.Abs(diff) > c.SwipeSensitivity && c.SwipeAngle != 0 &&
		tc != cfg.TouchShootUnderFinger && tc != cfg.TouchAimUnderFinger {
		if diff > 0 {
			t.SwipeAngleRotate = c.SwipeAngle - diff
		} else {
			t.SwipeAngleRotate = -c.SwipeAngle - diff
		}
		t.SwipeActivated = true
	}

	if tc == cfg.TouchTapToFire || tc == cfg.TouchAimUnderFinger {
		weaponX := t.MouseX * virtualWidth / max(c.VidWidth, 1)
		KeyUp(attack, source, upTime, in.Frame.FrameMsec)

		t.TapMouseX, t.TapMouseY = t.MouseX, t.MouseY
		tap := float64(c.VidHeight / 6)
		ab := &t.AttackButton
		ab[components.AttackButtonW] = tap
		ab[components.AttackButtonH] = tap
		ab[components.AttackButtonX] = float64(t.MouseX) - tap*0.5
		ab[components.AttackButtonY] = float64(t.MouseY) - tap*0.5
		ab[components.AttackButtonAlpha] = tapButtonAlpha
		if in.Keys.Catcher&^netconfig.KeyCatchCgame != 0 || in.Frame.Phase != netconfig.PhaseActive || in.weaponBarHit(weaponX) {
			ab[components.AttackButtonAlpha] = 0
		}
	}

	if tc == cfg.TouchShootUnderFinger {
		KeyUp(attack, source, upTime, in.Frame.FrameMsec)
	}
}

// MultitouchDown handles the second finger landing. With a floating
// crosshair it turns the camera or steps the weapon.
func MultitouchDown(in *Input) {
	t := in.Touch
	if !in.controls(cfg.TouchFloatingCrosshair) {
		t.MultitouchActive = true
		return
	}
	dx, dy := t.MultitouchX-t.MouseX, t.MultitouchY-t.MouseY
	if abs(dx) > abs(dy) {
		if dx < 0 {
			t.CameraMultitouchYawSpeed = 1
		} else {
			t.CameraMultitouchYawSpeed = -1
		}
		return
	}
	if dy < 0 {
		in.queueKey(multitouchTurnKey, true)
	} else {
		in.queueKey(cfg.KeyBackspace, true)
	}
}

func MultitouchUp(in *Input) {
	t := in.Touch
	if !in.controls(cfg.TouchFloatingCrosshair) {
		t.MultitouchActive = false
		return
	}
	t.CameraMultitouchYawSpeed = 0
	in.queueKey(multitouchTurnKey, false)
	in.queueKey(cfg.KeyBackspace, false)
}

// CenterViewDown starts swinging the view toward the last stick direction
// once the screen stick is released.
func CenterViewDown(in *Input) {
	j := &in.Axes.Joystick
	if j[cfg.AxisScreenJoyX] == 0 && j[cfg.AxisScreenJoyY] == 0 {
		in.Touch.SwipeActivated = true
		in.Touch.JoystickJumpTriggerTime = 0
	}
}
