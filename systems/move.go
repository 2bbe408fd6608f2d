package systems

import (
	"math"

	"github.com/automoto/fragclient/components"
	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/gamemath"
	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
)

const (
	leftStickDead       = 8192
	leftTriggerJump     = 20000
	rightTriggerFire    = 20000
	rightTriggerZoom    = 10000
	rightTriggerRelease = 30000
	swipeMouseScale     = 0.05
	edgeYawScale        = 0.15
	attackFadePerMsec   = 0.001
	attackFadeMin       = 0.10
)

// moveStrategy is the platform specific part of command building. Desktop
// reads a relative mouse and generic joystick axes; touch and gamepad read
// absolute touches, the screen stick and the standard gamepad layout.
type moveStrategy interface {
	StickLook(in *Input, speed float64)
	MouseMove(in *Input, cmd *messages.UserCmd)
	JoystickMove(in *Input, cmd *messages.UserCmd)
}

type desktopMove struct{}

type touchMove struct{}

func strategyFor(p cfg.InputProfile) moveStrategy {
	if p == cfg.ProfileDesktop {
		return desktopMove{}
	}
	return touchMove{}
}

// Desktop looks with the joystick through the configured axes instead.
func (desktopMove) StickLook(*Input, float64) {}

func (desktopMove) MouseMove(in *Input, cmd *messages.UserCmd) {
	a, c, v := in.Axes, in.Cfg, &in.View.ViewAngles
	mx, my := float64(a.MouseDX), float64(a.MouseDY)
	a.MouseDX, a.MouseDY = 0, 0
	if mx == 0 && my == 0 {
		return
	}

	scale := c.Sensitivity * in.Cgame.Sensitivity
	mx *= scale
	my *= scale

	strafe := in.Buttons.Get(cfg.ButtonStrafe).Active
	if strafe {
		cmd.RightMove = gamemath.ClampChar(accum(int(cmd.RightMove), c.MouseSide*mx))
	} else {
		v[gamemath.Yaw] -= c.MouseYaw * mx
	}

	if (in.Buttons.MLooking || c.FreeLook) && !strafe {
		v[gamemath.Pitch] += c.MousePitch * my
	} else {
		cmd.ForwardMove = gamemath.ClampChar(accum(int(cmd.ForwardMove), -c.MouseForward*my))
	}
}

func (desktopMove) JoystickMove(in *Input, cmd *messages.UserCmd) {
	c, v := in.Cfg, &in.View.ViewAngles
	axis := func(a cfg.Axis) float64 { return float64(in.Axes.Joystick[a]) }

	speed := in.Buttons.Get(cfg.ButtonSpeed).Active
	if speed == c.Run {
		cmd.Buttons |= netconfig.ButtonWalking
	}

	angleSpeed := 0.001 * float64(in.Frame.Frametime)
	if speed {
		angleSpeed *= c.AngleSpeedKey
	}

	if !in.Buttons.Get(cfg.ButtonStrafe).Active {
		v[gamemath.Yaw] += angleSpeed * c.JoyYaw * axis(c.JoyYawAxis)
		cmd.RightMove = gamemath.ClampChar(int(cmd.RightMove) + int(c.JoySide*axis(c.JoySideAxis)))
	} else {
		v[gamemath.Yaw] += angleSpeed * c.JoySide * axis(c.JoySideAxis)
		cmd.RightMove = gamemath.ClampChar(int(cmd.RightMove) + int(c.JoyYaw*axis(c.JoyYawAxis)))
	}

	if in.Buttons.MLooking {
		v[gamemath.Pitch] += angleSpeed * c.JoyForward * axis(c.JoyForwardAxis)
		cmd.ForwardMove = gamemath.ClampChar(int(cmd.ForwardMove) + int(c.JoyPitch*axis(c.JoyPitchAxis)))
	} else {
		v[gamemath.Pitch] += angleSpeed * c.JoyPitch * axis(c.JoyPitchAxis)
		cmd.ForwardMove = gamemath.ClampChar(int(cmd.ForwardMove) + int(c.JoyForward*axis(c.JoyForwardAxis)))
	}

	cmd.UpMove = gamemath.ClampChar(int(cmd.UpMove) + int(c.JoyUp*axis(c.JoyUpAxis)))
}

// StickLook turns with the gamepad right stick past its dead zones. The
// vertical zone is wider so aiming level is easy.
func (touchMove) StickLook(in *Input, speed float64) {
	v, j := &in.View.ViewAngles, &in.Axes.Joystick

	if rx := j[cfg.AxisGamepadRightX]; abs(rx) > rightStickYawDead {
		rescaled := (abs(rx) - rightStickYawDead) * intSign(rx)
		v[gamemath.Yaw] -= speed * float64(rescaled)
	}
	if ry := j[cfg.AxisGamepadRightY]; abs(ry) > rightStickPitchDead {
		rescaled := (abs(ry) - rightStickPitchDead) * intSign(ry)
		if in.Cfg.MousePitch < 0 {
			rescaled = -rescaled
		}
		v[gamemath.Pitch] += speed * float64(rescaled)
	}
}

func (touchMove) MouseMove(in *Input, cmd *messages.UserCmd) {
	t, c, v := in.Touch, in.Cfg, &in.View.ViewAngles
	ft := float64(in.Frame.Frametime)
	sens := in.Cgame.Sensitivity

	if c.TouchControls != cfg.TouchFloatingCrosshair {
		dx, dy := t.MouseX-t.OldMouseX, t.MouseY-t.OldMouseY
		if t.MouseSwipingActive {
			v[gamemath.Yaw] -= float64(dx) * c.Sensitivity * sens * swipeMouseScale
			v[gamemath.Pitch] += float64(dy) * c.Sensitivity * sens * swipeMouseScale
		}
		t.OldMouseX, t.OldMouseY = t.MouseX, t.MouseY

		alpha := &t.AttackButton[components.AttackButtonAlpha]
		if *alpha > 0 {
			*alpha -= ft * attackFadePerMsec
			if *alpha < attackFadeMin {
				*alpha = 0
			}
		}
		if c.TouchControls != cfg.TouchShootUnderFinger {
			return
		}
	}

	edge := t.CameraYawSpeed != 0 || t.CameraPitchSpeed != 0 || t.CameraMultitouchYawSpeed != 0
	if edge && in.Buttons.Get(cfg.ButtonAction0).Active {
		yaw := float64(t.CameraYawSpeed+t.CameraMultitouchYawSpeed) * ft * edgeYawScale * sens
		pitch := float64(t.CameraPitchSpeed) * ft * c.PitchSpeed * edgePitchScale(c.ThirdPerson, v[gamemath.Pitch]) * sens
		v[gamemath.Yaw] += yaw
		v[gamemath.Pitch] += pitch
	}

	if c.TouchControls == cfg.TouchShootUnderFinger {
		return
	}

	if v[gamemath.Pitch] != 0 && c.PitchAutoCenter {
		step := c.AutoCenterViewSpeed * ft
		if v[gamemath.Pitch] > 0 {
			v[gamemath.Pitch] -= step
		} else {
			v[gamemath.Pitch] += step
		}
		if math.Abs(v[gamemath.Pitch]) < step*2 {
			v[gamemath.Pitch] = 0
		}
	}
}

// edgePitchScale speeds the third person camera up near the ends of its
// travel.
func edgePitchScale(thirdPerson bool, pitch float64) float64 {
	switch {
	case !thirdPerson:
		return 0.001
	case pitch < -20:
		return 0.0015
	case pitch < 45:
		return 0.001
	default:
		return 0.003
	}
}

func (touchMove) JoystickMove(in *Input, cmd *messages.UserCmd) {
	t, c, j := in.Touch, in.Cfg, &in.Axes.Joystick

	if j[cfg.AxisScreenJoyX] == 0 && j[cfg.AxisScreenJoyY] == 0 {
		t.OldJump = 0
		if t.JoystickJumpTriggerTime > 0 {
			t.JoystickJumpTriggerTime -= in.Frame.Frametime
			// keep moving through the first half of the jump window
			if t.JoystickJumpTriggerTime*2 > c.JoystickJumpTime {
				cmd.RightMove = gamemath.ClampChar(int(cmd.RightMove) + int(t.OldRightMove))
				cmd.ForwardMove = gamemath.ClampChar(int(cmd.ForwardMove) + int(t.OldForwardMove))
			}
		}

		lx, ly := j[cfg.AxisGamepadLeftX], j[cfg.AxisGamepadLeftY]
		if abs(lx) > leftStickDead || abs(ly) > leftStickDead {
			angle := gamemath.Rad2Deg(math.Atan2(float64(lx), float64(ly)))
			if !t.SwipeActivated {
				t.SwipeAngleRotate = oppositeYaw(angle)
			}
			stickMove(in, cmd, angle)
		}
	} else {
		// released and pressed again within the window: jump
		if t.JoystickJumpTriggerTime > 0 && t.JoystickJumpTriggerTime < c.JoystickJumpTime {
			t.OldJump = runSpeed
		}
		cmd.UpMove = gamemath.ClampChar(int(cmd.UpMove) + int(t.OldJump))
		t.JoystickJumpTriggerTime = c.JoystickJumpTime

		angle := gamemath.Rad2Deg(math.Atan2(float64(j[cfg.AxisScreenJoyX]), float64(j[cfg.AxisScreenJoyY])))
		if !t.SwipeActivated && (c.TouchControls == cfg.TouchFloatingCrosshair || c.TouchControls == cfg.TouchShootUnderFinger) {
			t.SwipeAngleRotate = oppositeYaw(angle)
		}
		stickMove(in, cmd, angle)
		t.OldForwardMove = cmd.ForwardMove
		t.OldRightMove = cmd.RightMove
	}

	if j[cfg.AxisGamepadLeftTrigger] > leftTriggerJump {
		cmd.UpMove = gamemath.ClampChar(int(cmd.UpMove) + runSpeed)
	}

	rt := j[cfg.AxisGamepadRightTrigger]
	if in.Cgame.Weapon == netconfig.WeaponRailgun {
		if rt > rightTriggerZoom {
			cmd.Buttons |= netconfig.ButtonAttack
		}
		if rt > rightTriggerRelease {
			in.Fire.AttackReleased = true
		}
	} else if rt > rightTriggerFire {
		cmd.Buttons |= netconfig.ButtonAttack
	}
}

func oppositeYaw(angle float64) float64 {
	a := angle + 180
	if a > 180 {
		a -= 360
	}
	return a
}

// stickMove adds full speed movement toward a stick direction given in
// degrees, 0 pointing down the screen.
func stickMove(in *Input, cmd *messages.UserCmd, angle float64) {
	angle -= 90
	if in.cameraAdjusted() {
		v := &in.View.ViewAngles
		angle += v[gamemath.Yaw] - gamemath.ShortToAngle(in.View.DeltaAngles[gamemath.Yaw]) - in.View.AimingAngles[gamemath.Yaw]
	}
	rad := gamemath.Deg2Rad(angle)
	cmd.ForwardMove = gamemath.ClampChar(accum(int(cmd.ForwardMove), math.Sin(rad)*runSpeed))
	cmd.RightMove = gamemath.ClampChar(accum(int(cmd.RightMove), math.Cos(rad)*runSpeed))
	NormalizeDiagonal(cmd)
}

// NormalizeDiagonal scales a movement so the larger of forward and side is
// at full speed, which keeps diagonal stick movement as fast as the
// keyboard. Equal magnitudes both go to full speed.
func NormalizeDiagonal(cmd *messages.UserCmd) {
	f, s := int(cmd.ForwardMove), int(cmd.RightMove)
	switch {
	case abs(f) > abs(s):
		cmd.RightMove = gamemath.ClampChar(s * runSpeed / abs(f))
		cmd.ForwardMove = int8(runSpeed * intSign(f))
	case abs(s) > abs(f):
		cmd.ForwardMove = gamemath.ClampChar(f * runSpeed / abs(s))
		cmd.RightMove = int8(runSpeed * intSign(s))
	case f != 0:
		cmd.ForwardMove = int8(runSpeed * intSign(f))
		cmd.RightMove = int8(runSpeed * intSign(s))
	}
}

func intSign(v int) int {
	if v > 0 {
		return 1
	}
	return -1
}
