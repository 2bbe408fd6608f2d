package systems

import (
	"math"

	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/gamemath"
	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
)

const (
	maxFrameMsec        = 200 // longer hitches are truncated
	swipeSpeed          = 0.2 // degrees per ms
	rightStickYawDead   = 4096
	rightStickPitchDead = 12288
	stickRange          = 32767.0
	gyroScale           = 1.0 / 16384.0
	maxRoll             = 8.0
	runSpeed            = 127
	walkSpeed           = 64
)

// CommandStore receives every command created.
type CommandStore interface {
	Append(cmd messages.UserCmd) int
}

// CreateNewCommands builds and stores exactly one command for the frame
// that starts at frameTime. Nothing is created before the gamestate is in.
func CreateNewCommands(in *Input, store CommandStore, frameTime int) bool {
	f := in.Frame
	if f.Phase < netconfig.PhasePrimed {
		return false
	}

	f.FrameTime = frameTime
	f.FrameMsec = min(frameTime-f.OldFrameTime, maxFrameMsec)
	f.OldFrameTime = frameTime

	cmd := CreateCmd(in)
	f.LastCmd = cmd
	store.Append(cmd)
	return true
}

// CreateCmd turns the latched input into the command for this tick and
// advances the view angles.
func CreateCmd(in *Input) messages.UserCmd {
	v := &in.View.ViewAngles
	old := *v

	AdjustAngles(in)

	var cmd messages.UserCmd
	KeyMove(in, &cmd)

	strategy := strategyFor(in.Cfg.InputProfile)
	strategy.MouseMove(in, &cmd)
	strategy.JoystickMove(in, &cmd)

	CmdButtons(in, &cmd)
	ProcessAccelerometer(in)

	limitAngles(in, old)
	aim(in)
	FinishMove(in, &cmd)

	switch in.Cfg.DebugMove {
	case cfg.DebugMoveYaw:
		in.Graph.Push(math.Abs(v[gamemath.Yaw] - old[gamemath.Yaw]))
	case cfg.DebugMovePitch:
		in.Graph.Push(math.Abs(v[gamemath.Pitch] - old[gamemath.Pitch]))
	}
	return cmd
}

// AdjustAngles applies keyboard turning, the gamepad look stick, the
// gyroscope and any outstanding swipe rotation.
func AdjustAngles(in *Input) {
	v := &in.View.ViewAngles
	c := in.Cfg
	ft := float64(in.Frame.Frametime)

	// with strafe held the turn keys move sideways in KeyMove instead
	var right, left float64
	if !in.Buttons.Get(cfg.ButtonStrafe).Active {
		right, left = in.KeyState(cfg.ButtonRight), in.KeyState(cfg.ButtonLeft)
	}
	up, down := in.KeyState(cfg.ButtonLookUp), in.KeyState(cfg.ButtonLookDown)
	speed := ft * c.Sensitivity * in.Cgame.Sensitivity * 0.04

	if left > 0 || right > 0 || up > 0 || down > 0 {
		v[gamemath.Yaw] -= speed * right
		v[gamemath.Yaw] += speed * left
		v[gamemath.Pitch] -= speed * up
		v[gamemath.Pitch] += speed * down
	}

	speed /= stickRange
	strategyFor(c.InputProfile).StickLook(in, speed)

	g := &in.Axes.Gyroscope
	if c.Gyroscope {
		x, y := float64(g[0]), float64(g[1])
		if c.GyroscopeAxesSwap&cfg.GyroSwapX != 0 {
			x = -x
		}
		if c.GyroscopeAxesSwap&cfg.GyroSwapY != 0 {
			y = -y
		}
		if c.GyroscopeAxesSwap&cfg.GyroSwapXY != 0 {
			x, y = y, x
		}
		if x != 0 || y != 0 || g[2] != 0 {
			scale := gyroScale * in.Cgame.Sensitivity * c.GyroscopeSensitivity
			v[gamemath.Yaw] += x * scale
			v[gamemath.Pitch] += y * scale
			v[gamemath.Roll] -= float64(g[2]) * gyroScale
		}
		// drift the roll back toward level
		if step := speed * 2000; math.Abs(v[gamemath.Roll]) > step {
			v[gamemath.Roll] -= gamemath.Sign(v[gamemath.Roll]) * step
			if math.Abs(v[gamemath.Roll]) > maxRoll {
				v[gamemath.Roll] = gamemath.Sign(v[gamemath.Roll]) * maxRoll
			}
		}
		*g = [3]int{}
	} else {
		v[gamemath.Roll] = 0
	}

	t := in.Touch
	if t.SwipeActivated {
		t.SwipeAngleRotate, v[gamemath.Yaw] = swipeStep(t.SwipeAngleRotate, v[gamemath.Yaw], ft)
		t.SwipeAngleRotatePitch, v[gamemath.Pitch] = swipeStep(t.SwipeAngleRotatePitch, v[gamemath.Pitch], ft)
		if t.SwipeAngleRotate == 0 && t.SwipeAngleRotatePitch == 0 {
			t.SwipeActivated = false
		}
	}
	t.SwipeTime += in.Frame.Frametime
}

// swipeStep moves angle by up to one frame of the remaining rotation.
func swipeStep(remaining, angle, frametime float64) (float64, float64) {
	diff := frametime * swipeSpeed * gamemath.Sign(remaining)
	if math.Abs(remaining) <= math.Abs(diff) {
		return 0, angle + remaining
	}
	return remaining - diff, angle + diff
}

// KeyMove sets the movement axes from the movement buttons.
func KeyMove(in *Input, cmd *messages.UserCmd) {
	var moveSpeed float64
	if in.Buttons.Get(cfg.ButtonSpeed).Active != in.Cfg.Run {
		moveSpeed = runSpeed
		cmd.Buttons &^= netconfig.ButtonWalking
	} else {
		cmd.Buttons |= netconfig.ButtonWalking
		moveSpeed = walkSpeed
	}

	var forward, side, up int
	if in.Buttons.Get(cfg.ButtonStrafe).Active {
		side = accum(side, moveSpeed*in.KeyState(cfg.ButtonRight))
		side = accum(side, -moveSpeed*in.KeyState(cfg.ButtonLeft))
	}

	side = accum(side, moveSpeed*in.KeyState(cfg.ButtonMoveRight))
	side = accum(side, -moveSpeed*in.KeyState(cfg.ButtonMoveLeft))

	up = accum(up, moveSpeed*in.KeyState(cfg.ButtonUp))
	up = accum(up, -moveSpeed*in.KeyState(cfg.ButtonDown))

	forward = accum(forward, moveSpeed*in.KeyState(cfg.ButtonForward))
	forward = accum(forward, -moveSpeed*in.KeyState(cfg.ButtonBack))

	cmd.ForwardMove = gamemath.ClampChar(forward)
	cmd.RightMove = gamemath.ClampChar(side)
	cmd.UpMove = gamemath.ClampChar(up)
}

// accum adds a fractional move and truncates toward zero.
func accum(v int, delta float64) int {
	return int(float64(v) + delta)
}

// CmdButtons sets the button bits, runs railgun auto zoom and sets the
// focus bits.
func CmdButtons(in *Input, cmd *messages.UserCmd) {
	for i := 0; i < cfg.ActionButtons; i++ {
		b := in.Buttons.Get(cfg.Action(i))
		// a press shorter than a frame still sends its bit once
		if b.Active || b.WasPressed {
			cmd.Buttons |= 1 << i
		}
		b.WasPressed = false
	}

	f := in.Fire
	// zoom changes wait one command so the game module sees the input first
	if f.ZoomDeferred > 0 {
		f.ZoomDeferred--
		if f.ZoomDeferred == 0 {
			in.exec("+zoom")
		}
	}
	if f.ZoomDeferred < 0 {
		f.ZoomDeferred++
		if f.ZoomDeferred == 0 {
			in.exec("-zoom")
		}
	}

	rotating := in.rotatingCamera()
	if in.Cfg.RailgunAutoZoom {
		railgun := in.Cgame.Weapon == netconfig.WeaponRailgun
		if railgun && cmd.Buttons&netconfig.ButtonAttack != 0 {
			if !f.RailgunZoomActive && (!in.touchAiming() || !rotating) {
				f.RailgunZoomActive = true
				f.ZoomDeferred = 1
			}
		} else if f.RailgunZoomActive {
			f.RailgunZoomActive = false
			f.ZoomDeferred = -1
		}
		if railgun {
			// zoom while held, fire on release
			cmd.Buttons &^= netconfig.ButtonAttack
			if f.AttackReleased {
				cmd.Buttons |= netconfig.ButtonAttack
			}
		}
		f.AttackReleased = false
	}

	if in.touchAiming() && (rotating || f.DeferShooting) {
		cmd.Buttons &^= netconfig.ButtonAttack
		f.DeferShooting = false
	}

	if in.Keys.Catcher != 0 {
		cmd.Buttons |= netconfig.ButtonTalk
	}
	if in.Keys.AnyKeyDown() && in.Keys.Catcher == 0 {
		cmd.Buttons |= netconfig.ButtonAny
	}
}

func (in *Input) rotatingCamera() bool {
	t := in.Touch
	return t.CameraYawSpeed != 0 || t.CameraPitchSpeed != 0 ||
		t.CameraMultitouchYawSpeed != 0 || t.WeaponBarActive
}

func limitAngles(in *Input, old [3]float64) {
	v := &in.View.ViewAngles
	if v[gamemath.Pitch]-old[gamemath.Pitch] > 90 {
		v[gamemath.Pitch] = old[gamemath.Pitch] + 90
	} else if old[gamemath.Pitch]-v[gamemath.Pitch] > 90 {
		v[gamemath.Pitch] = old[gamemath.Pitch] - 90
	}

	v[gamemath.Yaw] = gamemath.WrapYaw(v[gamemath.Yaw])
	v[gamemath.Pitch] = gamemath.ClampPitch(v[gamemath.Pitch], 180)
	if !in.Cfg.ThirdPerson {
		v[gamemath.Pitch] = gamemath.ClampPitch(v[gamemath.Pitch], 90)
	}
}

// aim picks the angles the command carries. A third person or floating
// crosshair camera is placed by the game module.
func aim(in *Input) {
	v := &in.View.ViewAngles
	if in.cameraAdjusted() {
		if in.Cfg.ThirdPerson && v[gamemath.Pitch] < -90 {
			v[gamemath.Pitch] = -90
		}
		in.View.AimingAngles = in.Hooks.AdjustCamera(*v)
		return
	}
	in.View.AimingAngles = *v
	in.View.AimingAngles[gamemath.Pitch] -= gamemath.ShortToAngle(in.View.DeltaAngles[gamemath.Pitch])
}

func (in *Input) cameraAdjusted() bool {
	return in.Hooks.AdjustCamera != nil && (in.controls(cfg.TouchFloatingCrosshair) || in.Cfg.ThirdPerson)
}

// FinishMove stamps the weapon, server time and aiming angles.
func FinishMove(in *Input, cmd *messages.UserCmd) {
	cmd.Weapon = in.Cgame.Weapon
	cmd.ServerTime = in.Cgame.ServerTime
	for i := range cmd.Angles {
		cmd.Angles[i] = gamemath.AngleToShort(in.View.AimingAngles[i])
	}
}
