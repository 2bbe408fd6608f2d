package systems

import (
	"errors"
	"fmt"
	"log"

	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/netconfig"
)

// ErrBadAxis is returned for an axis index outside the device's range. The
// session treats it as fatal.
var ErrBadAxis = errors.New("bad axis")

const (
	shakeMinDelta = 500
	shakeMaxDelta = 1500
)

// JoystickEvent stores the absolute value of one joystick axis.
func JoystickEvent(in *Input, axis, value int) error {
	if axis < 0 || axis >= netconfig.MaxJoystickAxis {
		return fmt.Errorf("joystick event: %w %d", ErrBadAxis, axis)
	}
	if in.Cfg.SwapGamepadSticks {
		axis = int(swapStick(cfg.Axis(axis)))
	}
	in.Axes.Joystick[axis] = value
	return nil
}

func swapStick(a cfg.Axis) cfg.Axis {
	switch a {
	case cfg.AxisGamepadLeftX:
		return cfg.AxisGamepadRightX
	case cfg.AxisGamepadLeftY:
		return cfg.AxisGamepadRightY
	case cfg.AxisGamepadRightX:
		return cfg.AxisGamepadLeftX
	case cfg.AxisGamepadRightY:
		return cfg.AxisGamepadLeftY
	}
	return a
}

// GyroscopeEvent accumulates rotation until the next command consumes it.
func GyroscopeEvent(in *Input, axis, value int) error {
	if axis < 0 || axis >= len(in.Axes.Gyroscope) {
		return fmt.Errorf("gyroscope event: %w %d", ErrBadAxis, axis)
	}
	in.Axes.Gyroscope[axis] += value
	return nil
}

// AccelerometerEvent turns large jumps between samples into shake. Samples
// are ignored while anything but the game module has focus or the client
// is not in game.
func AccelerometerEvent(in *Input, axis, value int) error {
	if axis < 0 || axis >= len(in.Axes.Accelerometer) {
		return fmt.Errorf("accelerometer event: %w %d", ErrBadAxis, axis)
	}
	if in.Keys.Catcher&^netconfig.KeyCatchCgame != 0 || in.Frame.Phase != netconfig.PhaseActive {
		return nil
	}
	delta := abs(in.Axes.Accelerometer[axis] - value)
	if delta > shakeMinDelta {
		in.Axes.Shake += min(delta, shakeMaxDelta)
	}
	in.Axes.Accelerometer[axis] = value
	return nil
}

// ProcessAccelerometer decays shake and toggles shake to talk.
func ProcessAccelerometer(in *Input) {
	a, c := in.Axes, in.Cfg
	a.Shake -= in.Frame.Frametime * c.VoipAccelShakeDecrease
	if a.Shake < 0 {
		a.Shake = 0
	}
	limit := c.VoipAccelShakeRecordingTime * c.VoipAccelShakeDecrease

	if in.Buttons.Get(cfg.ButtonVoipRecord).Active {
		a.Shake = 0
		return
	}

	if !a.VoipSend {
		if a.Shake > c.VoipAccelShakeThreshold {
			log.Printf("[input] shake detected, recording voice")
			a.VoipSend = true
			a.Shake = limit
		}
		return
	}
	if a.Shake <= 0 {
		a.VoipSend = false
	}
	if a.Shake > limit {
		a.Shake = limit
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
