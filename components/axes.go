package components

import (
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/yohamta/donburi"
)

// AxesData holds the latest analog samples.
type AxesData struct {
	Joystick      [netconfig.MaxJoystickAxis]int // absolute, last write wins
	Gyroscope     [3]int                         // accumulated, zeroed every command
	Accelerometer [3]int                         // last sample per axis
	Shake         int                            // accelerometer shake accumulator
	MouseDX       int                            // relative mouse motion since the last command
	MouseDY       int
	VoipSend      bool                           // shake to talk state
}

var Axes = donburi.NewComponentType[AxesData]()
