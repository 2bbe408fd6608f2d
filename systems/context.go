package systems

import (
	"github.com/automoto/fragclient/components"
	cfg "github.com/automoto/fragclient/config"
	"github.com/yohamta/donburi"
)

// Hooks connect the input pipeline to the game module and the command
// router. Any of them may be nil.
type Hooks struct {
	// Exec runs a command line produced by input handling, such as
	// "+zoom" or "weapon 3".
	Exec func(line string)
	// AdjustCamera lets the game module place a third person or floating
	// crosshair camera. It returns the angles the command should aim at.
	AdjustCamera func(view [3]float64) (aiming [3]float64)
	// MouseMoved forwards the cursor to the game module or the UI.
	MouseMoved func(x, y int)
	// QueueKey injects a synthetic key event.
	QueueKey func(key int, down bool)
}

// Input is the view of the local client entity one tick works on.
// Build it again after the world changes shape; component pointers do not
// survive archetype moves.
type Input struct {
	Buttons *components.ButtonsData
	Axes    *components.AxesData
	View    *components.ViewData
	Cgame   *components.CgameData
	Touch   *components.TouchData
	Fire    *components.FireData
	Frame   *components.FrameData
	Keys    *components.KeysData
	Graph   *components.GraphData

	Cfg   *cfg.ClientConfig
	Hooks Hooks
}

// NewInput collects the input components of e.
func NewInput(e *donburi.Entry, c *cfg.ClientConfig, hooks Hooks) *Input {
	return &Input{
		Buttons: components.Buttons.Get(e),
		Axes:    components.Axes.Get(e),
		View:    components.View.Get(e),
		Cgame:   components.Cgame.Get(e),
		Touch:   components.Touch.Get(e),
		Fire:    components.Fire.Get(e),
		Frame:   components.Frame.Get(e),
		Keys:    components.Keys.Get(e),
		Graph:   components.Graph.Get(e),
		Cfg:     c,
		Hooks:   hooks,
	}
}

// KeyState samples button id for the frame being built.
func (in *Input) KeyState(id cfg.ButtonID) float64 {
	return KeyState(in.Buttons.Get(id), in.Frame.FrameTime, in.Frame.FrameMsec)
}

func (in *Input) exec(line string) {
	if in.Hooks.Exec != nil {
		in.Hooks.Exec(line)
	}
}

func (in *Input) queueKey(key int, down bool) {
	if in.Hooks.QueueKey != nil {
		in.Hooks.QueueKey(key, down)
	}
}

func (in *Input) touchAiming() bool {
	tc := in.Cfg.TouchControls
	return in.Cfg.InputProfile != cfg.ProfileDesktop &&
		(tc == cfg.TouchFloatingCrosshair || tc == cfg.TouchShootUnderFinger)
}

func (in *Input) controls(tc cfg.TouchControls) bool {
	return in.Cfg.InputProfile != cfg.ProfileDesktop && in.Cfg.TouchControls == tc
}
