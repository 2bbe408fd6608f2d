package components

import (
	cfg "github.com/automoto/fragclient/config"
	"github.com/yohamta/donburi"
)

// SourceConsole is the implicit source of a button typed at the console.
const SourceConsole = -1

// ButtonState latches one logical button held by up to two sources.
// A zero slot is empty. Active is true iff a slot is occupied.
type ButtonState struct {
	Down       [2]int
	DownTime   int  // when the current hold began, or last sampled
	Msec       int  // held time not yet sampled
	Active     bool // currently held
	WasPressed bool // pressed since the last command was built
}

// ButtonsData is the latch table for every logical button.
type ButtonsData struct {
	Buttons  [cfg.ButtonCount]ButtonState
	MLooking bool
}

// Get returns the latch for id.
func (b *ButtonsData) Get(id cfg.ButtonID) *ButtonState {
	return &b.Buttons[id]
}

var Buttons = donburi.NewComponentType[ButtonsData]()
