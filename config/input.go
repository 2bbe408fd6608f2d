package config

import (
	"strconv"
	"strings"
)

// Axis indexes the joystick axis table.
type Axis int

const (
	AxisScreenJoyX Axis = iota // on-screen stick
	AxisScreenJoyY
	AxisGamepadLeftX
	AxisGamepadLeftY
	AxisGamepadRightX
	AxisGamepadRightY
	AxisGamepadLeftTrigger
	AxisGamepadRightTrigger
	AxisCount // Must be last of the named axes
)

// ButtonID is a logical button driven by +command/-command pairs.
type ButtonID int

const (
	ButtonLeft ButtonID = iota
	ButtonRight
	ButtonForward
	ButtonBack
	ButtonLookUp
	ButtonLookDown
	ButtonMoveLeft
	ButtonMoveRight
	ButtonStrafe
	ButtonSpeed
	ButtonUp
	ButtonDown
	ButtonVoipRecord
	ButtonAction0 // attack; action buttons follow in order
)

// ActionButtons is the number of action buttons mapped onto command bits.
const ActionButtons = 15

// ButtonCount sizes the button table.
const ButtonCount = int(ButtonAction0) + ActionButtons

// Action returns the ButtonID of action button i.
func Action(i int) ButtonID {
	return ButtonAction0 + ButtonID(i)
}

// ButtonCommands maps +/- command names to the button they latch. The
// attack button is dispatched separately because touch input changes its
// meaning.
var ButtonCommands = map[string]ButtonID{
	"left":       ButtonLeft,
	"right":      ButtonRight,
	"forward":    ButtonForward,
	"back":       ButtonBack,
	"lookup":     ButtonLookUp,
	"lookdown":   ButtonLookDown,
	"moveleft":   ButtonMoveLeft,
	"moveright":  ButtonMoveRight,
	"strafe":     ButtonStrafe,
	"speed":      ButtonSpeed,
	"moveup":     ButtonUp,
	"movedown":   ButtonDown,
	"voiprecord": ButtonVoipRecord,
}

func init() {
	for i := 1; i < ActionButtons; i++ {
		ButtonCommands["button"+strconv.Itoa(i)] = Action(i)
	}
}

// Key numbers. Printable characters use their lower case ASCII value; zero
// is never a key, so it can mark an empty latch slot.
const (
	KeyTab       = 9
	KeyEnter     = 13
	KeyEscape    = 27
	KeySpace     = 32
	KeyConsole   = '`'
	KeyBackspace = 127
)

const (
	KeyUpArrow = 128 + iota
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow
	KeyAlt
	KeyCtrl
	KeyShift
	KeyPgUp
	KeyPgDn
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMouse1
	KeyMouse2
	KeyMouse3
	KeyMouse4
	KeyMouse5
	KeyMultitouch // second finger on a touchscreen
	KeyJoy1       // gamepad buttons follow
)

// JoyButtons is the number of gamepad button keys after KeyJoy1.
const JoyButtons = 16

var keyNames = map[int]string{
	KeyTab:        "tab",
	KeyEnter:      "enter",
	KeyEscape:     "escape",
	KeySpace:      "space",
	KeyBackspace:  "backspace",
	KeyUpArrow:    "uparrow",
	KeyDownArrow:  "downarrow",
	KeyLeftArrow:  "leftarrow",
	KeyRightArrow: "rightarrow",
	KeyAlt:        "alt",
	KeyCtrl:       "ctrl",
	KeyShift:      "shift",
	KeyPgUp:       "pgup",
	KeyPgDn:       "pgdn",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyMouse1:     "mouse1",
	KeyMouse2:     "mouse2",
	KeyMouse3:     "mouse3",
	KeyMouse4:     "mouse4",
	KeyMouse5:     "mouse5",
	KeyMultitouch: "multitouch",
}

func init() {
	for i := 0; i < 12; i++ {
		keyNames[KeyF1+i] = "f" + strconv.Itoa(i+1)
	}
	for i := 0; i < JoyButtons; i++ {
		keyNames[KeyJoy1+i] = "joy" + strconv.Itoa(i+1)
	}
}

// KeyName returns the binding name of key k.
func KeyName(k int) string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k > KeySpace && k < KeyBackspace {
		return string(rune(k))
	}
	return "key" + strconv.Itoa(k)
}

// KeyByName is the inverse of KeyName.
func KeyByName(name string) (int, bool) {
	name = strings.ToLower(name)
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	if len(name) == 1 && name[0] > KeySpace && name[0] < KeyBackspace {
		return int(name[0]), true
	}
	return 0, false
}

// DefaultBindings returns a fresh copy of the stock key bindings.
func DefaultBindings() map[int]string {
	b := map[int]string{
		'w':           "+forward",
		's':           "+back",
		'a':           "+moveleft",
		'd':           "+moveright",
		'c':           "+movedown",
		'e':           "+button2",
		'g':           "gesture",
		'm':           "+mlook",
		'v':           "+voiprecord",
		't':           "messagemode",
		'y':           "messagemode2",
		KeySpace:      "+moveup",
		KeyShift:      "+speed",
		KeyAlt:        "+strafe",
		KeyCtrl:       "+attack",
		KeyUpArrow:    "+forward",
		KeyDownArrow:  "+back",
		KeyLeftArrow:  "+left",
		KeyRightArrow: "+right",
		KeyPgUp:       "+lookup",
		KeyPgDn:       "+lookdown",
		KeyEnd:        "+centerview",
		KeyMouse1:     "+attack",
		KeyMouse2:     "+button2",
		KeyMultitouch: "+multitouch",
		KeyJoy1:       "+moveup",
		KeyJoy1 + 1:   "+movedown",
		KeyJoy1 + 2:   "+button2",
		KeyJoy1 + 5:   "+attack",
	}
	for i := 1; i <= 9; i++ {
		b['0'+i] = "weapon " + strconv.Itoa(i)
	}
	return b
}
