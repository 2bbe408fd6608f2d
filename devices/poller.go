// Package devices polls ebiten once per tick and turns what changed into
// raw input events for a session.
package devices

import (
	"log"
	"math"

	cfg "github.com/automoto/fragclient/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Sink receives raw input events. *session.Session implements it.
type Sink interface {
	QueueKey(key int, down bool, time int)
	QueueChar(ch rune)
	QueueMouse(x, y int)
	QueueMouseDelta(dx, dy int)
	QueueMouse2(x, y int)
	QueueJoystick(axis, value int)
}

const stickRange = 32767

// standard layout buttons in KeyJoy1 order
var gamepadButtons = []ebiten.StandardGamepadButton{
	ebiten.StandardGamepadButtonRightBottom,
	ebiten.StandardGamepadButtonRightRight,
	ebiten.StandardGamepadButtonRightLeft,
	ebiten.StandardGamepadButtonRightTop,
	ebiten.StandardGamepadButtonFrontTopLeft,
	ebiten.StandardGamepadButtonFrontTopRight,
	ebiten.StandardGamepadButtonCenterLeft,
	ebiten.StandardGamepadButtonCenterRight,
	ebiten.StandardGamepadButtonLeftStick,
	ebiten.StandardGamepadButtonRightStick,
	ebiten.StandardGamepadButtonLeftTop,
	ebiten.StandardGamepadButtonLeftBottom,
	ebiten.StandardGamepadButtonLeftLeft,
	ebiten.StandardGamepadButtonLeftRight,
	ebiten.StandardGamepadButtonCenterCenter,
}

var stickAxes = []struct {
	axis ebiten.StandardGamepadAxis
	to   cfg.Axis
}{
	{ebiten.StandardGamepadAxisLeftStickHorizontal, cfg.AxisGamepadLeftX},
	{ebiten.StandardGamepadAxisLeftStickVertical, cfg.AxisGamepadLeftY},
	{ebiten.StandardGamepadAxisRightStickHorizontal, cfg.AxisGamepadRightX},
	{ebiten.StandardGamepadAxisRightStickVertical, cfg.AxisGamepadRightY},
}

// Poller remembers what it reported last so only changes become events.
type Poller struct {
	keys    []ebiten.Key
	chars   []rune
	touches []ebiten.TouchID

	cursorX, cursorY int
	cursorKnown      bool

	primary, secondary ebiten.TouchID
	hasPrimary         bool
	hasSecondary       bool

	gamepadIDs []ebiten.GamepadID
	gamepad    ebiten.GamepadID
	hasGamepad bool
	axes       [cfg.AxisCount]int
}

func NewPoller() *Poller {
	return &Poller{}
}

// Poll reports the input that changed since the previous call, stamped
// with now.
func (p *Poller) Poll(s Sink, now int) {
	p.pollKeys(s, now)
	p.pollMouse(s, now)
	p.pollTouches(s, now)
	p.pollGamepad(s, now)
}

func (p *Poller) pollKeys(s Sink, now int) {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if key, ok := keyMap[k]; ok {
			s.QueueKey(key, true, now)
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if key, ok := keyMap[k]; ok {
			s.QueueKey(key, false, now)
		}
	}

	p.chars = ebiten.AppendInputChars(p.chars[:0])
	for _, ch := range p.chars {
		s.QueueChar(ch)
	}
}

func (p *Poller) pollMouse(s Sink, now int) {
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.button) {
			s.QueueKey(mb.key, true, now)
		}
		if inpututil.IsMouseButtonJustReleased(mb.button) {
			s.QueueKey(mb.key, false, now)
		}
	}

	x, y := ebiten.CursorPosition()
	if p.cursorKnown && x == p.cursorX && y == p.cursorY {
		return
	}
	if ebiten.CursorMode() == ebiten.CursorModeCaptured && p.cursorKnown {
		s.QueueMouseDelta(x-p.cursorX, y-p.cursorY)
	} else {
		s.QueueMouse(x, y)
	}
	p.cursorX, p.cursorY, p.cursorKnown = x, y, true
}

// pollTouches drives the mouse with the first finger down and the
// multitouch key with the second.
func (p *Poller) pollTouches(s Sink, now int) {
	if p.hasPrimary && inpututil.IsTouchJustReleased(p.primary) {
		p.hasPrimary = false
		s.QueueKey(cfg.KeyMouse1, false, now)
	}
	if p.hasSecondary && inpututil.IsTouchJustReleased(p.secondary) {
		p.hasSecondary = false
		s.QueueKey(cfg.KeyMultitouch, false, now)
	}

	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		switch {
		case !p.hasPrimary:
			p.primary, p.hasPrimary = id, true
			s.QueueMouse(x, y)
			s.QueueKey(cfg.KeyMouse1, true, now)
		case !p.hasSecondary:
			p.secondary, p.hasSecondary = id, true
			s.QueueMouse2(x, y)
			s.QueueKey(cfg.KeyMultitouch, true, now)
		}
	}

	if p.hasPrimary {
		x, y := ebiten.TouchPosition(p.primary)
		s.QueueMouse(x, y)
	}
	if p.hasSecondary {
		x, y := ebiten.TouchPosition(p.secondary)
		s.QueueMouse2(x, y)
	}
}

func (p *Poller) pollGamepad(s Sink, now int) {
	if p.hasGamepad && inpututil.IsGamepadJustDisconnected(p.gamepad) {
		log.Printf("[input] gamepad %d disconnected", p.gamepad)
		p.hasGamepad = false
		p.zeroAxes(s)
	}
	if !p.hasGamepad {
		p.gamepadIDs = ebiten.AppendGamepadIDs(p.gamepadIDs[:0])
		for _, id := range p.gamepadIDs {
			if ebiten.IsStandardGamepadLayoutAvailable(id) {
				p.gamepad, p.hasGamepad = id, true
				log.Printf("[input] using gamepad %d: %s", id, ebiten.GamepadName(id))
				break
			}
		}
		if !p.hasGamepad {
			return
		}
	}

	id := p.gamepad
	for i, btn := range gamepadButtons {
		if inpututil.IsStandardGamepadButtonJustPressed(id, btn) {
			s.QueueKey(cfg.KeyJoy1+i, true, now)
		}
		if inpututil.IsStandardGamepadButtonJustReleased(id, btn) {
			s.QueueKey(cfg.KeyJoy1+i, false, now)
		}
	}

	for _, a := range stickAxes {
		p.setAxis(s, a.to, scaleAxis(ebiten.StandardGamepadAxisValue(id, a.axis)))
	}
	p.setAxis(s, cfg.AxisGamepadLeftTrigger,
		scaleAxis(ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomLeft)))
	p.setAxis(s, cfg.AxisGamepadRightTrigger,
		scaleAxis(ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomRight)))
}

func (p *Poller) setAxis(s Sink, axis cfg.Axis, v int) {
	if p.axes[axis] == v {
		return
	}
	p.axes[axis] = v
	s.QueueJoystick(int(axis), v)
}

func (p *Poller) zeroAxes(s Sink) {
	for a := cfg.Axis(0); a < cfg.AxisCount; a++ {
		p.setAxis(s, a, 0)
	}
}

// scaleAxis maps [-1, 1] onto the 16 bit axis range.
func scaleAxis(v float64) int {
	return int(math.Round(math.Max(-1, math.Min(1, v)) * stickRange))
}
