package session

import (
	"github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/automoto/fragclient/systems"
	"github.com/yohamta/donburi"
)

// Raw input is queued as it arrives and applied at the start of the next
// Frame, all kinds together in arrival order.

func (s *Session) publish(e systems.InputEvent) {
	if s.draining {
		s.deferred = append(s.deferred, e)
		return
	}
	systems.InputEvents.Publish(s.world, e)
}

func (s *Session) QueueKey(key int, down bool, time int) {
	s.publish(systems.InputEvent{Kind: systems.EventKey, Key: key, Down: down, Time: time})
}

func (s *Session) QueueChar(ch rune) {
	s.publish(systems.InputEvent{Kind: systems.EventChar, Char: ch})
}

func (s *Session) QueueMouse(x, y int) {
	s.publish(systems.InputEvent{Kind: systems.EventMouse, X: x, Y: y})
}

func (s *Session) QueueMouseDelta(dx, dy int) {
	s.publish(systems.InputEvent{Kind: systems.EventMouseDelta, X: dx, Y: dy})
}

func (s *Session) QueueMouse2(x, y int) {
	s.publish(systems.InputEvent{Kind: systems.EventMouse2, X: x, Y: y})
}

func (s *Session) QueueJoystick(axis, value int) {
	s.publish(systems.InputEvent{Kind: systems.EventJoystick, Axis: axis, Value: value})
}

func (s *Session) QueueGyroscope(axis, value int) {
	s.publish(systems.InputEvent{Kind: systems.EventGyroscope, Axis: axis, Value: value})
}

func (s *Session) QueueAccelerometer(axis, value int) {
	s.publish(systems.InputEvent{Kind: systems.EventAccelerometer, Axis: axis, Value: value})
}

func (s *Session) subscribe() {
	systems.InputEvents.Subscribe(s.world, func(_ donburi.World, e systems.InputEvent) {
		// a bad event ends the session; the rest of the queue is dropped
		if s.pipe.Err != nil {
			return
		}
		switch e.Kind {
		case systems.EventKey:
			s.keyEvent(e.Key, e.Down, e.Time)
		case systems.EventChar:
			s.charEvent(e.Char)
		default:
			s.pipe.Fail(systems.ApplyEvent(s.in, e))
		}
	})
}

// keyEvent routes a key transition to the console or through the key's
// binding. Releases always go through the binding so a button held when
// the console opened is let go.
func (s *Session) keyEvent(key int, down bool, time int) {
	keys := s.in.Keys
	if down {
		keys.KeysDown[key] = true
	} else {
		delete(keys.KeysDown, key)
	}

	if key == config.KeyConsole {
		if down {
			s.Exec("toggleconsole")
		}
		return
	}

	if down && keys.Catcher&netconfig.KeyCatchConsole != 0 {
		s.consoleKey(key)
		return
	}
	if down && keys.Catcher&netconfig.KeyCatchUI != 0 {
		return
	}
	if down && keys.Catcher&netconfig.KeyCatchMessage != 0 {
		s.messageKey(key)
		return
	}

	line, ok := systems.BindingCommand(s.bindings[key], key, down, time)
	if ok {
		s.bindingKey = key
		s.Exec(line)
		s.bindingKey = 0
	}
}

func (s *Session) consoleKey(key int) {
	switch key {
	case config.KeyEnter:
		line := string(s.editLine)
		s.editLine = s.editLine[:0]
		s.con.Print("]" + line + "\n")
		if line != "" {
			s.Exec(line)
		}
	case config.KeyBackspace:
		if n := len(s.editLine); n > 0 {
			s.editLine = s.editLine[:n-1]
		}
	case config.KeyEscape:
		s.Exec("toggleconsole")
	case config.KeyPgUp:
		s.con.PageUp()
	case config.KeyPgDn:
		s.con.PageDown()
	case config.KeyHome:
		s.con.Top()
	case config.KeyEnd:
		s.con.Bottom()
	}
}

func (s *Session) charEvent(ch rune) {
	if ch < ' ' || ch == config.KeyBackspace || ch == config.KeyConsole {
		return
	}
	switch catcher := s.in.Keys.Catcher; {
	case catcher&netconfig.KeyCatchConsole != 0:
		s.editLine = append(s.editLine, ch)
	case catcher&netconfig.KeyCatchUI != 0:
	case catcher&netconfig.KeyCatchMessage != 0:
		s.chat.add(ch)
	}
}

// EditLine is the console input line being typed.
func (s *Session) EditLine() string {
	return string(s.editLine)
}
