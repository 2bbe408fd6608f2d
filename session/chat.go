package session

import (
	"fmt"
	"log"
	"strings"

	"github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/netconfig"
)

const maxChatChars = 255

// chat is the message mode input line.
type chat struct {
	line   []rune
	team   bool
	target int // client number for a private message, -1 for everyone

	// the character of the key that opened the line, not to be typed
	swallow rune
}

func (c *chat) add(ch rune) {
	if ch == c.swallow {
		c.swallow = 0
		return
	}
	c.swallow = 0
	if len(c.line) < maxChatChars {
		c.line = append(c.line, ch)
	}
}

func (c *chat) reset(team bool, target int) {
	c.line = c.line[:0]
	c.team = team
	c.target = target
}

// command is what the server is sent for the typed line.
func (c *chat) command() string {
	// the server splits on quotes, so none may appear inside
	text := `"` + strings.ReplaceAll(string(c.line), `"`, "'") + `"`
	switch {
	case c.target >= 0:
		return fmt.Sprintf("tell %d %s", c.target, text)
	case c.team:
		return "say_team " + text
	}
	return "say " + text
}

func (c *chat) prompt() string {
	switch {
	case c.target >= 0:
		return "tell:"
	case c.team:
		return "say_team:"
	}
	return "say:"
}

// messageMode opens the chat line. mode 1 talks to everyone, 2 to the
// team, 3 to the player under the crosshair and 4 to the last attacker.
func (s *Session) messageMode(mode int) {
	target := -1
	switch mode {
	case 3, 4:
		pick := s.hooks.CrosshairPlayer
		if mode == 4 {
			pick = s.hooks.LastAttacker
		}
		if pick == nil {
			return
		}
		target = pick()
		if target < 0 || target >= netconfig.MaxClients {
			return
		}
	}
	s.chat.reset(mode == 2, target)
	s.chat.swallow = rune(s.bindingKey)
	s.in.Keys.Catcher ^= netconfig.KeyCatchMessage
}

func (s *Session) messageKey(key int) {
	keys := s.in.Keys
	switch key {
	case config.KeyEscape:
		keys.Catcher &^= netconfig.KeyCatchMessage
		s.chat.reset(false, -1)
	case config.KeyEnter:
		if len(s.chat.line) > 0 && s.conn.Phase() == netconfig.PhaseActive {
			if err := s.AddReliableCommand(s.chat.command()); err != nil {
				log.Printf("[session] chat: %v", err)
			}
		}
		keys.Catcher &^= netconfig.KeyCatchMessage
		s.chat.reset(false, -1)
	case config.KeyBackspace:
		if n := len(s.chat.line); n > 0 {
			s.chat.line = s.chat.line[:n-1]
		}
	}
}

// ChatLine returns the open chat prompt and what has been typed, or false
// when message mode is off.
func (s *Session) ChatLine() (prompt, line string, ok bool) {
	if s.in.Keys.Catcher&netconfig.KeyCatchMessage == 0 {
		return "", "", false
	}
	return s.chat.prompt(), string(s.chat.line), true
}
