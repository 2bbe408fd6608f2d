package session

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/automoto/fragclient/systems"
)

// Exec runs one command line: input commands latch buttons, console and
// settings commands run locally, the game module gets the next look, and
// anything left is sent to the server.
func (s *Session) Exec(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if systems.Exec(s.in, line) {
		return
	}

	args := strings.Fields(line)
	switch strings.ToLower(args[0]) {
	case "toggleconsole":
		s.toggleConsole()
	case "clear":
		s.con.Clear()
	case "condump":
		s.condump(args)
	case "echo":
		s.con.Print(strings.Join(args[1:], " ") + "\n")
	case "bind":
		s.bind(args)
	case "unbind":
		s.unbind(args)
	case "messagemode":
		s.messageMode(1)
	case "messagemode2":
		s.messageMode(2)
	case "messagemode3":
		s.messageMode(3)
	case "messagemode4":
		s.messageMode(4)
	case "cl_maxpackets":
		s.intSetting(args, s.cfg.MaxPackets, s.cfg.SetMaxPackets)
	case "cl_packetdup":
		s.intSetting(args, s.cfg.PacketDup, s.cfg.SetPacketDup)
	default:
		if s.hooks.Command != nil && s.hooks.Command(line) {
			return
		}
		if err := s.AddReliableCommand(line); err != nil {
			log.Printf("[session] %v", err)
		}
	}
}

func (s *Session) toggleConsole() {
	keys := s.in.Keys
	s.editLine = s.editLine[:0]
	if keys.Catcher&netconfig.KeyCatchConsole != 0 {
		keys.Catcher &^= netconfig.KeyCatchConsole
		s.slide.SetOpen(false)
		return
	}
	s.con.ClearNotify()
	keys.Catcher |= netconfig.KeyCatchConsole
	s.slide.SetOpen(true)
}

func (s *Session) condump(args []string) {
	if len(args) != 2 {
		s.con.Print("usage: condump <filename>\n")
		return
	}
	f, err := os.Create(args[1])
	if err != nil {
		s.con.Printf("ERROR: couldn't open %s: %v\n", args[1], err)
		return
	}
	defer f.Close()
	if err := s.con.Dump(f); err != nil {
		s.con.Printf("ERROR: %v\n", err)
		return
	}
	s.con.Printf("Dumped console text to %s.\n", args[1])
}

func (s *Session) bind(args []string) {
	if len(args) < 2 {
		s.con.Print("bind <key> [command] : attach a command to a key\n")
		return
	}
	key, ok := config.KeyByName(args[1])
	if !ok {
		s.con.Printf("\"%s\" isn't a valid key\n", args[1])
		return
	}
	if len(args) == 2 {
		if cmd, ok := s.bindings[key]; ok {
			s.con.Printf("\"%s\" = \"%s\"\n", args[1], cmd)
		} else {
			s.con.Printf("\"%s\" is not bound\n", args[1])
		}
		return
	}
	s.bindings[key] = strings.Join(args[2:], " ")
}

func (s *Session) unbind(args []string) {
	if len(args) != 2 {
		s.con.Print("unbind <key> : remove commands from a key\n")
		return
	}
	key, ok := config.KeyByName(args[1])
	if !ok {
		s.con.Printf("\"%s\" isn't a valid key\n", args[1])
		return
	}
	delete(s.bindings, key)
}

func (s *Session) intSetting(args []string, current int, set func(int)) {
	if len(args) < 2 {
		s.con.Printf("\"%s\" is \"%d\"\n", args[0], current)
		return
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		s.con.Printf("%s: %v\n", args[0], err)
		return
	}
	set(n)
}
