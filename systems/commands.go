package systems

import (
	"strconv"
	"strings"

	"github.com/automoto/fragclient/components"
	cfg "github.com/automoto/fragclient/config"
)

// Exec runs one input command line such as "+forward 119 5012". The
// optional arguments are the source key and the event time; a command
// typed without them acts as the console source. Exec reports false for
// commands that are not input commands.
func Exec(in *Input, line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	name := strings.ToLower(args[0])

	source, hasSource := components.SourceConsole, false
	if len(args) > 1 {
		if k, err := strconv.Atoi(args[1]); err == nil {
			source, hasSource = k, true
		}
	}
	var eventTime int
	if len(args) > 2 {
		eventTime, _ = strconv.Atoi(args[2])
	}

	switch name {
	case "+attack", "+button0":
		AttackDown(in, source, eventTime)
	case "-attack", "-button0":
		AttackUp(in, source, hasSource, eventTime)
	case "+mlook":
		in.Buttons.MLooking = true
	case "-mlook":
		in.Buttons.MLooking = false
		if !in.Cfg.FreeLook {
			CenterViewDown(in)
		}
	case "+centerview", "centerview":
		CenterViewDown(in)
	case "-centerview":
	case "+multitouch":
		MultitouchDown(in)
	case "-multitouch":
		MultitouchUp(in)
	case "gesture":
		in.Buttons.Get(cfg.Action(3)).WasPressed = true
	default:
		return execButton(in, name, source, hasSource, eventTime)
	}
	return true
}

func execButton(in *Input, name string, source int, hasSource bool, eventTime int) bool {
	if len(name) < 2 || (name[0] != '+' && name[0] != '-') {
		return false
	}
	id, ok := cfg.ButtonCommands[name[1:]]
	if !ok {
		return false
	}
	b := in.Buttons.Get(id)

	if name[0] == '+' {
		KeyDown(b, source, eventTime)
		if id == cfg.ButtonVoipRecord {
			in.Axes.VoipSend = true
		}
		return true
	}
	release(in, b, source, hasSource, eventTime)
	if id == cfg.ButtonVoipRecord {
		in.Axes.VoipSend = false
	}
	return true
}

func release(in *Input, b *components.ButtonState, source int, hasSource bool, upTime int) {
	if !hasSource {
		ReleaseAll(b) // typed at the console to unstick it
		return
	}
	KeyUp(b, source, upTime, in.Frame.FrameMsec)
}

// BindingCommand expands the binding of key for one key transition. Button
// bindings ("+forward") run on both edges with the key and time appended;
// anything else runs once on press.
func BindingCommand(binding string, key int, down bool, eventTime int) (string, bool) {
	binding = strings.TrimSpace(binding)
	if binding == "" {
		return "", false
	}
	if binding[0] != '+' {
		if !down {
			return "", false
		}
		return binding, true
	}
	name := binding
	if !down {
		name = "-" + binding[1:]
	}
	return name + " " + strconv.Itoa(key) + " " + strconv.Itoa(eventTime), true
}
