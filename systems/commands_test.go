package systems

import (
	"testing"

	cfg "github.com/automoto/fragclient/config"
)

func TestBindingCommand(t *testing.T) {
	tests := []struct {
		binding string
		down    bool
		want    string
		ok      bool
	}{
		{"+forward", true, "+forward 119 50", true},
		{"+forward", false, "-forward 119 50", true},
		{"weapon 3", true, "weapon 3", true},
		{"weapon 3", false, "", false},
		{"", true, "", false},
	}
	for _, tt := range tests {
		got, ok := BindingCommand(tt.binding, 119, tt.down, 50)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("%q down=%v: got %q,%v, want %q,%v", tt.binding, tt.down, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExecUnknown(t *testing.T) {
	in, _ := newTestInput(t)
	for _, line := range []string{"say hello", "+nosuchbutton", "", "weapon 3"} {
		if Exec(in, line) {
			t.Fatalf("%q handled as an input command", line)
		}
	}
}

func TestExecGesture(t *testing.T) {
	in, _ := newTestInput(t)
	if !Exec(in, "gesture") {
		t.Fatalf("gesture not handled")
	}
	if !in.Buttons.Get(cfg.Action(3)).WasPressed {
		t.Fatalf("gesture button not pressed")
	}
}

func TestExecUsesSourceAndTime(t *testing.T) {
	in, _ := newTestInput(t)
	Exec(in, "+moveup 32 777")
	b := in.Buttons.Get(cfg.ButtonUp)
	if b.Down[0] != 32 || b.DownTime != 777 {
		t.Fatalf("got %+v", *b)
	}
}
