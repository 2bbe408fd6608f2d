package network

import (
	"testing"

	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
)

func TestCommandBufferSequence(t *testing.T) {
	b := NewCommandBuffer()
	for i := 1; i <= 10; i++ {
		if n := b.Append(messages.UserCmd{ServerTime: int32(i)}); n != i {
			t.Fatalf("append %d got number %d", i, n)
		}
	}
	cmd, ok := b.Get(4)
	if !ok || cmd.ServerTime != 4 {
		t.Fatalf("get 4: %+v %v", cmd, ok)
	}
	if _, ok := b.Get(11); ok {
		t.Fatalf("got a command from the future")
	}
	if _, ok := b.Get(0); ok {
		t.Fatalf("got command 0")
	}
}

func TestCommandBufferWrap(t *testing.T) {
	b := NewCommandBuffer()
	total := netconfig.CmdBackup*2 + 5
	for i := 1; i <= total; i++ {
		b.Append(messages.UserCmd{ServerTime: int32(i)})
	}

	oldest := total - netconfig.CmdBackup + 1
	if b.Oldest() != oldest {
		t.Fatalf("oldest got %d, want %d", b.Oldest(), oldest)
	}
	cmd, ok := b.Get(oldest)
	if !ok || cmd.ServerTime != int32(oldest) {
		t.Fatalf("oldest command %+v %v", cmd, ok)
	}
	if _, ok := b.Get(oldest - 1); ok {
		t.Fatalf("overwritten command still readable")
	}
}

func TestCommandBufferWindow(t *testing.T) {
	b := NewCommandBuffer()
	if w := b.Window(5); w != nil {
		t.Fatalf("empty buffer window %v", w)
	}
	for i := 1; i <= 6; i++ {
		b.Append(messages.UserCmd{ServerTime: int32(i)})
	}
	w := b.Window(3)
	if len(w) != 3 || w[0].ServerTime != 4 || w[2].ServerTime != 6 {
		t.Fatalf("window %+v", w)
	}
	if w := b.Window(100); len(w) != 6 {
		t.Fatalf("window longer than history: %d", len(w))
	}
	if b.Latest().ServerTime != 6 {
		t.Fatalf("latest %+v", b.Latest())
	}
}
