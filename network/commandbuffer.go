package network

import (
	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/automoto/fragclient/shared/ring"
)

// CommandBuffer is a ring of the most recently created commands, addressed
// by command number. Numbers start at 1 and grow by one per tick.
type CommandBuffer struct {
	cmds   *ring.Ring[messages.UserCmd]
	number int // newest command number, 0 before the first
}

func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{cmds: ring.New[messages.UserCmd](netconfig.CmdBackup)}
}

// Append stores cmd under the next command number and returns it.
func (b *CommandBuffer) Append(cmd messages.UserCmd) int {
	b.number++
	b.cmds.Set(b.number, cmd)
	return b.number
}

// Number returns the newest command number.
func (b *CommandBuffer) Number() int {
	return b.number
}

// Oldest returns the oldest command number still held, or 0 when empty.
func (b *CommandBuffer) Oldest() int {
	if b.number == 0 {
		return 0
	}
	return max(1, b.number-b.cmds.Cap()+1)
}

// Get retrieves command n. Returns false if n was never created or has
// been overwritten.
func (b *CommandBuffer) Get(n int) (messages.UserCmd, bool) {
	if n < b.Oldest() || n > b.number || n == 0 {
		return messages.UserCmd{}, false
	}
	return b.cmds.Get(n), true
}

// Latest returns the newest command, or the zero command before the first.
func (b *CommandBuffer) Latest() messages.UserCmd {
	if b.number == 0 {
		return messages.UserCmd{}
	}
	return b.cmds.Get(b.number)
}

// Window returns the newest count commands, oldest first.
func (b *CommandBuffer) Window(count int) []messages.UserCmd {
	if b.number == 0 {
		return nil
	}
	count = min(count, b.number-b.Oldest()+1)
	if count <= 0 {
		return nil
	}
	out := make([]messages.UserCmd, 0, count)
	for n := b.number - count + 1; n <= b.number; n++ {
		out = append(out, b.cmds.Get(n))
	}
	return out
}

// Reset forgets every command, as on a new connection.
func (b *CommandBuffer) Reset() {
	b.cmds.Reset()
	b.number = 0
}
