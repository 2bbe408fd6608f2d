package systems

import (
	"testing"

	"github.com/automoto/fragclient/archetypes"
	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/messages"
	"github.com/yohamta/donburi"
)

type execLog struct {
	lines []string
}

func (l *execLog) exec(line string) {
	l.lines = append(l.lines, line)
}

func newTestInput(t *testing.T) (*Input, *execLog) {
	t.Helper()
	w := donburi.NewWorld()
	e := archetypes.SpawnClient(w)
	c := cfg.Default()
	log := &execLog{}
	in := NewInput(e, &c, Hooks{Exec: log.exec})
	return in, log
}

// frame advances the frame clock by msec and builds a command.
func frame(in *Input, msec int) messages.UserCmd {
	in.Frame.Frametime = msec
	in.Frame.FrameTime += msec
	in.Frame.FrameMsec = msec
	return CreateCmd(in)
}

type sliceStore struct {
	cmds []messages.UserCmd
}

func (s *sliceStore) Append(cmd messages.UserCmd) int {
	s.cmds = append(s.cmds, cmd)
	return len(s.cmds)
}
