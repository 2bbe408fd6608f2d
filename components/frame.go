package components

import (
	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/yohamta/donburi"
)

// FrameData is the clock of the tick being built.
type FrameData struct {
	Realtime     int // client clock of the frame being run
	FrameTime    int // frame start, same clock as input event times
	OldFrameTime int
	FrameMsec    int // FrameTime-OldFrameTime, at most 200
	Frametime    int // real ms since the previous frame
	Phase        netconfig.Phase
	LastCmd      messages.UserCmd
}

var Frame = donburi.NewComponentType[FrameData]()

// KeysData is keyboard focus state.
type KeysData struct {
	Catcher  int // netconfig.KeyCatch* bits
	KeysDown map[int]bool
}

// AnyKeyDown reports whether any key at all is held.
func (k *KeysData) AnyKeyDown() bool {
	return len(k.KeysDown) > 0
}

var Keys = donburi.NewComponentType[KeysData]()

const graphSamples = 256

// GraphData is the debug graph history.
type GraphData struct {
	Samples [graphSamples]float64
	Next    int
}

// Push appends v, overwriting the oldest sample.
func (g *GraphData) Push(v float64) {
	g.Samples[g.Next%graphSamples] = v
	g.Next++
}

// Ordered returns samples oldest first.
func (g *GraphData) Ordered() []float64 {
	n := g.Next
	if n > graphSamples {
		n = graphSamples
	}
	out := make([]float64, 0, n)
	for i := g.Next - n; i < g.Next; i++ {
		out = append(out, g.Samples[i%graphSamples])
	}
	return out
}

var Graph = donburi.NewComponentType[GraphData]()
