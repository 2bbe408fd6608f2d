package archetypes

import (
	"github.com/automoto/fragclient/components"
	"github.com/automoto/fragclient/tags"
	"github.com/yohamta/donburi"
)

var (
	// Client carries the whole input pipeline state of one session.
	Client = newArchetype(
		tags.LocalClient,
		components.Buttons,
		components.Axes,
		components.View,
		components.Cgame,
		components.Touch,
		components.Fire,
		components.Frame,
		components.Keys,
		components.Graph,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}

// SpawnClient creates the session entity with usable defaults. Extra
// components are added in the same step.
func SpawnClient(w donburi.World, extra ...donburi.IComponentType) *donburi.Entry {
	e := Client.Spawn(w, extra...)
	components.Keys.Get(e).KeysDown = make(map[int]bool)
	components.Cgame.Get(e).Sensitivity = 1
	return e
}
