package systems

import (
	"github.com/automoto/fragclient/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// PipelineData links the local client entity to what lives outside the
// world: its config and hooks, the command stream and the packet sender.
type PipelineData struct {
	Input *Input
	Store CommandStore

	// Pacing is filled in by the frame driver before the systems run.
	Pacing PacingInput
	Send   func(realtime int) error

	// Err is the first error of the frame. Once set, the rest of the
	// frame is skipped.
	Err error
}

// Fail records err unless an earlier error is already pending.
func (p *PipelineData) Fail(err error) {
	if err != nil && p.Err == nil {
		p.Err = err
	}
}

var Pipeline = donburi.NewComponentType[PipelineData]()

func localPipeline(e *ecs.ECS) (*PipelineData, bool) {
	entry, ok := tags.LocalClient.First(e.World)
	if !ok || !entry.HasComponent(Pipeline) {
		return nil, false
	}
	return Pipeline.Get(entry), true
}

// UpdateEvents drains the input queued since the previous frame.
// Must run before UpdateCommands.
func UpdateEvents(e *ecs.ECS) {
	events.ProcessAllEvents(e.World)
}

// UpdateCommands builds the local client's command for this frame.
func UpdateCommands(e *ecs.ECS) {
	p, ok := localPipeline(e)
	if !ok || p.Err != nil {
		return
	}
	CreateNewCommands(p.Input, p.Store, p.Input.Frame.Realtime)
}

// UpdatePacket sends a packet when the pacing gate allows one.
// Must run after UpdateCommands.
func UpdatePacket(e *ecs.ECS) {
	p, ok := localPipeline(e)
	if !ok || p.Err != nil || p.Send == nil {
		return
	}
	if !ReadyToSendPacket(p.Pacing) {
		return
	}
	p.Fail(p.Send(p.Input.Frame.Realtime))
}
