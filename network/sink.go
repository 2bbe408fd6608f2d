package network

import (
	"fmt"
	"sync"

	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/automoto/fragclient/shared/protocol"
	"github.com/automoto/fragclient/shared/ring"
)

// Sink is the receiving end of the command stream, one per client. It
// executes each reliable command once, in order, and each movement command
// once, skipping the duplicates that packet dup resends. Every accepted
// packet is answered with an ack.
type Sink struct {
	mu sync.Mutex

	serverID     int32
	checksumFeed int32
	phase        netconfig.Phase

	messageSequence  int32
	reliableAck      int32 // last client command executed
	serverCommandSeq int32
	serverCommands   *ring.Ring[string]
	lastServerTime   int32
	lastSequence     uint32

	OnCommand func(seq int32, text string)
	OnUserCmd func(cmd messages.UserCmd)
}

func NewSink(serverID, checksumFeed int32) *Sink {
	return &Sink{
		serverID:       serverID,
		checksumFeed:   checksumFeed,
		phase:          netconfig.PhaseActive,
		serverCommands: ring.New[string](netconfig.MaxReliableCommands),
	}
}

// SetPhase changes the phase reported to the client.
func (s *Sink) SetPhase(p netconfig.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
}

// AddServerCommand queues a command for the client. Its text becomes part
// of the delta key once the client has seen it.
func (s *Sink) AddServerCommand(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverCommandSeq++
	s.serverCommands.Set(int(s.serverCommandSeq), text)
}

// Handle processes one client datagram at server time now and returns the
// reply datagram.
func (s *Sink) Handle(data []byte, now int32) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := protocol.DecodeClientPacket(data, s.checksumFeed, s.commandText)
	if err != nil {
		return nil, err
	}
	if s.lastSequence != 0 && p.Sequence <= s.lastSequence {
		return nil, fmt.Errorf("out of order packet %d after %d", p.Sequence, s.lastSequence)
	}
	s.lastSequence = p.Sequence

	for _, rc := range p.Commands {
		if rc.Sequence != s.reliableAck+1 {
			continue // already executed, or a gap the client will refill
		}
		s.reliableAck = rc.Sequence
		if s.OnCommand != nil {
			s.OnCommand(rc.Sequence, rc.Text)
		}
	}

	for _, cmd := range p.UserCmds {
		if cmd.ServerTime <= s.lastServerTime {
			continue
		}
		s.lastServerTime = cmd.ServerTime
		if s.OnUserCmd != nil {
			s.OnUserCmd(cmd)
		}
	}

	s.messageSequence++
	return protocol.EncodeAck(messages.ServerAck{
		MessageSequence:       s.messageSequence,
		ServerID:              s.serverID,
		ChecksumFeed:          s.checksumFeed,
		ReliableAcknowledge:   s.reliableAck,
		ServerCommandSequence: s.serverCommandSeq,
		ServerCommand:         s.commandText(s.serverCommandSeq),
		Phase:                 s.phase,
		SnapshotValid:         true,
		SnapshotMessageNum:    s.messageSequence,
		ServerTime:            now,
	})
}

func (s *Sink) commandText(seq int32) string {
	if seq <= 0 {
		return ""
	}
	return s.serverCommands.Get(int(seq))
}
