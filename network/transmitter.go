package network

import (
	"fmt"
	"log"
	"time"

	"github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/automoto/fragclient/shared/protocol"
	"github.com/automoto/fragclient/shared/ring"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// Link is the part of a connection the transmitter writes through.
type Link interface {
	State() ServerState
	PendingCommands() []messages.ReliableCommand
	Send(data []byte) error
}

var (
	truncateLog = rate.Sometimes{Interval: time.Second}
	sendLog     = rate.Sometimes{Interval: time.Second}
)

// Transmitter builds and sends client packets. It runs on the tick only.
type Transmitter struct {
	link       Link
	cmds       *CommandBuffer
	outPackets *ring.Ring[messages.OutPacket]
	qport      uint16

	outgoingSequence uint32

	bytesSent   uint64
	packetsSent int
}

func NewTransmitter(link Link, cmds *CommandBuffer, qport uint16) *Transmitter {
	return &Transmitter{
		link:             link,
		cmds:             cmds,
		outPackets:       ring.New[messages.OutPacket](netconfig.PacketBackup),
		qport:            qport,
		outgoingSequence: 1,
	}
}

// SinceLastSend is the time since the previous packet went out.
func (t *Transmitter) SinceLastSend(realtime int) time.Duration {
	last := t.outPackets.Get(int(t.outgoingSequence) - 1)
	return time.Duration(realtime-last.RealTime) * time.Millisecond
}

// OutgoingSequence is the sequence the next packet will carry.
func (t *Transmitter) OutgoingSequence() uint32 {
	return t.outgoingSequence
}

// OutPacket returns the record of the packet sent with sequence seq.
func (t *Transmitter) OutPacket(seq uint32) messages.OutPacket {
	return t.outPackets.Get(int(seq))
}

// WritePacket sends every unacknowledged reliable command and the commands
// created since the previous packet, repeating those of the last PacketDup
// packets as well. A transport failure is logged, not returned: a lost
// packet is covered by the next one.
func (t *Transmitter) WritePacket(realtime int, c *config.ClientConfig) error {
	st := t.link.State()

	p := protocol.ClientPacket{
		Sequence:              t.outgoingSequence,
		QPort:                 t.qport,
		ServerID:              st.ServerID,
		MessageAcknowledge:    st.MessageSequence,
		ServerCommandSequence: st.ServerCommandSequence,
		Commands:              t.link.PendingCommands(),
	}

	// duplicate older packets' commands to ride out packet loss
	dup := config.ClampPacketDup(c.PacketDup)
	old := t.outPackets.Get(int(t.outgoingSequence) - 1 - dup)
	count := t.cmds.Number() - old.CmdNumber
	if count > netconfig.MaxPacketUsercmds {
		count = netconfig.MaxPacketUsercmds
		truncateLog.Do(func() {
			log.Printf("[net] too many commands for one packet, sending the newest %d", count)
		})
	}

	if count >= 1 {
		p.NoDelta = c.NoDelta || !st.SnapshotValid || st.MessageSequence != st.SnapshotMessageNum
		p.UserCmds = t.cmds.Window(count)
	}

	key := protocol.CommandKey(st.ChecksumFeed, st.MessageSequence, st.LastServerCommand)
	data, err := p.Encode(key)
	if err != nil {
		return fmt.Errorf("write packet %d: %w", t.outgoingSequence, err)
	}

	// a packet without commands carries no server time
	var serverTime int32
	if count >= 1 {
		serverTime = t.cmds.Latest().ServerTime
	}
	t.outPackets.Set(int(t.outgoingSequence), messages.OutPacket{
		RealTime:   realtime,
		ServerTime: serverTime,
		CmdNumber:  t.cmds.Number(),
	})
	t.outgoingSequence++

	t.bytesSent += uint64(len(data))
	t.packetsSent++
	if c.ShowSend {
		log.Printf("[net] packet %d: %d cmds, %d reliable, %s (total %s)",
			p.Sequence, len(p.UserCmds), len(p.Commands),
			humanize.Bytes(uint64(len(data))), humanize.Bytes(t.bytesSent))
	}

	if err := t.link.Send(data); err != nil {
		sendLog.Do(func() {
			log.Printf("[net] send: %v", err)
		})
	}
	return nil
}

// Stats reports totals since the transmitter was created.
func (t *Transmitter) Stats() (packets int, bytes uint64) {
	return t.packetsSent, t.bytesSent
}
