package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
)

// HeaderSize is the netchan header: uint32 sequence and uint16 qport, both
// little endian, ahead of the bit stream.
const HeaderSize = 6

// ClientPacket is one client to server datagram.
//
//	header : sequence, qport
//	long   : server id
//	long   : last server message received
//	long   : last server command received
//	{ byte clcClientCommand, long seq, string text }
//	[ byte clcMove|clcMoveNoDelta, byte count, count x delta usercmd ]
//	byte   : clcEOF
type ClientPacket struct {
	Sequence              uint32
	QPort                 uint16
	ServerID              int32
	MessageAcknowledge    int32
	ServerCommandSequence int32
	Commands              []messages.ReliableCommand
	NoDelta               bool
	UserCmds              []messages.UserCmd
}

// Encode serializes the packet, delta compressing UserCmds against each
// other in order, starting from the zero command.
func (p *ClientPacket) Encode(key int32) ([]byte, error) {
	if len(p.UserCmds) > netconfig.MaxPacketUsercmds {
		return nil, fmt.Errorf("encode client packet: %d usercmds exceeds %d", len(p.UserCmds), netconfig.MaxPacketUsercmds)
	}

	w := NewWriter(netconfig.MaxMsgLen - HeaderSize)
	w.WriteInt32(p.ServerID)
	w.WriteInt32(p.MessageAcknowledge)
	w.WriteInt32(p.ServerCommandSequence)

	for _, c := range p.Commands {
		w.WriteUint8(netconfig.ClcClientCommand)
		w.WriteInt32(c.Sequence)
		w.WriteString(c.Text)
	}

	if len(p.UserCmds) > 0 {
		if p.NoDelta {
			w.WriteUint8(netconfig.ClcMoveNoDelta)
		} else {
			w.WriteUint8(netconfig.ClcMove)
		}
		w.WriteUint8(uint8(len(p.UserCmds)))

		var old messages.UserCmd
		for i := range p.UserCmds {
			WriteDeltaUsercmdKey(w, key, &old, &p.UserCmds[i])
			old = p.UserCmds[i]
		}
	}
	w.WriteUint8(netconfig.ClcEOF)

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("encode client packet: %w", err)
	}

	body := w.Bytes()
	out := make([]byte, HeaderSize, HeaderSize+len(body))
	binary.LittleEndian.PutUint32(out[0:4], p.Sequence)
	binary.LittleEndian.PutUint16(out[4:6], p.QPort)
	return append(out, body...), nil
}

// DecodeClientPacket parses a client datagram. The receiver supplies the
// checksum feed it handed out and a lookup for the text of the server
// commands it sent, which together reproduce the delta key.
func DecodeClientPacket(data []byte, checksumFeed int32, serverCommand func(seq int32) string) (*ClientPacket, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("decode client packet: %w", ErrShortRead)
	}
	p := &ClientPacket{
		Sequence: binary.LittleEndian.Uint32(data[0:4]),
		QPort:    binary.LittleEndian.Uint16(data[4:6]),
	}

	r := NewReader(data[HeaderSize:])
	p.ServerID = r.ReadInt32()
	p.MessageAcknowledge = r.ReadInt32()
	p.ServerCommandSequence = r.ReadInt32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode client packet header: %w", err)
	}

	// a client that has heard nothing yet cannot know the feed
	if p.MessageAcknowledge == 0 {
		checksumFeed = 0
	}
	key := CommandKey(checksumFeed, p.MessageAcknowledge, serverCommand(p.ServerCommandSequence))

	for {
		op := r.ReadUint8()
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("decode client packet: %w", err)
		}
		switch op {
		case netconfig.ClcEOF:
			return p, nil
		case netconfig.ClcNop:
		case netconfig.ClcClientCommand:
			seq := r.ReadInt32()
			text := r.ReadString()
			p.Commands = append(p.Commands, messages.ReliableCommand{Sequence: seq, Text: text})
		case netconfig.ClcMove, netconfig.ClcMoveNoDelta:
			p.NoDelta = op == netconfig.ClcMoveNoDelta
			count := int(r.ReadUint8())
			if count < 1 || count > netconfig.MaxPacketUsercmds {
				return nil, fmt.Errorf("decode client packet: bad usercmd count %d", count)
			}
			var old messages.UserCmd
			for i := 0; i < count; i++ {
				cmd := ReadDeltaUsercmdKey(r, key, &old)
				p.UserCmds = append(p.UserCmds, cmd)
				old = cmd
			}
		default:
			return nil, fmt.Errorf("decode client packet: unknown opcode %d", op)
		}
	}
}
