package protocol

import (
	"fmt"

	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
)

// EncodeAck serializes a server acknowledgement with the same bit stream.
func EncodeAck(ack messages.ServerAck) ([]byte, error) {
	w := NewWriter(netconfig.MaxMsgLen)
	w.WriteInt32(ack.MessageSequence)
	w.WriteInt32(ack.ServerID)
	w.WriteInt32(ack.ChecksumFeed)
	w.WriteInt32(ack.ReliableAcknowledge)
	w.WriteInt32(ack.ServerCommandSequence)
	w.WriteString(ack.ServerCommand)
	w.WriteUint8(uint8(ack.Phase))
	if ack.SnapshotValid {
		w.WriteBits(1, 1)
	} else {
		w.WriteBits(0, 1)
	}
	w.WriteInt32(ack.SnapshotMessageNum)
	w.WriteInt32(ack.ServerTime)
	for _, a := range ack.DeltaAngles {
		w.WriteBits(uint32(a), 16)
	}
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("encode ack: %w", err)
	}
	return w.Bytes(), nil
}

// DecodeAck parses a datagram produced by EncodeAck.
func DecodeAck(data []byte) (messages.ServerAck, error) {
	r := NewReader(data)
	var ack messages.ServerAck
	ack.MessageSequence = r.ReadInt32()
	ack.ServerID = r.ReadInt32()
	ack.ChecksumFeed = r.ReadInt32()
	ack.ReliableAcknowledge = r.ReadInt32()
	ack.ServerCommandSequence = r.ReadInt32()
	ack.ServerCommand = r.ReadString()
	ack.Phase = netconfig.Phase(r.ReadUint8())
	ack.SnapshotValid = r.ReadBits(1) == 1
	ack.SnapshotMessageNum = r.ReadInt32()
	ack.ServerTime = r.ReadInt32()
	for i := range ack.DeltaAngles {
		ack.DeltaAngles[i] = int32(r.ReadBits(16))
	}
	if err := r.Err(); err != nil {
		return messages.ServerAck{}, fmt.Errorf("decode ack: %w", err)
	}
	return ack, nil
}
