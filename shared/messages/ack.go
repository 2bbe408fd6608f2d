package messages

import "github.com/automoto/fragclient/shared/netconfig"

// ServerAck is the sink's reply to a client packet. It carries everything the
// transmitter keys and windows its next packet on.
type ServerAck struct {
	MessageSequence       int32 // sequence of this server message
	ServerID              int32
	ChecksumFeed          int32
	ReliableAcknowledge   int32 // last client command the server executed
	ServerCommandSequence int32
	ServerCommand         string // text of ServerCommandSequence
	Phase                 netconfig.Phase
	SnapshotValid         bool
	SnapshotMessageNum    int32
	ServerTime            int32    // game clock of the snapshot, ms
	DeltaAngles           [3]int32 // 16 bit wire angles
}

// ReliableCommand is a client text command awaiting acknowledgement.
type ReliableCommand struct {
	Sequence int32
	Text     string
}
