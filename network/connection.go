package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/automoto/fragclient/shared/protocol"
	"github.com/automoto/fragclient/shared/ring"
)

var (
	// ErrCommandOverflow means the server stopped acknowledging reliable
	// commands. The session drops.
	ErrCommandOverflow = errors.New("client command overflow")
	ErrNotConnected    = errors.New("not connected")
)

// ServerState is what the client last heard from the server. The
// transmitter keys and windows every packet on it.
type ServerState struct {
	Phase                 netconfig.Phase
	ServerID              int32
	MessageSequence       int32
	ChecksumFeed          int32
	ServerCommandSequence int32
	LastServerCommand     string
	SnapshotValid         bool
	SnapshotMessageNum    int32
	ServerTime            int32
	DeltaAngles           [3]int32
	ReliableSequence      int32
	ReliableAcknowledge   int32
	Acks                  int
}

// Connection is the client end of one server connection. The receive loop
// applies acks on its own goroutine; the tick reads through State.
// All shared fields are protected by mu.
type Connection struct {
	mu sync.RWMutex

	transport Transport
	state     ServerState
	lastError error

	serverCommands   *ring.Ring[string]
	reliableCommands *ring.Ring[string]
}

func NewConnection(t Transport) *Connection {
	return &Connection{
		transport:        t,
		state:            ServerState{Phase: netconfig.PhaseConnecting},
		serverCommands:   ring.New[string](netconfig.MaxReliableCommands),
		reliableCommands: ring.New[string](netconfig.MaxReliableCommands),
	}
}

// Start runs the receive loop in the background until ctx is done or the
// transport fails.
func (c *Connection) Start(ctx context.Context) {
	go func() {
		for {
			data, err := c.transport.Receive(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.setError(fmt.Errorf("receive: %w", err))
				return
			}
			ack, err := protocol.DecodeAck(data)
			if err != nil {
				log.Printf("[net] dropping bad datagram: %v", err)
				continue
			}
			c.ApplyAck(ack)
		}
	}()
}

// ApplyAck folds a server acknowledgement into the connection state. Acks
// that arrive out of order are ignored.
func (c *Connection) ApplyAck(ack messages.ServerAck) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &c.state
	if s.Phase == netconfig.PhaseDisconnected {
		return
	}
	if s.Acks > 0 && ack.MessageSequence <= s.MessageSequence {
		return
	}
	if s.Acks == 0 {
		log.Printf("[net] connected: server=%d phase=%s", ack.ServerID, ack.Phase)
	}
	s.Acks++

	s.MessageSequence = ack.MessageSequence
	s.ServerID = ack.ServerID
	s.ChecksumFeed = ack.ChecksumFeed
	s.Phase = ack.Phase
	s.SnapshotValid = ack.SnapshotValid
	s.SnapshotMessageNum = ack.SnapshotMessageNum
	s.ServerTime = ack.ServerTime
	s.DeltaAngles = ack.DeltaAngles

	if ack.ReliableAcknowledge > s.ReliableAcknowledge && ack.ReliableAcknowledge <= s.ReliableSequence {
		s.ReliableAcknowledge = ack.ReliableAcknowledge
	}
	// the server lost track of more commands than we keep
	if s.ReliableAcknowledge < s.ReliableSequence-netconfig.MaxReliableCommands {
		s.ReliableAcknowledge = s.ReliableSequence
	}

	if ack.ServerCommandSequence > s.ServerCommandSequence {
		s.ServerCommandSequence = ack.ServerCommandSequence
		c.serverCommands.Set(int(ack.ServerCommandSequence), ack.ServerCommand)
		s.LastServerCommand = ack.ServerCommand
	}
}

// AddReliableCommand queues text to be sent in every packet until the
// server acknowledges it.
func (c *Connection) AddReliableCommand(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &c.state
	if s.Phase == netconfig.PhaseDisconnected {
		return ErrNotConnected
	}
	if s.ReliableSequence-s.ReliableAcknowledge >= netconfig.MaxReliableCommands {
		return fmt.Errorf("add %q: %w", text, ErrCommandOverflow)
	}
	s.ReliableSequence++
	c.reliableCommands.Set(int(s.ReliableSequence), text)
	return nil
}

// PendingCommands returns the unacknowledged reliable commands in order.
func (c *Connection) PendingCommands() []messages.ReliableCommand {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []messages.ReliableCommand
	for seq := c.state.ReliableAcknowledge + 1; seq <= c.state.ReliableSequence; seq++ {
		out = append(out, messages.ReliableCommand{
			Sequence: seq,
			Text:     c.reliableCommands.Get(int(seq)),
		})
	}
	return out
}

// ServerCommand returns the text of server command seq if it is still held.
func (c *Connection) ServerCommand(seq int32) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if seq <= 0 || seq > c.state.ServerCommandSequence || seq <= c.state.ServerCommandSequence-netconfig.MaxReliableCommands {
		return "", false
	}
	return c.serverCommands.Get(int(seq)), true
}

func (c *Connection) State() ServerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Connection) Phase() netconfig.Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Phase
}

func (c *Connection) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Connection) Address() netconfig.AddressClass {
	return c.transport.Address()
}

// Send writes one datagram. It fails only once the connection is down.
func (c *Connection) Send(data []byte) error {
	if c.Phase() == netconfig.PhaseDisconnected {
		return ErrNotConnected
	}
	return c.transport.Send(data)
}

// Drop marks the connection dead with err and closes the transport.
func (c *Connection) Drop(err error) {
	c.setError(err)
	_ = c.transport.Close()
}

func (c *Connection) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase == netconfig.PhaseDisconnected {
		return
	}
	log.Printf("[net] disconnected: %v", err)
	c.state.Phase = netconfig.PhaseDisconnected
	c.lastError = err
}
