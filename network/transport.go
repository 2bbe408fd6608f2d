package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/coder/websocket"
	"golang.org/x/time/rate"
)

// ErrClosed is returned by a transport after Close.
var ErrClosed = errors.New("transport closed")

// Transport carries whole datagrams. Send never blocks the tick; a
// datagram that cannot be queued is dropped like a lost packet.
type Transport interface {
	Send(data []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Address() netconfig.AddressClass
	Close() error
}

// ClassifyIP reports whether ip is on the local network. Loopback
// addresses count as LAN; only an in-process transport is loopback.
func ClassifyIP(ip net.IP) netconfig.AddressClass {
	if ip == nil {
		return netconfig.AddressRemote
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
		return netconfig.AddressLAN
	}
	return netconfig.AddressRemote
}

// ClassifyHost classifies a host name or literal address without a lookup.
func ClassifyHost(host string) netconfig.AddressClass {
	if host == "localhost" {
		return netconfig.AddressLAN
	}
	return ClassifyIP(net.ParseIP(host))
}

const readPoll = 250 * time.Millisecond

// UDPTransport is a connected UDP socket.
type UDPTransport struct {
	conn    *net.UDPConn
	address netconfig.AddressClass
}

// DialUDP connects to a host:port server address.
func DialUDP(address string) (*UDPTransport, error) {
	raddr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", address, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return &UDPTransport{conn: conn, address: ClassifyIP(raddr.IP)}, nil
}

func (t *UDPTransport) Send(data []byte) error {
	_, err := t.conn.Write(data)
	return err
}

// Receive waits for the next datagram, polling so ctx can stop it.
func (t *UDPTransport) Receive(ctx context.Context) ([]byte, error) {
	buf := make([]byte, netconfig.MaxMsgLen)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := t.conn.SetReadDeadline(time.Now().Add(readPoll)); err != nil {
			return nil, err
		}
		n, err := t.conn.Read(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return nil, err
		}
		return buf[:n], nil
	}
}

func (t *UDPTransport) Address() netconfig.AddressClass {
	return t.address
}

func (t *UDPTransport) Close() error {
	return t.conn.Close()
}

const wsQueueSize = 64

var wsDropLog = rate.Sometimes{Interval: time.Second}

// WSTransport sends each datagram as one binary WebSocket message. Writes
// go through a queue drained by a writer goroutine.
type WSTransport struct {
	conn    *websocket.Conn
	address netconfig.AddressClass
	sendCh  chan []byte
	done    chan struct{}
	cancel  context.CancelFunc
}

// DialWS connects to a ws:// or wss:// URL.
func DialWS(ctx context.Context, rawURL string) (*WSTransport, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	conn, _, err := websocket.Dial(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rawURL, err)
	}
	return NewWSTransport(conn, ClassifyHost(u.Hostname())), nil
}

// NewWSTransport wraps an established connection, client or server side.
func NewWSTransport(conn *websocket.Conn, address netconfig.AddressClass) *WSTransport {
	conn.SetReadLimit(netconfig.MaxMsgLen)
	ctx, cancel := context.WithCancel(context.Background())
	t := &WSTransport{
		conn:    conn,
		address: address,
		sendCh:  make(chan []byte, wsQueueSize),
		done:    make(chan struct{}),
		cancel:  cancel,
	}
	go t.writeLoop(ctx)
	return t
}

func (t *WSTransport) writeLoop(ctx context.Context) {
	defer close(t.done)
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-t.sendCh:
			if err := t.conn.Write(ctx, websocket.MessageBinary, data); err != nil {
				log.Printf("[net] websocket write: %v", err)
				return
			}
		}
	}
}

func (t *WSTransport) Send(data []byte) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}
	select {
	case t.sendCh <- data:
	default:
		wsDropLog.Do(func() {
			log.Printf("[net] websocket send queue full, dropping datagram")
		})
	}
	return nil
}

func (t *WSTransport) Receive(ctx context.Context) ([]byte, error) {
	for {
		typ, data, err := t.conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ == websocket.MessageBinary {
			return data, nil
		}
	}
}

func (t *WSTransport) Address() netconfig.AddressClass {
	return t.address
}

func (t *WSTransport) Close() error {
	t.cancel()
	return t.conn.Close(websocket.StatusNormalClosure, "")
}

const loopbackQueueSize = 64

// LoopbackTransport is one end of an in-process datagram pipe.
type LoopbackTransport struct {
	in        chan []byte
	out       chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

// NewLoopbackPair returns two connected ends.
func NewLoopbackPair() (*LoopbackTransport, *LoopbackTransport) {
	a := make(chan []byte, loopbackQueueSize)
	b := make(chan []byte, loopbackQueueSize)
	return &LoopbackTransport{in: a, out: b, closed: make(chan struct{})},
		&LoopbackTransport{in: b, out: a, closed: make(chan struct{})}
}

func (t *LoopbackTransport) Send(data []byte) error {
	select {
	case <-t.closed:
		return ErrClosed
	default:
	}
	buf := append([]byte(nil), data...)
	select {
	case t.out <- buf:
	default: // full, dropped
	}
	return nil
}

func (t *LoopbackTransport) Receive(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.closed:
		return nil, ErrClosed
	case data := <-t.in:
		return data, nil
	}
}

// TryReceive returns a queued datagram without waiting.
func (t *LoopbackTransport) TryReceive() ([]byte, bool) {
	select {
	case data := <-t.in:
		return data, true
	default:
		return nil, false
	}
}

func (t *LoopbackTransport) Address() netconfig.AddressClass {
	return netconfig.AddressLoopback
}

func (t *LoopbackTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}
