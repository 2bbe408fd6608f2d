// Command cmdsink is a headless receiver for the client command stream.
// It decodes every packet, logs the commands it carries and answers with
// acks, which is enough to drive a client through its whole send path.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/automoto/fragclient/network"
	"github.com/automoto/fragclient/shared/messages"
	"github.com/automoto/fragclient/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/dustin/go-humanize"
)

type sinkServer struct {
	feed    int32
	verbose bool
	start   time.Time

	mu    sync.Mutex
	peers map[string]*peer
	next  int32
}

type peer struct {
	sink  *network.Sink
	bytes atomic.Uint64
	cmds  atomic.Int64
}

func newSinkServer(feed int32, verbose bool) *sinkServer {
	return &sinkServer{feed: feed, verbose: verbose, start: time.Now(), peers: map[string]*peer{}}
}

func (s *sinkServer) now() int32 {
	return int32(time.Since(s.start).Milliseconds())
}

func (s *sinkServer) peer(addr string) *peer {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.peers[addr]
	if ok {
		return p
	}
	s.next++
	p = &peer{sink: network.NewSink(s.next, s.feed)}
	p.sink.OnCommand = func(seq int32, text string) {
		log.Printf("[sink] %s command %d: %s", addr, seq, text)
	}
	p.sink.OnUserCmd = func(cmd messages.UserCmd) {
		p.cmds.Add(1)
		if s.verbose {
			log.Printf("[sink] %s t=%d fwd=%d side=%d up=%d buttons=%#x weapon=%d",
				addr, cmd.ServerTime, cmd.ForwardMove, cmd.RightMove, cmd.UpMove, cmd.Buttons, cmd.Weapon)
		}
	}
	s.peers[addr] = p
	log.Printf("[sink] new client %s (server id %d)", addr, s.next)
	return p
}

// handle answers one datagram from addr. It returns nil for datagrams
// that are dropped.
func (s *sinkServer) handle(addr string, data []byte) []byte {
	p := s.peer(addr)
	p.bytes.Add(uint64(len(data)))
	reply, err := p.sink.Handle(data, s.now())
	if err != nil {
		log.Printf("[sink] %s: %v", addr, err)
		return nil
	}
	return reply
}

func (s *sinkServer) serveUDP(ctx context.Context, addr string) error {
	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		pc.Close()
	}()
	log.Printf("[sink] listening on udp %s", pc.LocalAddr())

	buf := make([]byte, netconfig.MaxMsgLen)
	for {
		n, from, err := pc.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if reply := s.handle(from.String(), buf[:n]); reply != nil {
			if _, err := pc.WriteTo(reply, from); err != nil {
				log.Printf("[sink] reply to %s: %v", from, err)
			}
		}
	}
}

func (s *sinkServer) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[sink] accept %s: %v", r.RemoteAddr, err)
		return
	}
	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	t := network.NewWSTransport(conn, network.ClassifyHost(host))
	defer t.Close()

	for {
		data, err := t.Receive(r.Context())
		if err != nil {
			if !errors.Is(err, network.ErrClosed) && r.Context().Err() == nil {
				log.Printf("[sink] %s: %v", r.RemoteAddr, err)
			}
			return
		}
		if reply := s.handle(r.RemoteAddr, data); reply != nil {
			t.Send(reply)
		}
	}
}

func (s *sinkServer) report() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, p := range s.peers {
		log.Printf("[sink] %s: %d commands, %s received", addr, p.cmds.Load(), humanize.Bytes(p.bytes.Load()))
	}
}

func main() {
	udpAddr := flag.String("udp", ":27960", "UDP listen address, empty to disable")
	wsAddr := flag.String("ws", "", "WebSocket listen address, empty to disable")
	feed := flag.Int("feed", 0x5eed, "checksum feed handed to clients")
	verbose := flag.Bool("v", false, "log every movement command")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSinkServer(int32(*feed), *verbose)

	if *wsAddr != "" {
		srv := &http.Server{Addr: *wsAddr, Handler: http.HandlerFunc(s.serveWS)}
		go func() {
			log.Printf("[sink] listening on ws %s", *wsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("WebSocket server error: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			srv.Close()
		}()
	}

	if *udpAddr != "" {
		if err := s.serveUDP(ctx, *udpAddr); err != nil {
			log.Fatalf("UDP server error: %v", err)
		}
	} else {
		<-ctx.Done()
	}

	log.Println("Shutting down sink...")
	s.report()
}
