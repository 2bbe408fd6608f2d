package systems

import (
	"time"

	cfg "github.com/automoto/fragclient/config"
	"github.com/automoto/fragclient/shared/netconfig"
)

const (
	downloadInterval  = 50 * time.Millisecond
	handshakeInterval = time.Second
)

// PacingInput is everything the send decision depends on.
type PacingInput struct {
	Phase           netconfig.Phase
	DemoPlaying     bool
	Downloading     bool
	Address         netconfig.AddressClass
	LANForcePackets bool
	SinceLastSend   time.Duration
	MaxPackets      int // clamped to the allowed range here
}

// ReadyToSendPacket decides whether this tick transmits. It only
// rate-limits: a packet always carries every command created since the
// previous one.
func ReadyToSendPacket(p PacingInput) bool {
	// don't send anything if playing back a demo
	if p.DemoPlaying || p.Phase == netconfig.PhaseCinematic {
		return false
	}

	// a download gets a steady trickle of acks
	if p.Downloading && p.SinceLastSend < downloadInterval {
		return false
	}

	// while connecting only a packet a second is needed
	if p.Phase != netconfig.PhaseActive && p.Phase != netconfig.PhasePrimed &&
		!p.Downloading && p.SinceLastSend < handshakeInterval {
		return false
	}

	if p.Address == netconfig.AddressLoopback {
		return true
	}
	if p.LANForcePackets && p.Address == netconfig.AddressLAN {
		return true
	}

	interval := time.Duration(1000/cfg.ClampMaxPackets(p.MaxPackets)) * time.Millisecond
	return p.SinceLastSend >= interval
}
