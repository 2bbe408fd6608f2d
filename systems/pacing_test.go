package systems

import (
	"testing"
	"time"

	"github.com/automoto/fragclient/shared/netconfig"
)

func TestReadyToSendPacket(t *testing.T) {
	ms := time.Millisecond
	active := PacingInput{Phase: netconfig.PhaseActive, Address: netconfig.AddressRemote, MaxPackets: 50}

	with := func(f func(p *PacingInput)) PacingInput {
		p := active
		f(&p)
		return p
	}

	tests := []struct {
		name string
		in   PacingInput
		want bool
	}{
		{"rate limited", with(func(p *PacingInput) { p.SinceLastSend = 15 * ms }), false},
		{"rate allows", with(func(p *PacingInput) { p.SinceLastSend = 25 * ms }), true},
		{"demo", with(func(p *PacingInput) { p.DemoPlaying = true; p.SinceLastSend = time.Hour }), false},
		{"cinematic", with(func(p *PacingInput) { p.Phase = netconfig.PhaseCinematic; p.SinceLastSend = time.Hour }), false},
		{"download too soon", with(func(p *PacingInput) { p.Downloading = true; p.SinceLastSend = 40 * ms }), false},
		{"download", with(func(p *PacingInput) {
			p.Phase = netconfig.PhaseConnected
			p.Downloading = true
			p.SinceLastSend = 60 * ms
		}), true},
		{"handshake too soon", with(func(p *PacingInput) { p.Phase = netconfig.PhaseChallenging; p.SinceLastSend = 500 * ms }), false},
		{"handshake", with(func(p *PacingInput) { p.Phase = netconfig.PhaseChallenging; p.SinceLastSend = time.Second }), true},
		{"primed", with(func(p *PacingInput) { p.Phase = netconfig.PhasePrimed; p.SinceLastSend = 25 * ms }), true},
		{"loopback", with(func(p *PacingInput) { p.Address = netconfig.AddressLoopback }), true},
		{"lan forced", with(func(p *PacingInput) { p.Address = netconfig.AddressLAN; p.LANForcePackets = true }), true},
		{"lan", with(func(p *PacingInput) { p.Address = netconfig.AddressLAN }), false},
		{"rate clamped high", with(func(p *PacingInput) { p.MaxPackets = 1000; p.SinceLastSend = 8 * ms }), true},
		{"rate clamped high too soon", with(func(p *PacingInput) { p.MaxPackets = 1000; p.SinceLastSend = 7 * ms }), false},
		{"rate clamped low", with(func(p *PacingInput) { p.MaxPackets = 1; p.SinceLastSend = 60 * ms }), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadyToSendPacket(tt.in); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
