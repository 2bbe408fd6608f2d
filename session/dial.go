package session

import (
	"context"
	"fmt"

	"github.com/automoto/fragclient/network"
)

// Dial opens a transport of the named kind: "udp" takes host:port, "ws"
// takes a ws:// or wss:// URL.
func Dial(ctx context.Context, kind, address string) (network.Transport, error) {
	switch kind {
	case "udp":
		t, err := network.DialUDP(address)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "ws":
		t, err := network.DialWS(ctx, address)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}
