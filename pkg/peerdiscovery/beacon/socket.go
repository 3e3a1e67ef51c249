package beacon

import (
	"context"
	"fmt"
	"net"
)

// listenUDP binds a UDP socket, optionally with SO_REUSEADDR set before bind
func listenUDP(ctx context.Context, network string, laddr *net.UDPAddr, reuseAddr bool) (*net.UDPConn, error) {
	lc := net.ListenConfig{}
	if reuseAddr {
		lc.Control = reuseAddrControl
	}

	pc, err := lc.ListenPacket(ctx, network, laddr.String())
	if err != nil {
		return nil, err
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, fmt.Errorf("unexpected packet conn type %T", pc)
	}
	return conn, nil
}

// closeOnDone closes conn once ctx is done, unblocking any pending read.
// The returned function releases the watcher.
func closeOnDone(ctx context.Context, conn net.PacketConn) func() bool {
	return context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
}
