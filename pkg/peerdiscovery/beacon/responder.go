package beacon

import (
	"context"
	"net"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanbeacon/pkg/identity"
	"github.com/projectdiscovery/lanbeacon/pkg/protocol"
	errorutil "github.com/projectdiscovery/utils/errors"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Responder listens on every address for announcements and answers each one
// with a unicast reply carrying the local identity. It never announces on its own.
type Responder struct {
	self     identity.Identity
	proto    protocol.Protocol
	observer Observer
	reuse    bool
}

// NewResponder creates a responder for self
func NewResponder(self identity.Identity, options *Options) *Responder {
	return &Responder{
		self:     self,
		proto:    options.Protocol,
		observer: options.Observer,
		reuse:    options.ReuseAddr,
	}
}

// Run binds, joins the discovery groups and serves until ctx is done or an I/O error occurs
func (r *Responder) Run(ctx context.Context) error {
	conn, err := r.Listen(ctx)
	if err != nil {
		return err
	}
	return r.Serve(ctx, conn)
}

// Listen binds the wildcard discovery address and joins both multicast groups
// on the unspecified interface
func (r *Responder) Listen(ctx context.Context) (*net.UDPConn, error) {
	laddr := r.proto.WildcardAddr()
	conn, err := listenUDP(ctx, "udp", laddr, r.reuse)
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("could not bind responder to %s", laddr)
	}

	if err := ipv4.NewPacketConn(conn).JoinGroup(nil, &net.UDPAddr{IP: r.proto.IPv4Group}); err != nil {
		_ = conn.Close()
		return nil, errorutil.NewWithErr(err).Msgf("could not join group %s", r.proto.IPv4Group)
	}
	if err := ipv6.NewPacketConn(conn).JoinGroup(nil, &net.UDPAddr{IP: r.proto.IPv6Group}); err != nil {
		_ = conn.Close()
		return nil, errorutil.NewWithErr(err).Msgf("could not join group %s", r.proto.IPv6Group)
	}

	gologger.Verbose().Msgf("responder listening on %s (groups %s, %s)", conn.LocalAddr(), r.proto.IPv4Group, r.proto.IPv6Group)
	return conn, nil
}

// Serve reads records from conn and replies to the sender of each well-formed one.
// Malformed records are logged and skipped. Serve owns conn and closes it on return.
func (r *Responder) Serve(ctx context.Context, conn net.PacketConn) error {
	stop := closeOnDone(ctx, conn)
	defer stop()
	defer func() {
		_ = conn.Close()
	}()

	reply := protocol.Encode(r.self)
	buf := make([]byte, r.proto.MaxDatagramSize)

	for {
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errorutil.NewWithErr(err).Msgf("responder read on %s failed", conn.LocalAddr())
		}

		peer, err := protocol.Decode(buf[:n])
		if err != nil {
			gologger.Warning().Msgf("Failed to parse message from %s: %s", src, err)
			continue
		}

		r.observer.Observe(Observation{Peer: peer, Source: src, Via: ViaResponder})

		if _, err := conn.WriteTo(reply, src); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errorutil.NewWithErr(err).Msgf("could not reply to %s", src)
		}
		gologger.Debug().Msgf("replied to %s as %s", src, r.self)
	}
}
