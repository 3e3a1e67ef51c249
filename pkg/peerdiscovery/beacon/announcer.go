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

// Announcer is bound to one local address. It sends a single announcement to the
// discovery group and then reports the replies and announcements it receives.
type Announcer struct {
	self     identity.Identity
	local    net.IP
	proto    protocol.Protocol
	observer Observer
	strict   bool
	ifIndex  int
}

// NewAnnouncer creates an announcer for the given local address
func NewAnnouncer(self identity.Identity, local net.IP, options *Options) *Announcer {
	return &Announcer{
		self:     self,
		local:    local,
		proto:    options.Protocol,
		observer: options.Observer,
		strict:   options.StrictDecode,
		ifIndex:  options.InterfaceIndex,
	}
}

// LocalIP returns the address the announcer binds
func (a *Announcer) LocalIP() net.IP {
	return a.local
}

func (a *Announcer) network() string {
	if a.local.To4() != nil {
		return "udp4"
	}
	return "udp6"
}

// Run binds, announces once and listens until ctx is done or an error occurs
func (a *Announcer) Run(ctx context.Context) error {
	conn, err := a.Listen(ctx)
	if err != nil {
		return err
	}
	if err := a.Announce(conn); err != nil {
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return a.Serve(ctx, conn)
}

// Listen binds an ephemeral port on the local address with multicast loopback disabled
func (a *Announcer) Listen(ctx context.Context) (*net.UDPConn, error) {
	laddr := &net.UDPAddr{IP: a.local}
	conn, err := listenUDP(ctx, a.network(), laddr, false)
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("could not bind announcer to %s", a.local)
	}

	if err := a.configureMulticast(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func (a *Announcer) configureMulticast(conn *net.UDPConn) error {
	var ifi *net.Interface
	if a.ifIndex > 0 {
		found, err := net.InterfaceByIndex(a.ifIndex)
		if err != nil {
			gologger.Warning().Msgf("could not resolve interface index %d, kernel picks the multicast interface: %s", a.ifIndex, err)
		} else {
			ifi = found
		}
	}

	if a.local.To4() != nil {
		p := ipv4.NewPacketConn(conn)
		if err := p.SetMulticastLoopback(false); err != nil {
			return errorutil.NewWithErr(err).Msgf("could not disable multicast loopback on %s", a.local)
		}
		if ifi != nil {
			if err := p.SetMulticastInterface(ifi); err != nil {
				return errorutil.NewWithErr(err).Msgf("could not set multicast interface %s", ifi.Name)
			}
		}
		return nil
	}

	p := ipv6.NewPacketConn(conn)
	if err := p.SetMulticastLoopback(false); err != nil {
		return errorutil.NewWithErr(err).Msgf("could not disable multicast loopback on %s", a.local)
	}
	if ifi != nil {
		if err := p.SetMulticastInterface(ifi); err != nil {
			return errorutil.NewWithErr(err).Msgf("could not set multicast interface %s", ifi.Name)
		}
	}
	return nil
}

// Announce sends the one announcement this announcer ever makes
func (a *Announcer) Announce(conn net.PacketConn) error {
	group := a.proto.Group(a.local)
	if _, err := conn.WriteTo(protocol.Encode(a.self), group); err != nil {
		return errorutil.NewWithErr(err).Msgf("could not announce from %s to %s", a.local, group)
	}
	gologger.Verbose().Msgf("announced %s from %s to %s", a.self, conn.LocalAddr(), group)
	return nil
}

// Serve reports every record read from conn. It never replies.
// Serve owns conn and closes it on return.
func (a *Announcer) Serve(ctx context.Context, conn net.PacketConn) error {
	stop := closeOnDone(ctx, conn)
	defer stop()
	defer func() {
		_ = conn.Close()
	}()

	via := a.local.String()
	buf := make([]byte, a.proto.MaxDatagramSize)

	for {
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errorutil.NewWithErr(err).Msgf("announcer read on %s failed", a.local)
		}

		peer, err := protocol.Decode(buf[:n])
		if err != nil {
			if a.strict {
				return errorutil.NewWithErr(err).Msgf("announcer on %s received malformed record from %s", a.local, src)
			}
			gologger.Warning().Msgf("Failed to parse message from %s: %s", src, err)
			continue
		}

		a.observer.Observe(Observation{Peer: peer, Source: src, Via: via})
	}
}
