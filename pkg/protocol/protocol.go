package protocol

import (
	"fmt"
	"net"
)

// Protocol holds the constants every instance of a protocol version must agree on
type Protocol struct {
	Version int
	// Port is the discovery port the responder binds and announcers send to
	Port int
	// IPv4Group and IPv6Group are the multicast groups announcements are sent to
	IPv4Group net.IP
	IPv6Group net.IP
	// MaxDatagramSize is the receive buffer size; longer datagrams are truncated
	MaxDatagramSize int
}

// V1 is the only protocol version currently spoken on the wire
var V1 = Protocol{
	Version:         1,
	Port:            5679,
	IPv4Group:       net.ParseIP("224.0.0.114").To4(),
	IPv6Group:       net.ParseIP("ff12:114:514:1919::810"),
	MaxDatagramSize: 1024,
}

// Latest is the version new agents speak by default
var Latest = V1

var versions = map[int]Protocol{
	V1.Version: V1,
}

// Lookup returns the constants table for the given version
func Lookup(version int) (Protocol, error) {
	p, ok := versions[version]
	if !ok {
		return Protocol{}, fmt.Errorf("unknown protocol version %d", version)
	}
	return p, nil
}

// Group returns the multicast group address matching the address family of ip
func (p Protocol) Group(ip net.IP) *net.UDPAddr {
	if ip.To4() != nil {
		return &net.UDPAddr{IP: p.IPv4Group, Port: p.Port}
	}
	return &net.UDPAddr{IP: p.IPv6Group, Port: p.Port}
}

// WildcardAddr returns the dual-stack address the responder binds
func (p Protocol) WildcardAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv6unspecified, Port: p.Port}
}

func (p Protocol) String() string {
	return fmt.Sprintf("v%d (port %d, groups %s, %s)", p.Version, p.Port, p.IPv4Group, p.IPv6Group)
}
