package common

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	sliceutil "github.com/projectdiscovery/utils/slice"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// Interface is a local network interface and the addresses bound to it
type Interface struct {
	Name  string
	Index int
	Addrs []net.IP
}

// Enumerator lists the local network interfaces
type Enumerator interface {
	Interfaces(ctx context.Context) ([]Interface, error)
}

// SystemEnumerator reads interfaces from the operating system
type SystemEnumerator struct{}

// Interfaces returns every local interface with its parsed addresses
func (SystemEnumerator) Interfaces(ctx context.Context) ([]Interface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	interfaces := make([]Interface, 0, len(stats))
	for _, stat := range stats {
		iface := Interface{Name: stat.Name, Index: stat.Index}
		for _, addr := range stat.Addrs {
			if ip := ParseInterfaceAddr(addr.Addr); ip != nil {
				iface.Addrs = append(iface.Addrs, ip)
			}
		}
		interfaces = append(interfaces, iface)
	}
	return interfaces, nil
}

// StaticEnumerator returns a fixed interface list
type StaticEnumerator []Interface

// Interfaces returns the fixed list
func (s StaticEnumerator) Interfaces(context.Context) ([]Interface, error) {
	return s, nil
}

// ErrInterfaceNotFound is returned by LookupInterface when no interface has the given name
var ErrInterfaceNotFound = errors.New("interface not found")

// LookupInterface returns the interface with the given name.
// Duplicate addresses (aliases reporting the same IP) are collapsed.
func LookupInterface(ctx context.Context, e Enumerator, name string) (*Interface, error) {
	interfaces, err := e.Interfaces(ctx)
	if err != nil {
		return nil, err
	}

	for _, iface := range interfaces {
		if iface.Name != name {
			continue
		}

		parsed := make([]netip.Addr, 0, len(iface.Addrs))
		for _, ip := range iface.Addrs {
			if addr, ok := netip.AddrFromSlice(ip); ok {
				parsed = append(parsed, addr.Unmap())
			}
		}

		found := &Interface{Name: iface.Name, Index: iface.Index}
		for _, addr := range sliceutil.Dedupe(parsed) {
			found.Addrs = append(found.Addrs, net.IP(addr.AsSlice()))
		}
		return found, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
}

// QualifyingAddrs drops the addresses no announcer can be created for:
// IPv6 link-local, unspecified and multicast addresses.
func QualifyingAddrs(addrs []net.IP) []net.IP {
	var qualifying []net.IP
	for _, ip := range addrs {
		if ip == nil || ip.IsUnspecified() || ip.IsMulticast() {
			continue
		}
		if IsIPv6LinkLocal(ip) {
			continue
		}
		qualifying = append(qualifying, ip)
	}
	return qualifying
}
