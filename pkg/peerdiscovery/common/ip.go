package common

import "net"

// IsIPv6LinkLocal reports whether ip is an IPv6 address in fe80::/10.
// IPv4 link-local addresses (169.254.0.0/16) are not matched.
func IsIPv6LinkLocal(ip net.IP) bool {
	if ip == nil || ip.To4() != nil {
		return false
	}
	return ip.IsLinkLocalUnicast()
}

// ParseInterfaceAddr parses an interface address in either CIDR ("10.0.0.5/24")
// or bare ("10.0.0.5") form. IPv4 addresses are returned in their 4-byte form.
func ParseInterfaceAddr(addr string) net.IP {
	ip, _, err := net.ParseCIDR(addr)
	if err != nil {
		ip = net.ParseIP(addr)
	}
	if ip == nil {
		return nil
	}
	if ip4 := ip.To4(); ip4 != nil {
		return ip4
	}
	return ip
}
