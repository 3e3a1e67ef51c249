package common

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsIPv6LinkLocal(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "fe80::1", want: true},
		{ip: "fe80::a00:27ff:fe4e:66a1", want: true},
		{ip: "febf:ffff::1", want: true},
		{ip: "fec0::1", want: false},
		{ip: "2001:db8::1", want: false},
		{ip: "fd00::1", want: false},
		{ip: "::1", want: false},
		{ip: "169.254.10.1", want: false},
		{ip: "10.0.0.5", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			require.Equal(t, tt.want, IsIPv6LinkLocal(net.ParseIP(tt.ip)))
		})
	}
	require.False(t, IsIPv6LinkLocal(nil))
}

func TestParseInterfaceAddr(t *testing.T) {
	tests := []struct {
		input string
		want  string
		isV4  bool
	}{
		{input: "10.0.0.5/24", want: "10.0.0.5", isV4: true},
		{input: "10.0.0.5", want: "10.0.0.5", isV4: true},
		{input: "fe80::1/64", want: "fe80::1"},
		{input: "2001:db8::5", want: "2001:db8::5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ip := ParseInterfaceAddr(tt.input)
			require.NotNil(t, ip)
			require.Equal(t, tt.want, ip.String())
			if tt.isV4 {
				require.Len(t, ip, net.IPv4len)
			}
		})
	}
	require.Nil(t, ParseInterfaceAddr("not-an-ip"))
}

func TestLookupInterface(t *testing.T) {
	enumerator := StaticEnumerator{
		{Name: "lo", Index: 1, Addrs: []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")}},
		{Name: "eth0", Index: 2, Addrs: []net.IP{
			net.ParseIP("10.0.0.5"),
			net.ParseIP("fe80::1"),
			net.ParseIP("10.0.0.5").To4(),
			net.ParseIP("2001:db8::5"),
		}},
	}

	iface, err := LookupInterface(context.Background(), enumerator, "eth0")
	require.NoError(t, err)
	require.Equal(t, 2, iface.Index)

	var got []string
	for _, ip := range iface.Addrs {
		got = append(got, ip.String())
	}
	require.Equal(t, []string{"10.0.0.5", "fe80::1", "2001:db8::5"}, got)
	require.Len(t, iface.Addrs[0], net.IPv4len)

	_, err = LookupInterface(context.Background(), enumerator, "wlan0")
	require.ErrorIs(t, err, ErrInterfaceNotFound)
}

func TestQualifyingAddrs(t *testing.T) {
	addrs := []net.IP{
		net.ParseIP("10.0.0.5"),
		net.ParseIP("fe80::1"),
		net.ParseIP("2001:db8::5"),
		net.ParseIP("fe80::dead:beef"),
		net.ParseIP("169.254.1.1"),
	}

	var got []string
	for _, ip := range QualifyingAddrs(addrs) {
		got = append(got, ip.String())
	}
	require.Equal(t, []string{"10.0.0.5", "2001:db8::5", "169.254.1.1"}, got)
}

func TestSystemEnumerator(t *testing.T) {
	interfaces, err := SystemEnumerator{}.Interfaces(context.Background())
	require.NoError(t, err)
	for _, iface := range interfaces {
		require.NotEmpty(t, iface.Name)
	}
}
