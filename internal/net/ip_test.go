package net

import (
	"net"
	"testing"
)

func TestPickIPv4(t *testing.T) {
	ipnet := func(s string) net.Addr {
		return &net.IPNet{IP: net.ParseIP(s), Mask: net.CIDRMask(24, 32)}
	}
	tests := []struct {
		name  string
		addrs []net.Addr
		want  string
	}{
		{"first lan address", []net.Addr{ipnet("192.168.1.5"), ipnet("10.0.0.2")}, "192.168.1.5"},
		{"skips ipv6", []net.Addr{ipnet("fe80::1"), ipnet("10.0.0.2")}, "10.0.0.2"},
		{"skips loopback", []net.Addr{ipnet("127.0.0.1"), &net.IPAddr{IP: net.ParseIP("172.16.0.9")}}, "172.16.0.9"},
		{"skips unspecified", []net.Addr{ipnet("0.0.0.0"), ipnet("10.1.1.1")}, "10.1.1.1"},
		{"falls back to loopback", []net.Addr{ipnet("::1")}, "127.0.0.1"},
		{"no addresses", nil, "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickIPv4(tt.addrs).String(); got != tt.want {
				t.Errorf("pickIPv4() = %s, want %s", got, tt.want)
			}
		})
	}
}
