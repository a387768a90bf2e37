package net

import (
	"fmt"
	"net"
)

// GetOutgoingIP finds the address LAN peers should use in share links: the
// source address of the default route, or the first LAN IPv4 when offline.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP.String(), nil
		}
	}
	ip, err := lanIPv4()
	if err != nil {
		return "", err
	}
	return ip.String(), nil
}

// lanIPv4 scans interfaces that are up for a non-loopback IPv4 address and
// falls back to 127.0.0.1.
func lanIPv4() (net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	var addrs []net.Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		a, err := iface.Addrs()
		if err != nil {
			continue
		}
		addrs = append(addrs, a...)
	}
	return pickIPv4(addrs), nil
}

func pickIPv4(addrs []net.Addr) net.IP {
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() && !ip4.IsUnspecified() {
			return ip4
		}
	}
	return net.IPv4(127, 0, 0, 1).To4()
}

// ShareLink is the websocket URL a client on the LAN connects to.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("ws://%s/ws", net.JoinHostPort(host, fmt.Sprint(port)))
}
