package net

import (
	"fmt"
	"net"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_stickersketch._tcp"

// Advertise publishes the sketch server on the local network. Shut the
// returned server down to withdraw the record.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	ip, err := lanIPv4()
	if err != nil {
		return nil, err
	}
	info := []string{"StickerSketch", "path=/ws"}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, []net.IP{ip}, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse reports the host:port of every sketch server that answers within
// the mDNS lookup window.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)))
		}
	}()

	err := mdns.Lookup(serviceType, entries)
	close(entries)
	<-done
	return err
}
