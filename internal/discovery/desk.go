package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Desk is an orderdesk web form advertised on the local network.
type Desk struct {
	// Instance is the advertised name (e.g., "front-counter")
	Instance string

	// Hostname is the mDNS hostname (e.g., "shop-pc.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// Port is the web form port
	Port int

	// Metadata holds TXT record data, e.g. "path=/", "version=v1.2.0"
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the desk
func (d *Desk) String() string {
	return fmt.Sprintf("Desk %q (%s) at %s:%d", d.Instance, d.Hostname, d.IP, d.Port)
}

// URL returns the web form address.
func (d *Desk) URL() string {
	path := d.GetMetadata("path")
	if path == "" {
		path = "/"
	}
	host := d.IP
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return fmt.Sprintf("http://%s:%d%s", host, d.Port, path)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Desk) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
