// Package discovery advertises and finds orderdesk web forms over mDNS.
//
// A desk running "orderdesk serve" registers itself under the
// "_orderdesk._tcp" service type so phones and laptops on the shop network
// can find the form without typing an address. "orderdesk scan" browses for
// those registrations.
//
// # Usage Example
//
//	desks, err := discovery.ScanForDesks(ctx, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, d := range desks {
//	    fmt.Println(d.Instance, d.URL())
//	}
//
// # Network Requirements
//
//   - Multicast support on the network interface
//   - Desk and client on the same network segment
//   - UDP port 5353 open
package discovery
