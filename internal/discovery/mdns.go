package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/muurk/orderdesk/internal/logging"
	"go.uber.org/zap"
)

const (
	// ServiceType is the mDNS service type desks advertise
	ServiceType = "_orderdesk._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for desk discovery
	DefaultScanTimeout = 5 * time.Second
)

// Announcement describes the service a desk registers.
type Announcement struct {
	Instance string
	Port     int
	Text     []string
}

// Announce registers the desk and keeps it registered until ctx is done.
func Announce(ctx context.Context, a Announcement) error {
	server, err := zeroconf.Register(a.Instance, ServiceType, ServiceDomain, a.Port, a.Text, nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	defer server.Shutdown()

	logging.Info("Desk announced via mDNS",
		zap.String("instance", a.Instance),
		zap.String("service", ServiceType),
		zap.Int("port", a.Port),
	)

	<-ctx.Done()
	logging.Info("Withdrawing mDNS announcement", zap.String("instance", a.Instance))
	return nil
}

// Scanner handles mDNS desk discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan collects every desk that answers before the timeout or ctx ends.
func (s *Scanner) Scan(ctx context.Context) ([]*Desk, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu    sync.Mutex
		desks []*Desk
		done  = make(chan struct{})
	)

	go func() {
		defer close(done)
		for entry := range entries {
			if desk := parseServiceEntry(entry); desk != nil {
				mu.Lock()
				desks = append(desks, desk)
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// The resolver closes entries once the browse context ends.
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	return dedupe(desks), nil
}

// parseServiceEntry converts a zeroconf service entry to a Desk.
// Returns nil for entries without a name or address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Desk {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	return &Desk{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// dedupe drops repeated answers for the same instance, keeping the first.
func dedupe(desks []*Desk) []*Desk {
	seen := make(map[string]bool, len(desks))
	out := make([]*Desk, 0, len(desks))
	for _, d := range desks {
		if seen[d.Instance] {
			continue
		}
		seen[d.Instance] = true
		out = append(out, d)
	}
	return out
}

// ScanForDesks is a convenience function to scan with a custom timeout
func ScanForDesks(ctx context.Context, timeout time.Duration) ([]*Desk, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Scan(ctx)
}
