package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/orderdesk/internal/deskclient"
	"github.com/muurk/orderdesk/internal/discovery"
	"github.com/muurk/orderdesk/internal/logging"
	"github.com/muurk/orderdesk/internal/server"
	"github.com/muurk/orderdesk/internal/version"
)

// Server command flags
var (
	listenAddr  string
	noMDNS      bool
	instance    string
	scanTimeout int
	scanCheck   bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the order form on the local network",
	Long: `Serve the order form over HTTP and announce it via mDNS.

Each browser tab gets its own form session over a WebSocket. The device
class is taken from the browser's User-Agent: phones open the chat with the
order filled in, other browsers copy the order and open the chat empty.

A small JSON API is served under /api/v1 (health, catalog, order preview).`,
	Example: `  # Serve on :8080 and announce via mDNS
  orderdesk serve

  # Custom port, no announcement, debug logs
  orderdesk serve --listen :9000 --no-mdns --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "Do not announce the desk via mDNS")
	serveCmd.Flags().StringVar(&instance, "instance", "", "Desk name announced via mDNS (default: hostname)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := initLogging("info"); err != nil {
		return err
	}
	defer logging.Sync()

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	s := a.settings
	if cmd.Flags().Changed("listen") {
		s.Server.Listen = listenAddr
	}
	if noMDNS {
		s.Server.MDNS = false
	}
	if cmd.Flags().Changed("instance") {
		s.Server.Instance = instance
	}
	if s.Server.Instance == "" {
		s.Server.Instance, _ = os.Hostname()
	}

	srv, err := server.New(&server.Config{
		Listen:      s.Server.Listen,
		Catalog:     a.catalog,
		Link:        s.Link(),
		Formatter:   a.formatter,
		CORSOrigins: s.Server.CORSOrigins,
		Instance:    s.Server.Instance,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := srv.Listen(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx)
	})

	if s.Server.MDNS {
		port := srv.Addr().(*net.TCPAddr).Port
		g.Go(func() error {
			err := discovery.Announce(gctx, discovery.Announcement{
				Instance: s.Server.Instance,
				Port:     port,
				Text:     []string{"path=/", "version=" + version.Version},
			})
			// The form still works by address without an announcement.
			if err != nil {
				logging.Warn("mDNS announcement failed", zap.Error(err))
			}
			return nil
		})
	}

	fmt.Printf("Order form at http://%s/ (Ctrl+C to stop)\n", displayAddr(srv.Addr()))
	return g.Wait()
}

// displayAddr replaces an unspecified host with localhost
func displayAddr(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return addr.String()
	}
	if tcp.IP == nil || tcp.IP.IsUnspecified() {
		return fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return tcp.String()
}

// scanCmd discovers desks on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find order desks on the local network",
	Long: `Scan for desks started with 'orderdesk serve' using mDNS/DNS-SD.

Lists every desk that answers with its name, address and form URL.`,
	Example: `  # Scan for 5 seconds (default)
  orderdesk scan

  # Longer scan for busy networks
  orderdesk scan --timeout 15

  # Ask every desk found whether it is healthy
  orderdesk scan --check`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
	scanCmd.Flags().BoolVar(&scanCheck, "check", false, "Query each desk's health endpoint")
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := initLogging(""); err != nil {
		return err
	}

	fmt.Printf("Scanning for order desks (timeout: %ds)...\n\n", scanTimeout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	desks, err := discovery.ScanForDesks(ctx, time.Duration(scanTimeout)*time.Second)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(desks) == 0 {
		fmt.Println("No desks found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure 'orderdesk serve' is running without --no-mdns")
		fmt.Println("  - Check both machines are on the same network")
		fmt.Println("  - Some networks block multicast; open the form by address instead")
		fmt.Println("  - Try increasing --timeout")
		return nil
	}

	fmt.Printf("Found %d desk(s):\n\n", len(desks))
	for i, d := range desks {
		fmt.Printf("%d. %s\n", i+1, d.Instance)
		fmt.Printf("   Host:    %s\n", d.Hostname)
		fmt.Printf("   Form:    %s\n", d.URL())
		if v := d.GetMetadata("version"); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		if scanCheck {
			fmt.Printf("   Status:  %s\n", checkDesk(ctx, d.URL()))
		}
		fmt.Println()
	}
	return nil
}

// checkDesk returns a one-line health summary of the desk at baseURL.
func checkDesk(ctx context.Context, baseURL string) string {
	health, err := deskclient.NewClient(baseURL).Health(ctx)
	if err != nil {
		var de *deskclient.DeskError
		if errors.As(err, &de) {
			return fmt.Sprintf("unreachable (%s)", de.Type)
		}
		return fmt.Sprintf("unreachable (%v)", err)
	}
	return fmt.Sprintf("ok, %d active session(s)", health.Sessions)
}
