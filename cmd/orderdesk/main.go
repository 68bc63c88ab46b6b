// Orderdesk takes device orders and hands them to a click-to-chat
// messaging link.
//
// It offers a full-screen form, a line-based prompt, a non-interactive send
// command and a web form that phones on the local network can find via mDNS.
// On phones the chat opens with the order filled in; elsewhere the order is
// copied to the clipboard and the chat opens empty.
//
// Usage:
//
//	orderdesk [command] [flags]
//
// Running without arguments launches the interactive form.
// See 'orderdesk --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/orderdesk/internal/catalog"
	"github.com/muurk/orderdesk/internal/clipboard"
	"github.com/muurk/orderdesk/internal/config"
	"github.com/muurk/orderdesk/internal/dispatch"
	"github.com/muurk/orderdesk/internal/logging"
	"github.com/muurk/orderdesk/internal/order"
	"github.com/muurk/orderdesk/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orderdesk",
	Short: "Device order intake with click-to-chat hand-off",
	Long: `Collect a customer's device order and send it to the shop's chat.

The order is validated, formatted as a message and handed to a click-to-chat
link. On a phone the chat opens with the message filled in. On a desktop the
message is copied to the clipboard and the chat opens empty, ready to paste.

If no command is specified, the interactive form will launch automatically.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the form when no subcommand provided
		return runWizard(cmd, args)
	},
}

// Global flags. Each overrides the config file and ORDERDESK_* variables.
var (
	configPath    string
	logLevel      string
	flagPhone     string
	flagBaseURL   string
	flagGreeting  string
	flagPlatform  string
	flagClipboard string
	flagCatalog   string
	flagNoOpen    bool
)

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: OS config dir, see 'orderdesk config path')")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	pf.StringVar(&flagPhone, "phone", "", "Destination phone number in international form")
	pf.StringVar(&flagBaseURL, "base-url", "", "Click-to-chat base URL")
	pf.StringVar(&flagGreeting, "greeting", "", "Line sent before the order")
	pf.StringVar(&flagPlatform, "platform", "", "Platform used for device detection (e.g. android, iphone, linux)")
	pf.StringVar(&flagClipboard, "clipboard", "", "Clipboard backend (auto, system, terminal, none)")
	pf.StringVar(&flagCatalog, "catalog", "", "YAML catalog file replacing the built-in brands and models")
	pf.BoolVar(&flagNoOpen, "no-open", false, "Print the chat link instead of opening it")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orderdesk %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// loadSettings resolves settings from the config file, the environment and
// the command line, in increasing priority.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	var (
		s   *config.Settings
		err error
	)
	if configPath != "" {
		config.LoadDotEnv()
		s, err = config.LoadFrom(configPath)
		if err == nil {
			config.ApplyEnv(s)
		}
	} else {
		s, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	applyFlags(cmd, s)

	if errs := s.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return s, nil
}

// applyFlags copies explicitly set global flags onto s.
func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	set := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	set("phone", &s.Destination.Phone, flagPhone)
	set("base-url", &s.Destination.BaseURL, flagBaseURL)
	set("greeting", &s.Destination.Greeting, flagGreeting)
	set("platform", &s.Client.Platform, flagPlatform)
	set("clipboard", &s.Client.Clipboard, flagClipboard)
	set("catalog", &s.Catalog.File, flagCatalog)
	if flags.Changed("no-open") {
		s.Client.NoOpen = flagNoOpen
	}
}

// app bundles what every order front end needs.
type app struct {
	settings  *config.Settings
	catalog   *catalog.Catalog
	formatter order.Formatter
}

func newApp(cmd *cobra.Command) (*app, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(s.Catalog.File)
	if err != nil {
		return nil, err
	}
	return &app{
		settings:  s,
		catalog:   cat,
		formatter: order.Formatter{Greeting: s.Destination.Greeting},
	}, nil
}

// dispatcher builds the hand-off for terminal front ends.
func (a *app) dispatcher(opener dispatch.Opener) (*dispatch.Dispatcher, error) {
	clip, err := clipboard.New(a.settings.Client.Clipboard)
	if err != nil {
		return nil, err
	}
	return &dispatch.Dispatcher{
		Link:       a.settings.Link(),
		Classifier: dispatch.DetectPlatform(a.settings.Client.Platform),
		Clipboard:  clip,
		Opener:     opener,
	}, nil
}

func (a *app) controller(sender order.Sender) *order.Controller {
	return order.NewController(order.Options{
		Catalog:   a.catalog,
		Sender:    sender,
		Formatter: a.formatter,
	})
}

// initLogging starts the logger at the --log-level flag. Without it the
// level comes from ORDERDESK_LOG_LEVEL, and when that is unset too, from
// fallback. Interactive commands pass no fallback and stay silent.
func initLogging(fallback string) error {
	if logLevel != "" {
		return logging.Initialize(logLevel)
	}
	if fallback == "" || os.Getenv(logging.LogLevelEnvVar) != "" {
		return logging.InitializeFromEnv()
	}
	return logging.Initialize(fallback)
}
