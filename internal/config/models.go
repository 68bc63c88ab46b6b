package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/muurk/orderdesk/internal/clipboard"
	"github.com/muurk/orderdesk/internal/dispatch"
)

// CurrentVersion is the settings file layout version.
const CurrentVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version     int          `yaml:"version"`
	Destination *Destination `yaml:"destination"`
	Client      *Client      `yaml:"client"`
	Catalog     *CatalogRef  `yaml:"catalog,omitempty"`
	Server      *Server      `yaml:"server"`
}

// Destination is where orders are sent.
type Destination struct {
	Phone    string `yaml:"phone"`              // International number, e.g. +923152561004
	BaseURL  string `yaml:"base_url"`           // Messaging endpoint, e.g. https://wa.me
	Greeting string `yaml:"greeting,omitempty"` // Optional line sent before the order
}

// Client describes the machine the terminal front ends run on.
type Client struct {
	Platform  string `yaml:"platform,omitempty"` // Overrides runtime.GOOS for device detection
	Clipboard string `yaml:"clipboard"`          // auto, system, terminal or none
	NoOpen    bool   `yaml:"no_open,omitempty"`  // Print the link instead of opening a browser
}

// CatalogRef points at a catalog override file.
type CatalogRef struct {
	File string `yaml:"file,omitempty"`
}

// Server configures the web form.
type Server struct {
	Listen      string   `yaml:"listen"`
	MDNS        bool     `yaml:"mdns"`
	Instance    string   `yaml:"instance,omitempty"` // mDNS instance name, defaults to the hostname
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: CurrentVersion,
		Destination: &Destination{
			Phone:   dispatch.DefaultPhone,
			BaseURL: dispatch.DefaultBaseURL,
		},
		Client: &Client{
			Clipboard: clipboard.BackendAuto,
		},
		Catalog: &CatalogRef{},
		Server: &Server{
			Listen: ":8080",
			MDNS:   true,
		},
	}
}

// fillDefaults fills sections missing from a partially written file.
func (s *Settings) fillDefaults() {
	defaults := NewSettings()
	if s.Destination == nil {
		s.Destination = defaults.Destination
	}
	if s.Destination.Phone == "" {
		s.Destination.Phone = defaults.Destination.Phone
	}
	if s.Destination.BaseURL == "" {
		s.Destination.BaseURL = defaults.Destination.BaseURL
	}
	if s.Client == nil {
		s.Client = defaults.Client
	}
	if s.Client.Clipboard == "" {
		s.Client.Clipboard = defaults.Client.Clipboard
	}
	if s.Catalog == nil {
		s.Catalog = defaults.Catalog
	}
	if s.Server == nil {
		s.Server = defaults.Server
	}
	if s.Server.Listen == "" {
		s.Server.Listen = defaults.Server.Listen
	}
}

// Link returns the deep-link builder for the configured destination.
func (s *Settings) Link() dispatch.Link {
	return dispatch.NewLink(s.Destination.BaseURL, s.Destination.Phone)
}

// Validate checks the settings and returns every problem found.
func (s *Settings) Validate() []error {
	var errs []error

	if n := len(dispatch.NormalizePhone(s.Destination.Phone)); n < 7 || n > 15 {
		errs = append(errs, fmt.Errorf("destination phone %q must have 7-15 digits, got %d", s.Destination.Phone, n))
	}

	u, err := url.Parse(s.Destination.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("destination base_url %q must be an http(s) URL", s.Destination.BaseURL))
	}

	if _, err := clipboard.New(s.Client.Clipboard); err != nil {
		errs = append(errs, fmt.Errorf("client clipboard: %w", err))
	}

	if strings.TrimSpace(s.Server.Listen) == "" {
		errs = append(errs, fmt.Errorf("server listen address is empty"))
	}

	return errs
}
