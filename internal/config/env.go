package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/muurk/orderdesk/internal/logging"
	"go.uber.org/zap"
)

// Environment variables that override the config file.
const (
	EnvPhone       = "ORDERDESK_PHONE"
	EnvBaseURL     = "ORDERDESK_BASE_URL"
	EnvGreeting    = "ORDERDESK_GREETING"
	EnvPlatform    = "ORDERDESK_PLATFORM"
	EnvClipboard   = "ORDERDESK_CLIPBOARD"
	EnvCatalog     = "ORDERDESK_CATALOG"
	EnvListen      = "ORDERDESK_LISTEN"
	EnvMDNS        = "ORDERDESK_MDNS"
	EnvInstance    = "ORDERDESK_INSTANCE"
	EnvCORSOrigins = "ORDERDESK_CORS_ORIGINS"
	EnvEnvironment = "ORDERDESK_ENV"
)

// LoadDotEnv loads .env.<ORDERDESK_ENV> when set, then .env, from the working
// directory. Variables already in the environment win. Missing files are fine.
func LoadDotEnv() {
	var files []string
	if env := os.Getenv(EnvEnvironment); env != "" {
		files = append(files, ".env."+env)
	}
	files = append(files, ".env")

	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			logging.Debug("Loaded environment file", zap.String("file", f))
		}
	}
}

// ApplyEnv overrides settings with ORDERDESK_* variables.
func ApplyEnv(s *Settings) {
	s.Destination.Phone = getEnv(EnvPhone, s.Destination.Phone)
	s.Destination.BaseURL = getEnv(EnvBaseURL, s.Destination.BaseURL)
	s.Destination.Greeting = getEnv(EnvGreeting, s.Destination.Greeting)
	s.Client.Platform = getEnv(EnvPlatform, s.Client.Platform)
	s.Client.Clipboard = getEnv(EnvClipboard, s.Client.Clipboard)
	s.Catalog.File = getEnv(EnvCatalog, s.Catalog.File)
	s.Server.Listen = getEnv(EnvListen, s.Server.Listen)
	s.Server.Instance = getEnv(EnvInstance, s.Server.Instance)

	if v := os.Getenv(EnvMDNS); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Server.MDNS = b
		} else {
			logging.Warn("Ignoring invalid boolean", zap.String("var", EnvMDNS), zap.String("value", v))
		}
	}

	if v := os.Getenv(EnvCORSOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		s.Server.CORSOrigins = origins
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
