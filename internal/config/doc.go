// Package config provides user configuration for orderdesk.
//
// Settings are read from a YAML file in the platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/orderdesk/config.yaml or $HOME/.config/orderdesk/config.yaml
//   - macOS: $HOME/.config/orderdesk/config.yaml
//   - Windows: %LOCALAPPDATA%\orderdesk\config.yaml
//
// A missing file is not an error; defaults are used. Values are layered:
//
//  1. defaults from NewSettings
//  2. the config file
//  3. .env files loaded with godotenv, then ORDERDESK_* environment variables
//  4. command flags, applied by the caller
//
// # Example
//
//	version: 1
//	destination:
//	  phone: "+923152561004"
//	  base_url: https://wa.me
//	  greeting: Hi
//	client:
//	  clipboard: auto
//	catalog:
//	  file: /etc/orderdesk/catalog.yaml
//	server:
//	  listen: ":8080"
//	  mdns: true
//	  cors_origins:
//	    - https://shop.example.com
//
// # Thread Safety
//
// The global settings use sync.Once for initialization. Saves are atomic
// (temporary file and rename) and serialized by a mutex.
package config
