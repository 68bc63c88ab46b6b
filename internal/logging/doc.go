// Package logging provides structured logging for orderdesk.
//
// The package wraps a zap logger behind package-level helpers so callers
// never pass a logger around. Interactive commands stay silent unless
// ORDERDESK_LOG_LEVEL is set; the serve command defaults to info.
//
// # Log Levels
//
//   - Debug: field edits, websocket frames
//   - Info: dispatches, failed validation passes, HTTP requests
//   - Warn: clipboard or browser failures that were swallowed
//   - Error: startup failures
//
// # Structured Logging
//
//	logging.Info("Desk announced",
//	    zap.String("instance", "front-counter"),
//	    zap.Int("port", 8080),
//	)
//
// # Privacy
//
// Customer details are never logged. LogFieldUpdate records only the field
// name and value length, and LogDispatch strips the pre-filled text from the
// outgoing URL.
package logging
