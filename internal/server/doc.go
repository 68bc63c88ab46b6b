// Package server serves the order form to browsers on the shop network.
//
// The page at / holds no logic of its own. It opens a websocket to /ws and
// forwards every edit; the server runs one order.Controller per order and
// answers each message with the full form state (values, field errors,
// model options, status and a message preview).
//
// # Resuming
//
// The page keeps a random token per tab and sends it as /ws?session=<token>.
// A reconnect with the same token picks up the kept order, including the
// last dispatch link. A newer connection takes an order over from an older
// one, which is closed with code 4001. Orders idle for 30 minutes are dropped.
//
// # Device Class
//
// The User-Agent of the websocket upgrade request decides the submission
// path. Phones get an "open" instruction with the order text in the link.
// Everything else gets a "copy" instruction followed by an "open" instruction
// for the phone-only link, and the copied status.
//
// # Messages
//
// Client to server:
//
//	{"type": "update", "field": "brand", "value": "Samsung"}
//	{"type": "submit"}
//	{"type": "dismiss"}
//
// Server to client:
//
//	{"type": "state", "form": {...}, "errors": {...}, "status": "idle", ...}
//	{"type": "copy", "text": "*New Order Request*..."}
//	{"type": "open", "url": "https://wa.me/923152561004"}
//
// # HTTP API
//
//	GET  /api/v1/health
//	GET  /api/v1/catalog
//	GET  /api/v1/catalog/:brand
//	POST /api/v1/orders/preview
//
// # Graceful Shutdown
//
// Serve returns when its context ends. The HTTP server is shut down, open
// sessions receive a going-away close frame and are waited for.
package server
