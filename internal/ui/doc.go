// Package ui renders styled output for the non-interactive orderdesk
// commands (send, catalog, config, scan).
//
// Components follow a print-once pattern: a header box naming the command,
// result boxes for success, failure or warning, a preview box for order
// messages and a plain catalog listing. Colors match the interactive form in
// internal/wizard/tui.
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Send Order", "orderdesk send", ui.Detail{Key: "Path", Value: "desktop"})
//	p.PrintPreview(message)
//	p.PrintSuccess("Order copied", ui.Detail{Key: "Link", Value: url})
//
// Zap logging stays silent unless ORDERDESK_LOG_LEVEL is set, so these boxes
// are the only output by default.
package ui
