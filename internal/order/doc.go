// Package order implements the order intake state machine.
//
// A Controller owns one order form, the field errors from the last failed
// validation pass and a transient submission status. It is driven by exactly
// three operations:
//
//   - UpdateField sets a field, clears that field's error and resets the
//     status to idle. Changing the brand also clears the model and its error.
//   - Submit validates every field. A failing pass replaces the error set
//     wholesale; a passing pass formats the order message and hands it to the
//     Sender. The desktop path sets the status to copied.
//   - DismissStatus resets the status to idle.
//
// A Controller is not safe for concurrent use. Each front end (the terminal
// form, the prompt flow, one websocket session) owns its own instance and
// drives it from a single goroutine.
//
// # Message Format
//
//	*New Order Request*
//
//	*Name:* <name>
//	*Mobile:* <mobile>
//	*Brand:* <brand>
//	*Model:* <model>
//
// followed by a blank line, "*Accessories:*" and the accessories text when
// accessories were given.
package order
