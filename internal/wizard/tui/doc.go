// Package tui implements the full-screen order form.
//
// Built on Bubble Tea, it follows the Model-Update-View pattern. All form
// state (values, field errors, submission status) lives in an
// order.Controller; the models here only track cursor position and which
// inline editor is open.
//
// # Layout
//
// Every screen is wrapped by RenderApplicationContainer: a header with the
// application name and version, the content area, and a footer with
// context-sensitive key help from bubbles/help.
//
// The form shows one row per field, the send button, a status line and a
// live preview of the message:
//
//	→ Full Name         Jane Doe
//	  Mobile Number     0300
//	                    Please enter a valid mobile number
//	  Brand             Samsung ▼
//	  Model             Select model ▼
//	  Accessories       Case, charger...
//
//	  [Send Order]
//
// # Editing
//
// Enter opens an inline editor on the focused row. Text fields use
// bubbles/textinput and push every change to the controller, so a field's
// error disappears as soon as it is edited. Brand and model open an option
// list; picking a new brand clears the model and moves the cursor to it.
//
// # Sending
//
// "s" or the send button submits. Invalid fields show their message inline
// and the cursor jumps to the first of them. On the desktop path a banner
// confirms the copy until "d" dismisses it or any field is edited. After a
// send, "n" starts a new order with a fresh controller.
package tui
