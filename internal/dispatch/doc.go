// Package dispatch hands a formatted order to the messaging endpoint.
//
// The client's device class decides the path once per submission:
//
//   - Mobile: the order text is percent-encoded into the deep link
//     (<base>/<phone>?text=...) and the link is opened. Messaging apps on
//     phones pick the text up from the link.
//   - Desktop: the text is staged on the clipboard and the link is opened
//     with the phone number only. Desktop web clients drop long pre-filled
//     text, so the customer pastes it instead.
//
// Clipboard and opener failures are logged and swallowed. The caller always
// gets a Result describing what was attempted.
package dispatch
