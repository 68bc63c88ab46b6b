// Package clipboard stages order text on a clipboard.
//
// Every backend follows the same acquire, write, release sequence: a Provider
// hands out a Stage, the caller writes once, and the Stage is released on every
// path. Copy wraps that sequence and guarantees the release.
//
// Backends:
//   - System: the desktop clipboard via github.com/atotto/clipboard
//   - Terminal: an OSC 52 escape sequence written to the controlling terminal,
//     which also works over SSH and inside tmux
//   - Auto: System when a clipboard utility is available, Terminal otherwise
//   - None: always unavailable
//
// Clipboard access is advisory. Callers log failures and carry on.
package clipboard
