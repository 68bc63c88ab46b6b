// Package prompt runs the order form as a sequence of line-based questions.
//
// It is the fallback for terminals where the full-screen form is unwelcome
// (CI logs, dumb terminals, screen readers). Questions are asked through a
// Driver; the default driver uses survey. After a failed submit only the
// fields that failed are asked again, with their error shown as help text.
package prompt
