// Package urls holds the external links printed in help text and
// troubleshooting hints, so they can be updated in one place.
package urls
