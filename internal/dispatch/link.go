package dispatch

import (
	"net/url"
	"strings"
	"unicode"
)

// DefaultBaseURL is the messaging endpoint used when none is configured.
const DefaultBaseURL = "https://wa.me"

// DefaultPhone is the destination number used when none is configured.
const DefaultPhone = "+923152561004"

// Link builds deep links to one destination.
type Link struct {
	BaseURL string
	Phone   string
}

// NewLink returns a Link with defaults filled in.
func NewLink(baseURL, phone string) Link {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if phone == "" {
		phone = DefaultPhone
	}
	return Link{BaseURL: baseURL, Phone: phone}
}

// Plain returns <base>/<phone> without a text parameter.
func (l Link) Plain() string {
	return strings.TrimRight(l.BaseURL, "/") + "/" + NormalizePhone(l.Phone)
}

// WithText returns <base>/<phone>?text=<encoded text>.
func (l Link) WithText(text string) string {
	return l.Plain() + "?text=" + EncodeText(text)
}

// NormalizePhone keeps only the digits of phone. Click-to-chat links take
// the number in international form without "+", spaces or dashes.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}

// EncodeText percent-encodes text for a query value. Spaces become %20
// rather than "+". Unlike encodeURIComponent it also escapes *!'() so
// "*" arrives as %2A; DecodeText and the endpoint restore the same text.
func EncodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// DecodeText reverses EncodeText.
func DecodeText(encoded string) (string, error) {
	return url.QueryUnescape(encoded)
}
