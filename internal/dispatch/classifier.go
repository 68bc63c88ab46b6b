package dispatch

import (
	"runtime"
	"strings"
)

// MobileIndicators are matched case-insensitively against a platform or
// user agent string.
var MobileIndicators = []string{"android", "iphone"}

// Classifier reports the device class of the client submitting an order.
type Classifier interface {
	IsMobileClient() bool
}

// Platform classifies by substring match against MobileIndicators.
// It holds a platform identifier such as runtime.GOOS or a User-Agent header.
type Platform string

// IsMobileClient implements Classifier.
func (p Platform) IsMobileClient() bool {
	return IsMobilePlatform(string(p))
}

// IsMobilePlatform reports whether s names a mobile platform.
func IsMobilePlatform(s string) bool {
	lower := strings.ToLower(s)
	for _, indicator := range MobileIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// DetectPlatform returns override when set, otherwise the local OS.
// Termux and similar Android shells report runtime.GOOS "android".
func DetectPlatform(override string) Platform {
	if override = strings.TrimSpace(override); override != "" {
		return Platform(override)
	}
	return Platform(runtime.GOOS)
}

// Static is a fixed classification.
type Static bool

// IsMobileClient implements Classifier.
func (s Static) IsMobileClient() bool {
	return bool(s)
}
