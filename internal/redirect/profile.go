package redirect

import (
	"net/http"
	"strings"
)

// Profile is a set of request headers imitating one kind of client. Some short-link
// endpoints answer browsers, scripts and phones with different pages.
type Profile struct {
	Name      string
	UserAgent string
}

// ReadablePredicate decides whether a fetched body is worth running extraction on.
type ReadablePredicate func(body string) bool

const (
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	curlUserAgent   = "curl/7.68.0"
	mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15 " +
		"(KHTML, like Gecko) Version/15.0 Mobile/15E148 Safari/604.1"

	readablePreview = 200
)

var readableMarkers = []string{"google", "maps", "coordinates", "<!doctype", "<html"}

// DefaultProfiles returns the desktop browser, curl and mobile browser profiles.
func DefaultProfiles() []Profile {
	return []Profile{
		{Name: "desktop", UserAgent: desktopUserAgent},
		{Name: "curl", UserAgent: curlUserAgent},
		{Name: "mobile", UserAgent: mobileUserAgent},
	}
}

func (p Profile) apply(req *http.Request) {
	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	// identity keeps the body plain text; compressed bodies fail the readable check.
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Cache-Control", "no-cache")
}

// LooksReadable reports whether the start of body mentions a page marker such as
// "<html" or "maps", ignoring case.
func LooksReadable(body string) bool {
	preview := body
	if len(preview) > readablePreview {
		preview = preview[:readablePreview]
	}
	preview = strings.ToLower(preview)

	for _, marker := range readableMarkers {
		if strings.Contains(preview, marker) {
			return true
		}
	}
	return false
}
