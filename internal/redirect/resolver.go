// Package redirect turns short and redirecting map links into their canonical URL
// and, when asked, fetches a readable HTML page for them.
package redirect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/chigarow/maps-to-waze-app/internal/models"
)

const (
	// MaxRedirects caps the redirect chain followed by Resolve and FetchReadable.
	MaxRedirects = 10
	// DefaultTimeout bounds a whole request including redirects.
	DefaultTimeout = 20 * time.Second
	// MaxBodySize bounds how much of a response body is read.
	MaxBodySize = 2 << 20

	dialTimeout           = 10 * time.Second
	responseHeaderTimeout = 10 * time.Second
)

var errTooManyRedirects = errors.New("too many redirects")

// Resolver follows redirects and fetches pages. It never returns network errors to
// its callers; failures are logged and reported as "no result".
type Resolver struct {
	client   *http.Client      // client follows up to MaxRedirects redirects
	profiles []Profile         // profiles are tried in order by FetchReadable
	readable ReadablePredicate // readable decides whether a fetched body is usable
	log      *slog.Logger
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the default client. Its CheckRedirect is kept as is.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

// WithProfiles replaces the client profiles used by FetchReadable.
func WithProfiles(profiles ...Profile) Option {
	return func(r *Resolver) {
		r.profiles = profiles
	}
}

// WithReadablePredicate replaces LooksReadable.
func WithReadablePredicate(readable ReadablePredicate) Option {
	return func(r *Resolver) {
		r.readable = readable
	}
}

// NewHTTPClient builds the client used by default: bounded dial and header timeouts,
// an overall timeout, and a redirect cap.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: dialTimeout}).DialContext
	transport.ResponseHeaderTimeout = responseHeaderTimeout

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}
}

// New creates a Resolver with the default client, profiles and readable predicate.
func New(log *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		client:   NewHTTPClient(DefaultTimeout),
		profiles: DefaultProfiles(),
		readable: LooksReadable,
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the URL reached after following redirects from rawURL. It tries a
// HEAD request first and falls back to GET when HEAD fails or is refused on the first
// hop. A redirect target answering 4xx or 5xx is still returned. On transport failure
// the input is returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	final, err := r.follow(ctx, http.MethodHead, rawURL)
	if err != nil {
		r.log.DebugContext(ctx, "HEAD did not resolve, retrying with GET", "url", rawURL, "error", err)

		final, err = r.follow(ctx, http.MethodGet, rawURL)
		if err != nil {
			r.log.WarnContext(ctx, "Failed to resolve redirects", "url", rawURL, "error", err)
			return rawURL
		}
	}

	if final != rawURL {
		r.log.DebugContext(ctx, "Resolved redirect", "from", rawURL, "to", final)
	}
	return final
}

func (r *Resolver) follow(ctx context.Context, method, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if len(r.profiles) > 0 {
		req.Header.Set("User-Agent", r.profiles[0].UserAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrNetworkFailure, err)
	}
	defer drain(resp)

	if resp.Request == nil || resp.Request.URL == nil {
		return "", fmt.Errorf("%w: failed to determine final URL", models.ErrMalformedResponse)
	}
	final := resp.Request.URL.String()

	// An error status after at least one hop still names the terminal URL.
	if resp.StatusCode >= http.StatusBadRequest {
		if final != req.URL.String() {
			r.log.DebugContext(ctx, "Redirect target answered with an error status",
				"url", final, "method", method, "status", resp.StatusCode)
			return final, nil
		}
		return "", fmt.Errorf("%w: %s returned status %d", models.ErrNetworkFailure, method, resp.StatusCode)
	}

	return final, nil
}

// ResolveWithoutFollowing issues a single GET with redirects disabled and returns the
// Location header of a redirect response. A relative Location is resolved against
// rawURL; an absolute one is returned verbatim.
func (r *Resolver) ResolveWithoutFollowing(ctx context.Context, rawURL string) (string, bool) {
	client := *r.client
	client.CheckRedirect = func(_ *http.Request, _ []*http.Request) error {
		return http.ErrUseLastResponse
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		r.log.DebugContext(ctx, "Failed to create request", "url", rawURL, "error", err)
		return "", false
	}
	if len(r.profiles) > 0 {
		req.Header.Set("User-Agent", r.profiles[0].UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to read redirect header", "url", rawURL, "error", err)
		return "", false
	}
	defer drain(resp)

	location := resp.Header.Get("Location")
	if location == "" || resp.StatusCode < http.StatusMultipleChoices || resp.StatusCode >= http.StatusBadRequest {
		return "", false
	}

	target, err := url.Parse(location)
	if err != nil {
		return "", false
	}
	if target.IsAbs() {
		return location, true
	}
	return req.URL.ResolveReference(target).String(), true
}

// Page is a fetched HTML document.
type Page struct {
	FinalURL string // FinalURL is the URL the body was served from.
	Body     string
	Profile  string // Profile names the client profile that got the body.
}

// FetchReadable requests rawURL once per profile, in order, and returns the first
// response whose body passes the readable predicate.
func (r *Resolver) FetchReadable(ctx context.Context, rawURL string) (Page, bool) {
	for _, profile := range r.profiles {
		if ctx.Err() != nil {
			return Page{}, false
		}

		page, err := r.fetch(ctx, rawURL, profile)
		if err != nil {
			r.log.DebugContext(ctx, "Profile fetch failed", "profile", profile.Name, "url", rawURL, "error", err)
			continue
		}
		if !r.readable(page.Body) {
			r.log.DebugContext(ctx, "Body not readable", "profile", profile.Name, "body_length", len(page.Body))
			continue
		}

		r.log.DebugContext(ctx, "Fetched readable page",
			"profile", profile.Name,
			"final_url", page.FinalURL,
			"body_length", len(page.Body),
		)
		return page, true
	}

	return Page{}, false
}

func (r *Resolver) fetch(ctx context.Context, rawURL string, profile Profile) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	profile.apply(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %w", models.ErrNetworkFailure, err)
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		return Page{}, fmt.Errorf("%w: status %d", models.ErrNetworkFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return Page{}, fmt.Errorf("%w: failed to read body: %w", models.ErrNetworkFailure, err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return Page{FinalURL: finalURL, Body: string(body), Profile: profile.Name}, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodySize))
	_ = resp.Body.Close()
}
