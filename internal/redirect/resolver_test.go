package redirect_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/chigarow/maps-to-waze-app/internal/redirect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestResolve(t *testing.T) {
	ctx := t.Context()
	resolver := redirect.New(slog.Default())

	t.Run("follows redirect chain", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/short":
				http.Redirect(w, r, "/hop", http.StatusFound)
			case "/hop":
				http.Redirect(w, r, "/maps/place/Big+Ben/@51.5007,-0.1246,17z", http.StatusMovedPermanently)
			default:
				w.WriteHeader(http.StatusOK)
			}
		})

		final := resolver.Resolve(ctx, server.URL+"/short")

		assert.Equal(t, server.URL+"/maps/place/Big+Ben/@51.5007,-0.1246,17z", final)
	})

	t.Run("falls back to GET when HEAD is refused", func(t *testing.T) {
		var gets atomic.Int32
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			gets.Add(1)
			if r.URL.Path == "/short" {
				http.Redirect(w, r, "/final", http.StatusFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		final := resolver.Resolve(ctx, server.URL+"/short")

		assert.Equal(t, server.URL+"/final", final)
		assert.Equal(t, int32(2), gets.Load())
	})

	t.Run("returns input when both methods fail", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		input := server.URL + "/broken"
		assert.Equal(t, input, resolver.Resolve(ctx, input))
	})

	t.Run("keeps redirect target that answers with an error", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/short" {
				http.Redirect(w, r, "/maps/place/London/data=!3d51.5074!4d-0.1278", http.StatusFound)
				return
			}
			w.WriteHeader(http.StatusTooManyRequests)
		})

		final := resolver.Resolve(ctx, server.URL+"/short")

		assert.Equal(t, server.URL+"/maps/place/London/data=!3d51.5074!4d-0.1278", final)
	})

	t.Run("returns input on network failure", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		input := server.URL + "/gone"
		server.Close()

		assert.Equal(t, input, resolver.Resolve(ctx, input))
	})

	t.Run("redirect loop is capped", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
		})

		input := server.URL + "/loop"
		assert.Equal(t, input, resolver.Resolve(ctx, input))
	})

	t.Run("malformed url is returned unchanged", func(t *testing.T) {
		assert.Equal(t, "://nope", resolver.Resolve(ctx, "://nope"))
	})
}

func TestResolveWithoutFollowing(t *testing.T) {
	ctx := t.Context()
	resolver := redirect.New(slog.Default())

	t.Run("absolute location is returned verbatim", func(t *testing.T) {
		target := "https://www.google.com/maps/place/X/data=!3d51.5074!4d-0.1278"
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Location", target)
			w.WriteHeader(http.StatusFound)
		})

		location, ok := resolver.ResolveWithoutFollowing(ctx, server.URL+"/short")

		require.True(t, ok)
		assert.Equal(t, target, location)
	})

	t.Run("relative location is resolved against the request", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Location", "/maps/@1.5,2.5,10z")
			w.WriteHeader(http.StatusMovedPermanently)
		})

		location, ok := resolver.ResolveWithoutFollowing(ctx, server.URL+"/short")

		require.True(t, ok)
		assert.Equal(t, server.URL+"/maps/@1.5,2.5,10z", location)
	})

	t.Run("non redirect response", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		_, ok := resolver.ResolveWithoutFollowing(ctx, server.URL)

		assert.False(t, ok)
	})

	t.Run("unreachable host", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		input := server.URL
		server.Close()

		_, ok := resolver.ResolveWithoutFollowing(ctx, input)

		assert.False(t, ok)
	})
}

func TestFetchReadable(t *testing.T) {
	ctx := t.Context()

	t.Run("first readable profile wins", func(t *testing.T) {
		var calls atomic.Int32
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "identity", r.Header.Get("Accept-Encoding"))
			calls.Add(1)

			if strings.HasPrefix(r.Header.Get("User-Agent"), "curl/") {
				_, _ = w.Write([]byte(`<html><meta property="og:latitude" content="1.5"></html>`))
				return
			}
			_, _ = w.Write([]byte{0x1f, 0x8b, 0x08, 0x00})
		})

		page, ok := redirect.New(slog.Default()).FetchReadable(ctx, server.URL+"/page")

		require.True(t, ok)
		assert.Equal(t, "curl", page.Profile)
		assert.Equal(t, server.URL+"/page", page.FinalURL)
		assert.Contains(t, page.Body, "og:latitude")
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("final url follows redirects", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/short" {
				http.Redirect(w, r, "/landing", http.StatusFound)
				return
			}
			_, _ = w.Write([]byte("<!DOCTYPE html><title>Google Maps</title>"))
		})

		page, ok := redirect.New(slog.Default()).FetchReadable(ctx, server.URL+"/short")

		require.True(t, ok)
		assert.Equal(t, server.URL+"/landing", page.FinalURL)
		assert.Equal(t, "desktop", page.Profile)
	})

	t.Run("nothing readable", func(t *testing.T) {
		var calls atomic.Int32
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte("binary"))
		})

		_, ok := redirect.New(slog.Default()).FetchReadable(ctx, server.URL)

		assert.False(t, ok)
		assert.Equal(t, int32(len(redirect.DefaultProfiles())), calls.Load())
	})

	t.Run("error statuses are skipped", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<html>denied</html>"))
		})

		_, ok := redirect.New(slog.Default()).FetchReadable(ctx, server.URL)

		assert.False(t, ok)
	})

	t.Run("custom profiles and predicate", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("agent=" + r.Header.Get("User-Agent")))
		})

		resolver := redirect.New(slog.Default(),
			redirect.WithProfiles(redirect.Profile{Name: "bot", UserAgent: "bot/1.0"}),
			redirect.WithReadablePredicate(func(body string) bool {
				return strings.HasPrefix(body, "agent=")
			}),
		)

		page, ok := resolver.FetchReadable(ctx, server.URL)

		require.True(t, ok)
		assert.Equal(t, "bot", page.Profile)
		assert.Equal(t, "agent=bot/1.0", page.Body)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html></html>"))
		})

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, ok := redirect.New(slog.Default()).FetchReadable(cctx, server.URL)

		assert.False(t, ok)
	})
}

func TestLooksReadable(t *testing.T) {
	assert.True(t, redirect.LooksReadable("<HTML><body>"))
	assert.True(t, redirect.LooksReadable("<!DOCTYPE html>"))
	assert.True(t, redirect.LooksReadable("see Google Maps"))
	assert.False(t, redirect.LooksReadable(""))
	assert.False(t, redirect.LooksReadable(string([]byte{0x1f, 0x8b, 0x08})))
	assert.False(t, redirect.LooksReadable(strings.Repeat("x", 300)+"<html>"))
}

func TestDefaultProfiles(t *testing.T) {
	profiles := redirect.DefaultProfiles()

	require.Len(t, profiles, 3)
	assert.Equal(t, "desktop", profiles[0].Name)
	assert.Equal(t, "curl/7.68.0", profiles[1].UserAgent)
	assert.Equal(t, "mobile", profiles[2].Name)
}
