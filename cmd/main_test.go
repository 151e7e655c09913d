package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	ctx := t.Context()

	tests := []struct {
		env     string
		enabled slog.Level
		muted   slog.Level
	}{
		{env: envLocal, enabled: slog.LevelDebug, muted: slog.LevelDebug - 1},
		{env: envDev, enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{env: envProd, enabled: slog.LevelWarn, muted: slog.LevelInfo},
		{env: "unknown", enabled: slog.LevelError, muted: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			log := setupLogger(tt.env)

			assert.True(t, log.Enabled(ctx, tt.enabled))
			assert.False(t, log.Enabled(ctx, tt.muted))
		})
	}
}

func newMapServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func runResolve(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("WAZE_ENV", envProd)
	t.Setenv("WAZE_ALLOWED_HOSTS", "127.0.0.1")
	t.Setenv("WAZE_PLACES_API_KEY", "")
	t.Setenv("WAZE_DEEP_FETCH", "false")

	resolveAppLink, resolveJSON = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"resolve"}, args...))

	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	server := newMapServer(t)

	t.Run("prints the web link", func(t *testing.T) {
		out, err := runResolve(t, server.URL+"/maps?q=1.5,2.5")

		require.NoError(t, err)
		assert.Equal(t, "https://waze.com/ul?ll=1.5,2.5&navigate=yes\n", out)
	})

	t.Run("prints the app link", func(t *testing.T) {
		out, err := runResolve(t, "--app", server.URL+"/maps?q=1.5,2.5")

		require.NoError(t, err)
		assert.Equal(t, "waze://?ll=1.5,2.5&navigate=yes\n", out)
	})

	t.Run("prints json", func(t *testing.T) {
		out, err := runResolve(t, "--json", server.URL+"/maps/@-8.65,115.2167,12z")

		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &body))
		assert.InDelta(t, -8.65, body["latitude"], 1e-9)
		assert.InDelta(t, 115.2167, body["longitude"], 1e-9)
		assert.Equal(t, "fast/at-sign", body["source"])
	})

	t.Run("not found", func(t *testing.T) {
		_, err := runResolve(t, server.URL+"/maps/place/Tokyo")

		require.ErrorIs(t, err, models.ErrNoMatch)
	})

	t.Run("requires one argument", func(t *testing.T) {
		_, err := runResolve(t)

		require.Error(t, err)
	})
}

func TestRunServer(t *testing.T) {
	logger = slog.New(slog.DiscardHandler)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, http.NotFoundHandler(), 0)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
