package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chigarow/maps-to-waze-app/internal/config"
	"github.com/chigarow/maps-to-waze-app/internal/extractor"
	"github.com/chigarow/maps-to-waze-app/internal/geocoding"
	"github.com/chigarow/maps-to-waze-app/internal/metrics"
	"github.com/chigarow/maps-to-waze-app/internal/patterns"
	"github.com/chigarow/maps-to-waze-app/internal/redirect"
	"github.com/chigarow/maps-to-waze-app/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "maps2waze",
	Short: "Resolve Google Maps links to coordinates and Waze links",
	Long: "Follows short and redirecting map links, extracts the coordinates they point at " +
		"and formats them as Waze navigation links.",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cfg = config.MustLoad()
		logger = setupLogger(cfg.Env)
	},
}

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newResolutionService wires the pipeline from configuration. The place-id stage is
// enabled only when an API key is configured.
func newResolutionService(reg prometheus.Registerer) (*service.ResolutionService, error) {
	appMetrics := metrics.NewMetrics(reg)

	var provider geocoding.Provider
	if cfg.APIKey != "" {
		providerConfig := geocoding.ProviderConfig{
			Type:      geocoding.ProviderType(cfg.ProviderType),
			APIKey:    cfg.APIKey,
			RateLimit: cfg.RateLimit,
			Timeout:   cfg.HTTPTimeout,
			Logger:    logger,
		}

		placesProvider, err := geocoding.NewProvider(providerConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create place details provider: %w", err)
		}
		provider = placesProvider
		logger.Info("Place details provider initialized", "type", cfg.ProviderType)
	} else {
		logger.Info("No Places API key configured, place identifier lookups are disabled")
	}

	resolver := redirect.New(logger, redirect.WithHTTPClient(redirect.NewHTTPClient(cfg.HTTPTimeout)))

	serviceConfig := service.Config{
		MaxURLLength: cfg.MaxURLLength,
		AllowedHosts: cfg.AllowedHosts,
		DeepFetch:    cfg.DeepFetch,
		Workers:      cfg.Workers,
	}

	return service.NewResolutionService(
		logger,
		resolver,
		extractor.New(patterns.Default(), logger),
		provider,
		appMetrics,
		serviceConfig,
	), nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
