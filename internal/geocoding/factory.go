package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of place-details provider.
type ProviderType string

const (
	// ProviderTypePlaces represents the Place Details web service (CIDs and place ids).
	ProviderTypePlaces ProviderType = "places"
	// ProviderTypeGoogle represents the Google Maps SDK (place ids only).
	ProviderTypeGoogle ProviderType = "google"
)

const defaultRateLimit = 5

// ProviderConfig holds configuration for creating a place-details provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	APIKey    string        // API key with Places access
	RateLimit int           // Rate limit for requests per second
	Timeout   time.Duration // Per-request timeout; zero keeps the provider default
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a place-details provider based on the provided configuration.
// It applies the Factory pattern to decouple provider instantiation from business logic.
//
// Supported provider types:
// - "places": Place Details web service, the default when Type is empty
// - "google": Google Maps Go SDK
//
// Both require an API key. Returns an error if the provider type is unsupported or
// if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypePlaces, "":
		return newPlacesProvider(config)
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps SDK provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}
	if config.Timeout > 0 {
		clientOpts = append(clientOpts, maps.WithHTTPClient(&http.Client{Timeout: config.Timeout}))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

// newPlacesProvider creates a Place Details web service provider.
func newPlacesProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Places provider")
	}

	if config.RateLimit <= 0 {
		config.RateLimit = defaultRateLimit
		config.Logger.Warn("Rate limit for Places API not set, set a default value", "value", config.RateLimit)
	}

	var opts []PlacesOption
	if config.Timeout > 0 {
		opts = append(opts, WithTimeout(config.Timeout))
	}

	return NewPlacesProvider(config.APIKey, config.RateLimit, config.Logger, opts...), nil
}
