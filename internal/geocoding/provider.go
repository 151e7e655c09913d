package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/chigarow/maps-to-waze-app/internal/models"
)

// Provider resolves a place identifier to the coordinates of that place.
// Implementations return an error for every outcome other than a located place;
// the caller treats any error as "no result".
type Provider interface {
	Lookup(ctx context.Context, id models.PlaceIdentifier) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for place-details providers.
var (
	ErrEmptyIdentifier       = errors.New("place identifier is empty")
	ErrUnsupportedIdentifier = errors.New("provider does not support this identifier kind")
	ErrEmptyResponse         = errors.New("get empty response from place details API")
	ErrUnauthorized          = errors.New("place details API unauthorized (invalid API key)")
)
