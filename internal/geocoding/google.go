package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It resolves place ids through the
// Places SDK; the SDK has no CID lookup.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider over an SDK client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Lookup asks the Places SDK for the geometry of a place id. CIDs yield
// ErrUnsupportedIdentifier.
func (gp *GoogleProvider) Lookup(ctx context.Context, id models.PlaceIdentifier) (*models.Coordinates, error) {
	if id.Kind != models.KindPlaceID {
		return nil, ErrUnsupportedIdentifier
	}
	if id.Value == "" {
		return nil, ErrEmptyIdentifier
	}

	gp.log.DebugContext(ctx, "Looking up place using Google Maps", "place_id", id.Value)

	req := maps.PlaceDetailsRequest{
		PlaceID: id.Value,
		Fields:  []maps.PlaceDetailsFieldMask{maps.PlaceDetailsFieldMaskGeometry},
	}
	details, err := gp.client.PlaceDetails(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to look up place details: %w", err)
	}

	// The SDK decodes into value types, so a missing geometry shows up as a zero
	// location with a zero viewport. A place at 0,0 still carries a viewport.
	coords := details.Geometry.Location
	if coords == (maps.LatLng{}) && details.Geometry.Viewport == (maps.LatLngBounds{}) {
		return nil, ErrEmptyResponse
	}

	return &models.Coordinates{Longitude: coords.Lng, Latitude: coords.Lat}, nil
}
