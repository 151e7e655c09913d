package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"golang.org/x/time/rate"
)

// PlacesDetailsURL is the Place Details web service endpoint.
const PlacesDetailsURL = "https://maps.googleapis.com/maps/api/place/details/json"

// DefaultPlacesTimeout applies when no timeout is configured.
const DefaultPlacesTimeout = 10 * time.Second

const (
	placesStatusOK     = "OK"
	placesStatusDenied = "REQUEST_DENIED"
	maxPlacesBody      = 1 << 20
)

// PlacesProvider looks places up through the Place Details web service. Unlike the
// SDK-backed GoogleProvider it accepts both CIDs and place ids.
type PlacesProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL of the details endpoint
	apiKey  string        // API key with Places access
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// PlacesOption customizes a PlacesProvider.
type PlacesOption func(*PlacesProvider)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client HTTPClient) PlacesOption {
	return func(p *PlacesProvider) {
		p.client = client
	}
}

// WithBaseURL points the provider at another details endpoint, e.g. a test server.
func WithBaseURL(baseURL string) PlacesOption {
	return func(p *PlacesProvider) {
		p.baseURL = baseURL
	}
}

// WithTimeout bounds each place details request, response body included.
func WithTimeout(timeout time.Duration) PlacesOption {
	return func(p *PlacesProvider) {
		p.client = &http.Client{Timeout: timeout}
	}
}

// WithLimiter replaces the limiter derived from the configured rate.
func WithLimiter(limiter *rate.Limiter) PlacesOption {
	return func(p *PlacesProvider) {
		p.limiter = limiter
	}
}

type placesResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       *struct {
		Geometry struct {
			Location struct {
				Lat *float64 `json:"lat"`
				Lng *float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// NewPlacesProvider creates a Place Details provider allowing rateLimit requests per second.
func NewPlacesProvider(apiKey string, rateLimit int, log *slog.Logger, opts ...PlacesOption) *PlacesProvider {
	provider := &PlacesProvider{
		client: &http.Client{
			Timeout: DefaultPlacesTimeout,
		},
		baseURL: PlacesDetailsURL,
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider
}

// Lookup fetches the geometry of the place identified by id.
func (pp *PlacesProvider) Lookup(ctx context.Context, id models.PlaceIdentifier) (*models.Coordinates, error) {
	if id.Value == "" {
		return nil, ErrEmptyIdentifier
	}

	if err := pp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL, err := pp.buildURL(id)
	if err != nil {
		return nil, err
	}

	pp.log.DebugContext(ctx, "Looking up place details", "kind", id.Kind.String(), "id", id.Value)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := pp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: place details request: %w", models.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPlacesBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", models.ErrNetworkFailure, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		pp.log.WarnContext(ctx, "Place details API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: place details API returned status %d", models.ErrNetworkFailure, resp.StatusCode)
	}

	var result placesResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode place details: %w", models.ErrMalformedResponse, err)
	}

	switch result.Status {
	case placesStatusOK:
		// continue
	case placesStatusDenied:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, result.ErrorMessage)
	default:
		return nil, fmt.Errorf("%w: place details status %q", models.ErrMalformedResponse, result.Status)
	}

	if result.Result == nil {
		return nil, ErrEmptyResponse
	}
	loc := result.Result.Geometry.Location
	if loc.Lat == nil || loc.Lng == nil {
		return nil, fmt.Errorf("%w: place details without location", models.ErrMalformedResponse)
	}

	pp.log.DebugContext(ctx, "Place details found result", "id", id.Value, "lat", *loc.Lat, "lng", *loc.Lng)

	return &models.Coordinates{Latitude: *loc.Lat, Longitude: *loc.Lng}, nil
}

func (pp *PlacesProvider) buildURL(id models.PlaceIdentifier) (string, error) {
	reqURL, err := url.Parse(pp.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	switch id.Kind {
	case models.KindCID:
		query.Set("cid", id.Value)
	case models.KindPlaceID:
		query.Set("place_id", id.Value)
	default:
		return "", ErrUnsupportedIdentifier
	}
	query.Set("fields", "geometry")
	query.Set("key", pp.apiKey)
	reqURL.RawQuery = query.Encode()

	return reqURL.String(), nil
}
