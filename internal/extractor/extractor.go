// Package extractor applies the pattern library to a single URL or HTML body.
package extractor

import (
	"context"
	"log/slog"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"github.com/chigarow/maps-to-waze-app/internal/patterns"
)

// Extractor runs the pattern library against one piece of text. It performs no I/O
// and is safe for concurrent use.
type Extractor struct {
	lib *patterns.Library // lib is the ordered rule table
	log *slog.Logger      // log receives a debug line for every accepted match
}

// New creates an Extractor over lib. A nil lib selects patterns.Default().
func New(lib *patterns.Library, log *slog.Logger) *Extractor {
	if lib == nil {
		lib = patterns.Default()
	}
	return &Extractor{lib: lib, log: log}
}

// Extract returns the first accepted coordinate found in a URL, or NotFound.
// lastResort enables the rule categories that are normally suppressed.
func (e *Extractor) Extract(ctx context.Context, text string, lastResort bool) models.Result {
	if text == "" {
		return models.NotFound()
	}

	match, ok := e.lib.Match(text, lastResort)
	if !ok {
		return models.NotFound()
	}

	e.log.DebugContext(ctx, "Coordinates matched in URL",
		"rule", match.Rule,
		"category", match.Category.String(),
		"last_resort", lastResort,
		"lat", match.Coordinates.Latitude,
		"lng", match.Coordinates.Longitude,
	)
	return models.Found(match.Coordinates, match.Rule)
}

// ExtractBody is Extract for an HTML response body. On top of the URL rules it
// considers meta tags, microdata and embedded JSON latitude/longitude pairs.
func (e *Extractor) ExtractBody(ctx context.Context, body string, lastResort bool) models.Result {
	if body == "" {
		return models.NotFound()
	}

	match, ok := e.lib.MatchMarkup(body, lastResort)
	if !ok {
		return models.NotFound()
	}

	e.log.DebugContext(ctx, "Coordinates matched in response body",
		"rule", match.Rule,
		"category", match.Category.String(),
		"last_resort", lastResort,
		"body_length", len(body),
	)
	return models.Found(match.Coordinates, match.Rule)
}
