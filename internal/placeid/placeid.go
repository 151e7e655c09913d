// Package placeid pulls place identifiers (CIDs and place-id tokens) out of map URLs
// so that a place-details provider can be asked for their coordinates.
package placeid

import (
	"regexp"
	"strconv"

	"github.com/chigarow/maps-to-waze-app/internal/models"
)

var (
	// feature id pairs: ftid=0x<cell>:0x<cid> and the !1s0x<cell>:0x<cid> data segment.
	featureIDPattern = regexp.MustCompile(`(?:ftid=|!1s)0x[0-9a-fA-F]+(?::|%3[aA])0x([0-9a-fA-F]+)`)
	dataCIDPattern   = regexp.MustCompile(`/data=[^?#\s]*?(?::|%3[aA])0x([0-9a-fA-F]+)`)
	cidParamPattern  = regexp.MustCompile(`[?&]cid=(\d+)`)
	placeIDPattern   = regexp.MustCompile(`(?:[?&]query_place_id=|place_id[:=])([A-Za-z0-9_-]+)`)
	placeDataPattern = regexp.MustCompile(`place/[^/?#]+/data=[^?#\s]*?(ChI[A-Za-z0-9_-]+)`)
)

// ExtractCID returns the decimal CID encoded as a hexadecimal feature id in the URL.
// Hex values that do not fit an unsigned 64-bit integer are rejected.
func ExtractCID(rawURL string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{featureIDPattern, dataCIDPattern} {
		m := pattern.FindStringSubmatch(rawURL)
		if m == nil {
			continue
		}
		cid, err := strconv.ParseUint(m[1], 16, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatUint(cid, 10), true
	}
	return "", false
}

// ExtractCIDParam returns the value of a cid=<digits> query parameter.
func ExtractCIDParam(rawURL string) (string, bool) {
	m := cidParamPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractPlaceID returns an explicit place_id marker, or the opaque token that
// trails a place/<name>/data= segment.
func ExtractPlaceID(rawURL string) (string, bool) {
	if m := placeIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], true
	}
	if m := placeDataPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], true
	}
	return "", false
}

// Extract returns the most specific identifier present in rawURL. Explicit place ids
// win over a cid parameter, which wins over a hex feature id; the token trailing a
// place data segment is the weakest signal.
func Extract(rawURL string) (models.PlaceIdentifier, bool) {
	if m := placeIDPattern.FindStringSubmatch(rawURL); m != nil {
		return models.PlaceID(m[1]), true
	}
	if cid, ok := ExtractCIDParam(rawURL); ok {
		return models.CID(cid), true
	}
	if cid, ok := ExtractCID(rawURL); ok {
		return models.CID(cid), true
	}
	if m := placeDataPattern.FindStringSubmatch(rawURL); m != nil {
		return models.PlaceID(m[1]), true
	}
	return models.PlaceIdentifier{}, false
}
