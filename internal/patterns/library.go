// Package patterns holds the ordered catalogue of coordinate-shaped text patterns
// and the policy deciding which of them apply to a given piece of text.
package patterns

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/chigarow/maps-to-waze-app/internal/models"
)

// Rule is one entry of the pattern table.
type Rule struct {
	Name     string         // Name identifies the rule in logs and results.
	Category Category       // Category is the textual shape family.
	Priority int            // Priority orders rules; lower numbers are tried first.
	Pattern  *regexp.Regexp // Pattern matches the latitude (or both axes).
	// LngPattern, when set, turns the rule into a pair rule: Pattern yields the
	// latitude, LngPattern the longitude, and both must be present.
	LngPattern *regexp.Regexp
	LatGroup   int            // LatGroup is the submatch index of the latitude.
	LngGroup   int            // LngGroup is the submatch index of the longitude.
	Degrees    *DegreeMapping // Degrees replaces LatGroup/LngGroup for DMS rules.

	LastResortOnly        bool // LastResortOnly rules run only in exhaustive mode.
	SuppressWhenAmbiguous bool // SuppressWhenAmbiguous skips the rule on /place/ and /dir/ URLs.
	SuppressWhenDegrees   bool // SuppressWhenDegrees skips the rule when an encoded degree sign is present.
	MarkupOnly            bool // MarkupOnly rules run only against HTML bodies.
}

// Options describe the text being matched and the caller's mode.
type Options struct {
	LastResort     bool // LastResort enables every rule, including the suppressed ones.
	Ambiguous      bool // Ambiguous marks a place or directions URL.
	EncodedDegrees bool // EncodedDegrees marks text carrying a percent-encoded degree sign.
	Markup         bool // Markup marks an HTML body rather than a URL.
}

// Match is an accepted coordinate with the rule that produced it.
type Match struct {
	Coordinates models.Coordinates
	Rule        string
	Category    Category
}

// Applies reports whether the rule takes part in a pass described by opts.
func (r Rule) Applies(opts Options) bool {
	if r.MarkupOnly && !opts.Markup {
		return false
	}
	if opts.LastResort {
		return true
	}
	if r.LastResortOnly {
		return false
	}
	if r.SuppressWhenAmbiguous && opts.Ambiguous {
		return false
	}
	if r.SuppressWhenDegrees && opts.EncodedDegrees {
		return false
	}
	return true
}

// Apply runs the rule against text, looking at the first occurrence only.
// It returns models.ErrNoMatch when the pattern is absent or unparsable and
// models.ErrInvalidCandidate when the values fall outside the valid range.
func (r Rule) Apply(text string) (models.Coordinates, error) {
	var (
		coords models.Coordinates
		err    error
	)

	switch {
	case r.Degrees != nil:
		coords, err = r.applyDegrees(text)
	case r.LngPattern != nil:
		coords, err = r.applyPair(text)
	default:
		coords, err = r.applyGroups(text)
	}
	if err != nil {
		return models.Coordinates{}, err
	}

	if !coords.Valid() {
		return models.Coordinates{}, fmt.Errorf("%w: %s matched %f,%f",
			models.ErrInvalidCandidate, r.Name, coords.Latitude, coords.Longitude)
	}

	return coords, nil
}

func (r Rule) applyGroups(text string) (models.Coordinates, error) {
	m := r.Pattern.FindStringSubmatch(text)
	if m == nil {
		return models.Coordinates{}, models.ErrNoMatch
	}
	return parsePair(m[r.LatGroup], m[r.LngGroup])
}

func (r Rule) applyPair(text string) (models.Coordinates, error) {
	latMatch := r.Pattern.FindStringSubmatch(text)
	lngMatch := r.LngPattern.FindStringSubmatch(text)
	if latMatch == nil || lngMatch == nil {
		return models.Coordinates{}, models.ErrNoMatch
	}
	return parsePair(latMatch[r.LatGroup], lngMatch[r.LngGroup])
}

func parsePair(rawLat, rawLng string) (models.Coordinates, error) {
	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lng, errLng := strconv.ParseFloat(rawLng, 64)
	if errLat != nil || errLng != nil {
		return models.Coordinates{}, models.ErrNoMatch
	}
	return models.Coordinates{Latitude: lat, Longitude: lng}, nil
}

// Library is an immutable, priority-ordered set of rules.
type Library struct {
	rules []Rule
}

var defaultLibrary = New(DefaultRules())

// Default returns the library built from DefaultRules.
func Default() *Library {
	return defaultLibrary
}

// New builds a library from rules, ordering them by priority. Rules sharing a
// priority keep their relative order.
func New(rules []Rule) *Library {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Library{rules: sorted}
}

// Rules returns a copy of the ordered rule table.
func (l *Library) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Candidates returns the rules applicable under opts, in the order they are tried.
func (l *Library) Candidates(opts Options) []Rule {
	var out []Rule
	for _, rule := range l.rules {
		if rule.Applies(opts) {
			out = append(out, rule)
		}
	}
	return out
}

// Match runs the URL rules against text and returns the first accepted coordinate.
func (l *Library) Match(text string, lastResort bool) (Match, bool) {
	return l.MatchWith(text, OptionsFor(text, lastResort, false))
}

// MatchMarkup runs the URL rules plus the markup-only rules against an HTML body.
func (l *Library) MatchMarkup(body string, lastResort bool) (Match, bool) {
	return l.MatchWith(body, OptionsFor(body, lastResort, true))
}

// MatchWith tries every applicable rule in order. A rule whose candidate fails range
// validation is skipped and matching continues with the next rule.
func (l *Library) MatchWith(text string, opts Options) (Match, bool) {
	for _, rule := range l.Candidates(opts) {
		coords, err := rule.Apply(text)
		if err != nil {
			continue
		}
		return Match{Coordinates: coords, Rule: rule.Name, Category: rule.Category}, true
	}
	return Match{}, false
}

// OptionsFor derives the pass options for text. Ambiguity only applies to URLs.
func OptionsFor(text string, lastResort, markup bool) Options {
	return Options{
		LastResort:     lastResort,
		Ambiguous:      !markup && IsAmbiguous(text),
		EncodedDegrees: strings.Contains(strings.ToUpper(text), "%C2%B0"),
		Markup:         markup,
	}
}

// IsAmbiguous reports whether a URL points at a place or directions page, where
// embedded decimal pairs are unreliable.
func IsAmbiguous(rawURL string) bool {
	return strings.Contains(rawURL, "/place/") || strings.Contains(rawURL, "/dir/")
}
