package patterns

import (
	"fmt"
	"regexp"
)

// Category groups rules by the textual shape they read.
type Category int

// Categories in the order the library tries them.
const (
	CategoryDegrees Category = iota + 1
	CategoryProtobuf
	CategoryAtSign
	CategoryQueryParam
	CategoryMarkup
	CategoryDecimalPair
	CategoryLastResort
)

func (c Category) String() string {
	switch c {
	case CategoryDegrees:
		return "degrees"
	case CategoryProtobuf:
		return "protobuf"
	case CategoryAtSign:
		return "at-sign"
	case CategoryQueryParam:
		return "query-param"
	case CategoryMarkup:
		return "markup"
	case CategoryDecimalPair:
		return "decimal-pair"
	case CategoryLastResort:
		return "last-resort"
	default:
		return "unknown"
	}
}

// Sub-patterns for a single axis value.
const (
	signedNumber = `(-?\d+(?:\.\d+)?)`
	axisNumber   = `([-+]?\d{1,3}(?:\.\d+)?)`
	axisDecimal  = `([-+]?\d{1,3}\.\d+)`
	pairComma    = `(?:,|(?i:%2C))(?:\s|\+|%20)*`
	notNumeric   = `(?:^|[^\d.])`
)

// Degree-minute-second pieces; each accepts the literal or percent-encoded symbol.
const (
	degSign = `(?:°|(?i:%C2%B0))`
	minSign = `(?:'|′|(?i:%27)|(?i:%E2%80%B2))`
	secSign = `(?:"|″|(?i:%22)|(?i:%E2%80%B3))`
	dmsAxis = `(\d{1,3})` + degSign + `\s*(\d{1,2})` + minSign + `\s*(\d{1,2}(?:\.\d+)?)` + secSign + `\s*`
	dmsGap  = `(?:\s|\+|,|%20|(?i:%2C))*`
)

// queryParams lists the coordinate-bearing query parameters, most specific first.
var queryParams = []string{"ll", "q", "center", "sll", "destination", "query", "daddr"}

// DefaultRules returns the built-in rule table ordered by priority.
func DefaultRules() []Rule {
	rules := []Rule{
		{
			Name:     "degrees-minutes-seconds",
			Category: CategoryDegrees,
			Priority: 10,
			Pattern:  regexp.MustCompile(dmsAxis + `([NS])` + dmsGap + dmsAxis + `([EW])`),
			Degrees: &DegreeMapping{
				LatDeg: 1, LatMin: 2, LatSec: 3, LatHemisphere: 4,
				LngDeg: 5, LngMin: 6, LngSec: 7, LngHemisphere: 8,
			},
		},
		{
			Name:     "protobuf-8m2",
			Category: CategoryProtobuf,
			Priority: 20,
			Pattern:  regexp.MustCompile(`8m2!3d` + signedNumber + `!4d` + signedNumber),
			LatGroup: 1,
			LngGroup: 2,
		},
		{
			Name:     "protobuf-3d4d",
			Category: CategoryProtobuf,
			Priority: 21,
			Pattern:  regexp.MustCompile(`!3d` + signedNumber + `!4d` + signedNumber),
			LatGroup: 1,
			LngGroup: 2,
		},
		{
			Name:     "protobuf-data",
			Category: CategoryProtobuf,
			Priority: 22,
			Pattern:  regexp.MustCompile(`data=[^\s"'<>]*?!3d` + signedNumber + `[^\s"'<>]*?!4d` + signedNumber),
			LatGroup: 1,
			LngGroup: 2,
		},
		{
			// Embed links put the longitude first.
			Name:     "protobuf-2d3d",
			Category: CategoryProtobuf,
			Priority: 23,
			Pattern:  regexp.MustCompile(`!2d` + signedNumber + `!3d` + signedNumber),
			LatGroup: 2,
			LngGroup: 1,
		},
		{
			Name:     "at-sign",
			Category: CategoryAtSign,
			Priority: 30,
			Pattern:  regexp.MustCompile(`@` + axisNumber + `,` + axisNumber),
			LatGroup: 1,
			LngGroup: 2,
		},
		{
			Name:     "at-sign-encoded",
			Category: CategoryAtSign,
			Priority: 31,
			Pattern:  regexp.MustCompile(`(?i:%40)` + axisNumber + `(?i:%2C)` + axisNumber),
			LatGroup: 1,
			LngGroup: 2,
		},
		{
			Name:       "markup-og-meta",
			Category:   CategoryMarkup,
			Priority:   50,
			Pattern:    metaPattern(`property`, `(?:og|place:location):latitude`),
			LngPattern: metaPattern(`property`, `(?:og|place:location):longitude`),
			LatGroup:   1,
			LngGroup:   1,
			MarkupOnly: true,
		},
		{
			Name:       "markup-itemprop",
			Category:   CategoryMarkup,
			Priority:   51,
			Pattern:    metaPattern(`itemprop`, `latitude`),
			LngPattern: metaPattern(`itemprop`, `longitude`),
			LatGroup:   1,
			LngGroup:   1,
			MarkupOnly: true,
		},
		{
			Name:       "markup-json-lat-lng",
			Category:   CategoryMarkup,
			Priority:   52,
			Pattern:    regexp.MustCompile(`"lat"\s*:\s*` + axisNumber),
			LngPattern: regexp.MustCompile(`"(?:lng|lon)"\s*:\s*` + axisNumber),
			LatGroup:   1,
			LngGroup:   1,
			MarkupOnly: true,
		},
		{
			Name:       "markup-js-latitude",
			Category:   CategoryMarkup,
			Priority:   53,
			Pattern:    regexp.MustCompile(`\blatitude["']?\s*:\s*["']?` + axisNumber),
			LngPattern: regexp.MustCompile(`\blongitude["']?\s*:\s*["']?` + axisNumber),
			LatGroup:   1,
			LngGroup:   1,
			MarkupOnly: true,
		},
		{
			Name:                  "decimal-pair",
			Category:              CategoryDecimalPair,
			Priority:              60,
			Pattern:               regexp.MustCompile(notNumeric + axisDecimal + pairComma + axisDecimal),
			LatGroup:              1,
			LngGroup:              2,
			SuppressWhenAmbiguous: true,
			SuppressWhenDegrees:   true,
		},
		{
			Name:           "bracketed-pair",
			Category:       CategoryLastResort,
			Priority:       70,
			Pattern:        regexp.MustCompile(`[\[(]\s*` + axisDecimal + `\s*,\s*` + axisDecimal + `\s*[\])]`),
			LatGroup:       1,
			LngGroup:       2,
			LastResortOnly: true,
		},
		{
			Name:           "quoted-pair",
			Category:       CategoryLastResort,
			Priority:       71,
			Pattern:        regexp.MustCompile(`["']` + axisDecimal + `\s*,\s*` + axisDecimal + `["']`),
			LatGroup:       1,
			LngGroup:       2,
			LastResortOnly: true,
		},
		{
			Name:     "high-precision-pair",
			Category: CategoryLastResort,
			Priority: 72,
			Pattern: regexp.MustCompile(
				notNumeric + `([-+]?\d{1,3}\.\d{4,})[,\s]+([-+]?\d{1,3}\.\d{4,})`,
			),
			LatGroup:       1,
			LngGroup:       2,
			LastResortOnly: true,
		},
	}

	for idx, name := range queryParams {
		rules = append(rules, Rule{
			Name:                  "query-" + name,
			Category:              CategoryQueryParam,
			Priority:              40 + idx,
			Pattern:               regexp.MustCompile(`[?&]` + name + `=` + axisNumber + pairComma + axisNumber),
			LatGroup:              1,
			LngGroup:              2,
			SuppressWhenAmbiguous: true,
		})
	}

	return rules
}

func metaPattern(attr, name string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`%s=["']%s["']\s+content=["']%s["']`, attr, name, axisNumber,
	))
}
