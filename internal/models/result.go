package models

// Result is the outcome of a resolution stage: either Found with a validated
// coordinate, or NotFound. The zero value is NotFound.
type Result struct {
	coords Coordinates
	source string
	found  bool
}

// Found wraps a coordinate that has already passed range validation.
// source names the rule or stage that produced it.
func Found(coords Coordinates, source string) Result {
	return Result{coords: coords, source: source, found: true}
}

// NotFound is the result of a stage that produced no coordinate.
func NotFound() Result {
	return Result{}
}

// IsFound reports whether the result carries a coordinate.
func (r Result) IsFound() bool { return r.found }

// Coordinates returns the coordinate and true for a Found result.
func (r Result) Coordinates() (Coordinates, bool) {
	return r.coords, r.found
}

// Source returns the name of the rule or stage that produced a Found result.
func (r Result) Source() string { return r.source }
