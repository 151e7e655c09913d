package patterns

import (
	"strconv"

	"github.com/chigarow/maps-to-waze-app/internal/models"
)

// DegreeMapping holds the submatch indexes of a degree-minute-second pair.
type DegreeMapping struct {
	LatDeg, LatMin, LatSec, LatHemisphere int
	LngDeg, LngMin, LngSec, LngHemisphere int
}

func (r Rule) applyDegrees(text string) (models.Coordinates, error) {
	m := r.Pattern.FindStringSubmatch(text)
	if m == nil {
		return models.Coordinates{}, models.ErrNoMatch
	}

	dm := r.Degrees
	lat, ok := dmsToDecimal(m[dm.LatDeg], m[dm.LatMin], m[dm.LatSec], m[dm.LatHemisphere] == "S")
	if !ok {
		return models.Coordinates{}, models.ErrNoMatch
	}
	lng, ok := dmsToDecimal(m[dm.LngDeg], m[dm.LngMin], m[dm.LngSec], m[dm.LngHemisphere] == "W")
	if !ok {
		return models.Coordinates{}, models.ErrNoMatch
	}

	return models.Coordinates{Latitude: lat, Longitude: lng}, nil
}

// dmsToDecimal converts deg + min/60 + sec/3600, negated for the southern or western hemisphere.
func dmsToDecimal(rawDeg, rawMin, rawSec string, negative bool) (float64, bool) {
	const (
		minutesPerDegree = 60
		secondsPerDegree = 3600
	)

	deg, errDeg := strconv.ParseFloat(rawDeg, 64)
	minutes, errMin := strconv.ParseFloat(rawMin, 64)
	seconds, errSec := strconv.ParseFloat(rawSec, 64)
	if errDeg != nil || errMin != nil || errSec != nil {
		return 0, false
	}

	value := deg + minutes/minutesPerDegree + seconds/secondsPerDegree
	if negative {
		value = -value
	}
	return value, true
}
