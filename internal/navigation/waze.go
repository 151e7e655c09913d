// Package navigation formats resolved coordinates as navigation app links.
package navigation

import (
	"strconv"

	"github.com/chigarow/maps-to-waze-app/internal/models"
)

const (
	wazeAppBase = "waze://"
	wazeWebBase = "https://waze.com/ul"
)

// WazeAppURI returns the deep link that opens the Waze app navigating to c.
func WazeAppURI(c models.Coordinates) string {
	return wazeAppBase + "?" + query(c)
}

// WazeWebURL returns the universal link for c, which falls back to the web when the
// app is not installed.
func WazeWebURL(c models.Coordinates) string {
	return wazeWebBase + "?" + query(c)
}

func query(c models.Coordinates) string {
	return "ll=" + formatAxis(c.Latitude) + "," + formatAxis(c.Longitude) + "&navigate=yes"
}

func formatAxis(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
