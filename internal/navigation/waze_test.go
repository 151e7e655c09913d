package navigation_test

import (
	"testing"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"github.com/chigarow/maps-to-waze-app/internal/navigation"
	"github.com/stretchr/testify/assert"
)

func TestWazeLinks(t *testing.T) {
	tests := []struct {
		name   string
		coords models.Coordinates
		app    string
		web    string
	}{
		{
			name:   "new york",
			coords: models.Coordinates{Latitude: 40.7128, Longitude: -74.006},
			app:    "waze://?ll=40.7128,-74.006&navigate=yes",
			web:    "https://waze.com/ul?ll=40.7128,-74.006&navigate=yes",
		},
		{
			name:   "whole degrees",
			coords: models.Coordinates{Latitude: -33, Longitude: 151},
			app:    "waze://?ll=-33,151&navigate=yes",
			web:    "https://waze.com/ul?ll=-33,151&navigate=yes",
		},
		{
			name:   "full precision is kept",
			coords: models.Coordinates{Latitude: 48.8583701, Longitude: 2.2922926},
			app:    "waze://?ll=48.8583701,2.2922926&navigate=yes",
			web:    "https://waze.com/ul?ll=48.8583701,2.2922926&navigate=yes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.app, navigation.WazeAppURI(tt.coords))
			assert.Equal(t, tt.web, navigation.WazeWebURL(tt.coords))
		})
	}
}
