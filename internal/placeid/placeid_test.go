package placeid_test

import (
	"testing"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"github.com/chigarow/maps-to-waze-app/internal/placeid"
	"github.com/stretchr/testify/assert"
)

const (
	featureURL = "https://www.google.com/maps/place/Louvre/data=!4m2!3m1!1s0x47e66e2964e34e2d:0xd5ce0bf1bd5a7e2b"
	featureCID = "15406264508172893739"
)

func TestExtractCID(t *testing.T) {
	t.Run("data segment feature id", func(t *testing.T) {
		cid, ok := placeid.ExtractCID(featureURL)

		assert.True(t, ok)
		assert.Equal(t, featureCID, cid)
	})

	t.Run("ftid query parameter", func(t *testing.T) {
		cid, ok := placeid.ExtractCID("https://maps.google.com/?ftid=0x47e66e2964e34e2d:0x1f")

		assert.True(t, ok)
		assert.Equal(t, "31", cid)
	})

	t.Run("encoded colon", func(t *testing.T) {
		cid, ok := placeid.ExtractCID("https://maps.google.com/?ftid=0x1%3A0xff")

		assert.True(t, ok)
		assert.Equal(t, "255", cid)
	})

	t.Run("largest unsigned value", func(t *testing.T) {
		cid, ok := placeid.ExtractCID("https://maps.google.com/?ftid=0x1:0xffffffffffffffff")

		assert.True(t, ok)
		assert.Equal(t, "18446744073709551615", cid)
	})

	t.Run("overflowing hex is rejected", func(t *testing.T) {
		_, ok := placeid.ExtractCID("https://maps.google.com/?ftid=0x1:0x1ffffffffffffffff")

		assert.False(t, ok)
	})

	t.Run("no feature id", func(t *testing.T) {
		_, ok := placeid.ExtractCID("https://www.google.com/maps/@48.85,2.29,15z")

		assert.False(t, ok)
	})
}

func TestExtractCIDParam(t *testing.T) {
	cid, ok := placeid.ExtractCIDParam("https://maps.google.com/?hl=en&cid=1234567890")
	assert.True(t, ok)
	assert.Equal(t, "1234567890", cid)

	_, ok = placeid.ExtractCIDParam("https://maps.google.com/?acid=12")
	assert.False(t, ok)
}

func TestExtractPlaceID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{
			name: "query_place_id parameter",
			url:  "https://www.google.com/maps/search/?api=1&query=Louvre&query_place_id=ChIJD3uTd9hx5kcR1IQvGfr8dbk",
			want: "ChIJD3uTd9hx5kcR1IQvGfr8dbk",
			ok:   true,
		},
		{
			name: "place_id colon",
			url:  "https://www.google.com/maps/place/?q=place_id:ChIJN1t_tDeuEmsRUsoyG83frY4",
			want: "ChIJN1t_tDeuEmsRUsoyG83frY4",
			ok:   true,
		},
		{
			name: "token trailing place data",
			url:  "https://www.google.com/maps/place/Cafe/data=!4m2!3m1!1sChIJLU7jZClu5kcR4PcOOO6p3I0",
			want: "ChIJLU7jZClu5kcR4PcOOO6p3I0",
			ok:   true,
		},
		{
			name: "nothing",
			url:  "https://www.google.com/maps/place/Tokyo",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := placeid.ExtractPlaceID(tt.url)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Precedence(t *testing.T) {
	t.Run("place id marker beats everything", func(t *testing.T) {
		id, ok := placeid.Extract(featureURL + "?cid=42&query_place_id=ChIJabc")

		assert.True(t, ok)
		assert.Equal(t, models.PlaceID("ChIJabc"), id)
	})

	t.Run("cid parameter beats hex feature id", func(t *testing.T) {
		id, ok := placeid.Extract(featureURL + "?cid=42")

		assert.True(t, ok)
		assert.Equal(t, models.CID("42"), id)
	})

	t.Run("hex feature id", func(t *testing.T) {
		id, ok := placeid.Extract(featureURL)

		assert.True(t, ok)
		assert.Equal(t, models.KindCID, id.Kind)
		assert.Equal(t, featureCID, id.Value)
	})

	t.Run("trailing token", func(t *testing.T) {
		id, ok := placeid.Extract("https://www.google.com/maps/place/Cafe/data=!4m2!3m1!1sChIJLU7jZClu5kcR4PcOOO6p3I0")

		assert.True(t, ok)
		assert.Equal(t, models.PlaceID("ChIJLU7jZClu5kcR4PcOOO6p3I0"), id)
	})

	t.Run("nothing", func(t *testing.T) {
		_, ok := placeid.Extract("https://www.google.com/maps/@1,2,3z")

		assert.False(t, ok)
	})
}
