package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseStringAcceptsStringsNumbersAndNull(t *testing.T) {
	var body struct {
		Lat   LooseString `json:"lat"`
		Lng   LooseString `json:"lng"`
		Start LooseString `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"lat":" 12.5 ","lng":77.25,"start":null}`), &body))

	assert.Equal(t, LooseString("12.5"), body.Lat)
	assert.Equal(t, LooseString("77.25"), body.Lng)
	assert.True(t, body.Start.Empty())

	lat, err := body.Lat.Float()
	require.NoError(t, err)
	assert.Equal(t, 12.5, lat)
}

func TestLooseStringRejectsObjects(t *testing.T) {
	var s LooseString
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

func TestLooseStringTime(t *testing.T) {
	want := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	cases := map[string]LooseString{
		"rfc3339":       "2025-03-01T09:30:00Z",
		"rfc3339 zone":  "2025-03-01T15:00:00+05:30",
		"datetime":      "2025-03-01T09:30",
		"space seconds": "2025-03-01 09:30:00",
		"unix millis":   LooseString("1740821400000"),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := in.Time()
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := LooseString("next tuesday").Time()
	assert.Error(t, err)
	_, err = LooseString("").Time()
	assert.Error(t, err)
}

func TestGeoPointOrder(t *testing.T) {
	p := NewGeoPoint(28.5, 77.1)
	assert.Equal(t, []float64{77.1, 28.5}, p.Coordinates)

	lat, lng, ok := p.LatLng()
	assert.True(t, ok)
	assert.Equal(t, 28.5, lat)
	assert.Equal(t, 77.1, lng)

	var missing *GeoPoint
	_, _, ok = missing.LatLng()
	assert.False(t, ok)
}

func TestWorkshopPatchApply(t *testing.T) {
	name := "New name"
	closed := WorkshopClosed
	w := &Workshop{Name: "Old", Status: WorkshopOpen, Address: "Somewhere", RatingAvg: 4.5, ReviewsCount: 2}

	patch := WorkshopPatch{Name: &name, Status: &closed}
	assert.False(t, patch.Empty())
	patch.Apply(w)

	assert.Equal(t, "New name", w.Name)
	assert.Equal(t, WorkshopClosed, w.Status)
	assert.Equal(t, "Somewhere", w.Address)
	assert.Equal(t, 4.5, w.RatingAvg)
	assert.Equal(t, 2, w.ReviewsCount)
	assert.True(t, WorkshopPatch{}.Empty())
}
