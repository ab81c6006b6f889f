package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistance(12.97, 77.59, 12.97, 77.59))

	// One degree of latitude is about 111.2 km.
	assert.InDelta(t, 111.19, HaversineDistance(0, 0, 1, 0), 0.05)

	// Delhi to Mumbai.
	assert.InDelta(t, 1148, HaversineDistance(28.6139, 77.2090, 19.0760, 72.8777), 5)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(90, 180))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.False(t, ValidCoordinates(91, 0))
	assert.False(t, ValidCoordinates(0, 181))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
}
