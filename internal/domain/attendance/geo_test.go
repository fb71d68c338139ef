package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	officeLat = -6.914744
	officeLon = 107.609810
)

// One degree of latitude is ~111,320 m, so this offset is ~5 m north.
const fiveMetersLat = 5.0 / 111320.0

func TestDistanceMeters_Identity(t *testing.T) {
	assert.Zero(t, DistanceMeters(officeLat, officeLon, officeLat, officeLon))
	assert.Zero(t, DistanceMeters(0, 0, 0, 0))
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"office to nearby point", officeLat, officeLon, officeLat + fiveMetersLat, officeLon},
		{"across the equator", -1.5, 30.0, 2.5, 31.0},
		{"across the antimeridian", 10.0, 179.9, 10.0, -179.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			forward := DistanceMeters(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			backward := DistanceMeters(tc.lat2, tc.lon2, tc.lat1, tc.lon1)
			assert.InDelta(t, forward, backward, 1e-9)
			assert.GreaterOrEqual(t, forward, 0.0)
		})
	}
}

func TestDistanceMeters_KnownOffsets(t *testing.T) {
	// ~5 m north of the office.
	d := DistanceMeters(officeLat, officeLon, officeLat+fiveMetersLat, officeLon)
	assert.InDelta(t, 5.0, d, 0.05)

	// ~100 m north of the office.
	d = DistanceMeters(officeLat, officeLon, officeLat+20*fiveMetersLat, officeLon)
	assert.InDelta(t, 100.0, d, 1.0)
}

func TestGeofence_Contains(t *testing.T) {
	fence := Geofence{Latitude: officeLat, Longitude: officeLon, RadiusMeters: 5}

	t.Run("exact office coordinate is inside", func(t *testing.T) {
		inside, distance := fence.Contains(officeLat, officeLon)
		assert.True(t, inside)
		assert.Zero(t, distance)
	})

	t.Run("radius comparison is inclusive", func(t *testing.T) {
		inside, distance := fence.Contains(officeLat, officeLon)
		assert.True(t, inside)
		assert.LessOrEqual(t, distance, fence.RadiusMeters)

		// A point just inside the perimeter passes.
		inside, distance = fence.Contains(officeLat+0.98*fiveMetersLat, officeLon)
		assert.True(t, inside, "measured %.3f m", distance)
	})

	t.Run("one meter beyond the radius fails", func(t *testing.T) {
		inside, distance := fence.Contains(officeLat+1.2*fiveMetersLat, officeLon)
		assert.False(t, inside)
		assert.Greater(t, distance, fence.RadiusMeters)
	})

	t.Run("100 m away fails", func(t *testing.T) {
		inside, distance := fence.Contains(officeLat+20*fiveMetersLat, officeLon)
		assert.False(t, inside)
		assert.InDelta(t, 100.0, distance, 1.0)
	})
}
