package attendance

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// DistanceMeters computes the great-circle distance in meters between two
// coordinates given in decimal degrees, using the haversine formula.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Geofence is a circular perimeter around a fixed center coordinate.
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Contains reports whether the given coordinate lies within the fence and
// returns the measured distance in meters. The radius comparison is
// inclusive: a point exactly on the perimeter is inside.
func (g Geofence) Contains(lat, lon float64) (bool, float64) {
	distance := DistanceMeters(lat, lon, g.Latitude, g.Longitude)
	return distance <= g.RadiusMeters, distance
}
