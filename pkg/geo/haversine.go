package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// Coord is a latitude/longitude pair in degrees.
type Coord struct {
	Lat float64
	Lon float64
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Distance returns the Haversine distance in meters between a and b.
// The operands are put in a fixed order first, so Distance(a, b) and
// Distance(b, a) are bit-for-bit equal.
func Distance(a, b Coord) float64 {
	if a == b {
		return 0
	}
	if b.Lat < a.Lat || (b.Lat == a.Lat && b.Lon < a.Lon) {
		a, b = b, a
	}
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// RoundMeters rounds a distance to whole meters, ties to even.
func RoundMeters(d float64) uint32 {
	if d <= 0 || math.IsNaN(d) {
		return 0
	}
	return uint32(math.RoundToEven(d))
}

// LengthMeters is the integer edge length between a and b.
func LengthMeters(a, b Coord) uint32 {
	return RoundMeters(Distance(a, b))
}
