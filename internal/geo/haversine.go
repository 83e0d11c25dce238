// ABOUTME: Great-circle distance estimation between coordinates
// ABOUTME: Haversine formula on a spherical earth, mean radius 6371 km

package geo

import "math"

// EarthRadiusKm is the mean earth radius used by the spherical approximation.
const EarthRadiusKm = 6371

// Point is a coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// HaversineKm returns the great-circle distance between two points in
// kilometers. Inputs outside [-90,90]/[-180,180] produce garbage, not errors.
func HaversineKm(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180

	s1 := math.Sin(dLat/2) * math.Sin(dLat/2)
	s2 := math.Cos(la1) * math.Cos(la2) * math.Sin(dLng/2) * math.Sin(dLng/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(s1+s2))
}
