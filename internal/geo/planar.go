// Package geo provides the planar distance approximation used for driver
// proximity checks. One degree of latitude is treated as 111.32 km and one
// degree of longitude as 111.32 km scaled by cos(origin latitude). The
// approximation is acceptable only for the short intra-city distances this
// system deals in (well under ~50 km); it is not geodesically exact and must
// not be applied to country-scale radii.
package geo

import (
	"math"

	"cargo-dispatch-service/internal/domain"
)

// KmPerDegree is the length of one degree of latitude in kilometers.
const KmPerDegree = 111.32

// DistanceKm returns the planar-approximated distance between origin and p
// in kilometers.
func DistanceKm(origin, p domain.Coordinate) float64 {
	dLat := (p.Lat - origin.Lat) * KmPerDegree
	dLng := (p.Lng - origin.Lng) * KmPerDegree * math.Cos(origin.Lat*math.Pi/180)
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// WithinRadiusKm reports whether p lies within radiusKm of origin. The
// boundary is inclusive; a non-positive radius matches nothing.
func WithinRadiusKm(origin, p domain.Coordinate, radiusKm float64) bool {
	if radiusKm <= 0 {
		return false
	}
	return DistanceKm(origin, p) <= radiusKm
}
