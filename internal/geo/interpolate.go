package geo

// MaxCrossingIterations bounds the binary search used to localize a zone
// boundary crossing along a polyline segment (§4.1).
const MaxCrossingIterations = 15

// Lerp returns the point a fraction t (0..1) of the way from a to b,
// linearly interpolating lat/lng independently. This is an approximation
// adequate for the short segments a single zone crossing spans.
func Lerp(a, b GeoPoint, t float64) GeoPoint {
	return GeoPoint{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
	}
}

// FindCrossing performs a bounded binary search between a (inside) and b
// (outside), as determined by containment, to localize the boundary point
// to within MaxCrossingIterations bisections. containment must return true
// for a and false for b; if it doesn't, the search still terminates after
// MaxCrossingIterations steps and returns its best estimate.
func FindCrossing(a, b GeoPoint, containment func(GeoPoint) bool) GeoPoint {
	lo, hi := 0.0, 1.0
	mid := a
	for i := 0; i < MaxCrossingIterations; i++ {
		t := (lo + hi) / 2
		mid = Lerp(a, b, t)
		if containment(mid) {
			lo = t
		} else {
			hi = t
		}
	}
	return mid
}
