package geo

// Ring is a polygon outer ring in [lng, lat] order (GeoJSON convention),
// matching the storage order required by §3's Zone invariants.
type Ring [][2]float64

// PointInPolygon reports whether point lies inside ring using the standard
// ray-casting algorithm. Rings with fewer than 3 points always return
// false. Behavior exactly on an edge is deterministic but unspecified by
// design (§4.1).
func PointInPolygon(point GeoPoint, ring Ring) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		intersects := ((yi > point.Lat) != (yj > point.Lat)) &&
			(point.Lng < (xj-xi)*(point.Lat-yi)/(yj-yi)+xi)
		if intersects {
			inside = !inside
		}
	}
	return inside
}

// Centroid returns the arithmetic mean of a ring's vertices, used as the
// "center" of a polygon zone for CLOSEST conflict resolution.
func Centroid(ring Ring) GeoPoint {
	if len(ring) == 0 {
		return GeoPoint{}
	}
	var sumLat, sumLng float64
	for _, v := range ring {
		sumLng += v[0]
		sumLat += v[1]
	}
	n := float64(len(ring))
	return GeoPoint{Lat: sumLat / n, Lng: sumLng / n}
}

// BBox is an axis-aligned bounding box over a set of points.
type BBox struct {
	MinLat, MinLng, MaxLat, MaxLng float64
}

// ComputeBBox returns the bounding box enclosing points. Calling with an
// empty slice returns the zero-value BBox.
func ComputeBBox(points []GeoPoint) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	b := BBox{MinLat: points[0].Lat, MaxLat: points[0].Lat, MinLng: points[0].Lng, MaxLng: points[0].Lng}
	for _, p := range points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lng < b.MinLng {
			b.MinLng = p.Lng
		}
		if p.Lng > b.MaxLng {
			b.MaxLng = p.Lng
		}
	}
	return b
}
