package geocode

import "github.com/twpayne/go-geom"

// Bounds is an inclusive geographic bounding box used to validate provider
// coordinates against the expected service area.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the box, edges included.
func (b Bounds) Contains(lat, lon float64) bool {
	box := geom.NewBounds(geom.XY)
	box.Set(b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
	return box.OverlapsPoint(geom.XY, geom.Coord{lon, lat})
}
