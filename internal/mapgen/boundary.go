package mapgen

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// LoadBoundary reads a boundary shapefile (state or county outlines) and
// returns its rings as a GeoJSON MultiLineString geometry for overlaying on
// the map.
func LoadBoundary(path string) ([]byte, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "mapgen: open shapefile")
	}
	defer reader.Close() //nolint:errcheck

	mls := geom.NewMultiLineString(geom.XY)
	for reader.Next() {
		_, shape := reader.Shape()

		switch s := shape.(type) {
		case *shp.Polygon:
			if err := appendRings(mls, s.Parts, s.Points); err != nil {
				return nil, err
			}
		case *shp.PolyLine:
			if err := appendRings(mls, s.Parts, s.Points); err != nil {
				return nil, err
			}
		}
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrap(err, "mapgen: read shapefile")
	}
	if mls.NumLineStrings() == 0 {
		return nil, eris.Errorf("mapgen: no boundary geometry in %s", path)
	}

	data, err := geojson.Marshal(mls)
	if err != nil {
		return nil, eris.Wrap(err, "mapgen: encode boundary geojson")
	}
	return data, nil
}

// appendRings converts shapefile part/point arrays into line strings.
func appendRings(mls *geom.MultiLineString, parts []int32, points []shp.Point) error {
	for i := range parts {
		start := parts[i]
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if end <= start {
			continue
		}

		coords := make([]geom.Coord, 0, end-start)
		for _, pt := range points[start:end] {
			coords = append(coords, geom.Coord{pt.X, pt.Y})
		}

		ls := geom.NewLineString(geom.XY)
		if _, err := ls.SetCoords(coords); err != nil {
			return eris.Wrap(err, "mapgen: build boundary ring")
		}
		if err := mls.Push(ls); err != nil {
			return eris.Wrap(err, "mapgen: push boundary ring")
		}
	}
	return nil
}
