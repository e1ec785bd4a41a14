package domain

import (
	"encoding/json"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/huc-prioritizer/internal/pkg/errors"
)

// Geometry - сферические полигоны и точки, построенные из GeoJSON
type Geometry struct {
	polygons []*s2.Polygon
	points   []s2.Point
	bound    s2.Rect
	raw      json.RawMessage
}

// ParseGeometry принимает GeoJSON geometry, Feature или FeatureCollection.
// Поддерживаются Polygon, MultiPolygon, Point и MultiPoint.
func ParseGeometry(data []byte) (*Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, invalidGeometry(err.Error())
	}

	var geoms []orb.Geometry
	switch head.Type {
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, invalidGeometry(err.Error())
		}
		geoms = append(geoms, f.Geometry)
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, invalidGeometry(err.Error())
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, invalidGeometry(err.Error())
		}
		geoms = append(geoms, g.Geometry())
	}

	return FromOrb(data, geoms...)
}

// FromOrb строит Geometry из уже разобранных orb геометрий
func FromOrb(raw []byte, geoms ...orb.Geometry) (*Geometry, error) {
	g := &Geometry{bound: s2.EmptyRect(), raw: raw}
	for _, og := range geoms {
		if err := g.add(og); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Geometry) add(og orb.Geometry) error {
	switch v := og.(type) {
	case nil:
		return nil
	case orb.Point:
		g.addPoint(v)
	case orb.MultiPoint:
		for _, p := range v {
			g.addPoint(p)
		}
	case orb.Polygon:
		g.addPolygon(v)
	case orb.MultiPolygon:
		for _, p := range v {
			g.addPolygon(p)
		}
	case orb.Collection:
		for _, c := range v {
			if err := g.add(c); err != nil {
				return err
			}
		}
	default:
		return invalidGeometry("unsupported geometry type " + og.GeoJSONType())
	}
	return nil
}

func (g *Geometry) addPoint(p orb.Point) {
	ll := s2.LatLngFromDegrees(p.Lat(), p.Lon())
	g.points = append(g.points, s2.PointFromLatLng(ll))
	g.bound = g.bound.AddPoint(ll)
}

func (g *Geometry) addPolygon(p orb.Polygon) {
	loops := make([]*s2.Loop, 0, len(p))
	for _, ring := range p {
		if loop := ringToLoop(ring); loop != nil {
			loops = append(loops, loop)
		}
	}
	if len(loops) == 0 {
		return
	}
	poly := s2.PolygonFromLoops(loops)
	g.polygons = append(g.polygons, poly)
	g.bound = g.bound.Union(poly.RectBound())
}

// ringToLoop: без замыкающей вершины и повторов; nil для вырожденных колец
func ringToLoop(ring orb.Ring) *s2.Loop {
	pts := make([]s2.Point, 0, len(ring))
	for i, p := range ring {
		if i == len(ring)-1 && len(ring) > 1 && p.Equal(ring[0]) {
			break
		}
		sp := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon()))
		if n := len(pts); n > 0 && pts[n-1].ApproxEqual(sp) {
			continue
		}
		pts = append(pts, sp)
	}
	if len(pts) < 3 {
		return nil
	}
	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return loop
}

// IsEmpty - нет ни одного полигона и ни одной точки
func (g *Geometry) IsEmpty() bool {
	return g == nil || (len(g.polygons) == 0 && len(g.points) == 0)
}

// Raw возвращает исходный GeoJSON
func (g *Geometry) Raw() json.RawMessage {
	if g == nil {
		return nil
	}
	return g.raw
}

// ContainsLatLng проверяет попадание точки внутрь одного из полигонов
func (g *Geometry) ContainsLatLng(lat, lon float64) bool {
	if g.IsEmpty() {
		return false
	}
	ll := s2.LatLngFromDegrees(lat, lon)
	if !g.bound.ContainsLatLng(ll) {
		return false
	}
	return g.containsPoint(s2.PointFromLatLng(ll))
}

func (g *Geometry) containsPoint(p s2.Point) bool {
	for _, poly := range g.polygons {
		if poly.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// Intersects - есть ли у геометрий общая точка
func (g *Geometry) Intersects(other *Geometry) bool {
	if g.IsEmpty() || other.IsEmpty() {
		return false
	}
	if !g.bound.Intersects(other.bound) {
		return false
	}

	for _, a := range g.polygons {
		for _, b := range other.polygons {
			if a.Intersects(b) {
				return true
			}
		}
	}
	for _, p := range other.points {
		if g.containsPoint(p) {
			return true
		}
	}
	for _, p := range g.points {
		if other.containsPoint(p) {
			return true
		}
	}
	for _, a := range g.points {
		for _, b := range other.points {
			if a.ApproxEqual(b) {
				return true
			}
		}
	}
	return false
}

func invalidGeometry(reason string) error {
	return errors.ErrInvalidGeometry.WithDetails(map[string]interface{}{
		"reason": reason,
	})
}
