package dataset

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"github.com/huc-prioritizer/internal/domain"
)

// Свойства объектов в выгрузке таблиц HUC-12 и границ округов
const (
	PropHUC12   = "HUC12"
	PropName    = "NAME"
	PropBasin   = "DWQ_Basin"
	PropAcres   = "ACRES"
	PropStateFP = "STATEFP"
)

// UnitsFromGeoJSON читает FeatureCollection таблицы индикаторов
func UnitsFromGeoJSON(data []byte) ([]*domain.SpatialUnit, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	units := make([]*domain.SpatialUnit, 0, len(fc.Features))
	for i, f := range fc.Features {
		id := propString(f.Properties, PropHUC12)
		if id == "" {
			return nil, fmt.Errorf("feature %d: missing %s", i, PropHUC12)
		}

		u := &domain.SpatialUnit{
			ID:         id,
			Name:       propString(f.Properties, PropName),
			Basin:      propString(f.Properties, PropBasin),
			Indicators: make(map[domain.CriterionKey]float64),
			Attributes: make(map[string]float64),
		}
		if v, ok := propFloat(f.Properties, PropAcres); ok {
			u.Acres = v
		}
		for _, c := range domain.Criteria() {
			if v, ok := propFloat(f.Properties, c.Field); ok {
				u.Indicators[c.Key] = v
			}
		}
		for _, a := range domain.DisplayAttributes {
			if v, ok := propFloat(f.Properties, a); ok {
				u.Attributes[a] = v
			}
		}

		if u.Geometry, err = featureGeometry(f); err != nil {
			return nil, fmt.Errorf("feature %s: %w", id, err)
		}
		units = append(units, u)
	}
	return units, nil
}

// BoundariesFromGeoJSON читает FeatureCollection границ
func BoundariesFromGeoJSON(data []byte) ([]*domain.AdminBoundary, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	out := make([]*domain.AdminBoundary, 0, len(fc.Features))
	for i, f := range fc.Features {
		b := &domain.AdminBoundary{
			Name:    propString(f.Properties, PropName),
			StateFP: propString(f.Properties, PropStateFP),
		}
		if b.Name == "" {
			return nil, fmt.Errorf("feature %d: missing %s", i, PropName)
		}
		if b.Geometry, err = featureGeometry(f); err != nil {
			return nil, fmt.Errorf("boundary %s: %w", b.Name, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func featureGeometry(f *geojson.Feature) (*domain.Geometry, error) {
	if f.Geometry == nil {
		return nil, nil
	}
	raw, err := geojson.NewGeometry(f.Geometry).MarshalJSON()
	if err != nil {
		return nil, err
	}
	return domain.FromOrb(raw, f.Geometry)
}

func propString(p geojson.Properties, key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func propFloat(p geojson.Properties, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}
