package prioritizer

import (
	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
)

// ResolveAOI отбирает единицы области интереса в порядке таблицы.
// boundaries нужны только для режима region.
func ResolveAOI(
	sel domain.AOISelection,
	units []*domain.SpatialUnit,
	boundaries []*domain.AdminBoundary,
) ([]*domain.SpatialUnit, error) {
	switch sel.Mode {
	case domain.AOIModeEntireDomain:
		out := make([]*domain.SpatialUnit, len(units))
		copy(out, units)
		return out, nil

	case domain.AOIModeBasin:
		names := nameSet(sel.Basins.Chosen())
		if len(names) == 0 {
			return []*domain.SpatialUnit{}, nil
		}
		out := make([]*domain.SpatialUnit, 0)
		for _, u := range units {
			if _, ok := names[u.Basin]; ok {
				out = append(out, u)
			}
		}
		return out, nil

	case domain.AOIModeRegion:
		names := nameSet(sel.Regions.Chosen())
		if len(names) == 0 {
			return []*domain.SpatialUnit{}, nil
		}
		chosen := make([]*domain.Geometry, 0, len(names))
		for _, b := range boundaries {
			if _, ok := names[b.Name]; ok && !b.Geometry.IsEmpty() {
				chosen = append(chosen, b.Geometry)
			}
		}
		return intersecting(units, chosen...), nil

	case domain.AOIModeGeometry:
		if !sel.HasGeometry() {
			return []*domain.SpatialUnit{}, nil
		}
		drawn, err := domain.ParseGeometry(sel.Geometry)
		if err != nil {
			return nil, err
		}
		if drawn.IsEmpty() {
			return []*domain.SpatialUnit{}, nil
		}
		return intersecting(units, drawn), nil
	}

	return nil, errors.ErrInvalidAOIMode.WithDetails(map[string]interface{}{
		"mode": string(sel.Mode),
	})
}

// intersecting: единицы, пересекающие объединение областей; каждая не более одного раза
func intersecting(units []*domain.SpatialUnit, areas ...*domain.Geometry) []*domain.SpatialUnit {
	out := make([]*domain.SpatialUnit, 0)
	if len(areas) == 0 {
		return out
	}
	for _, u := range units {
		if u.Geometry.IsEmpty() {
			continue
		}
		for _, a := range areas {
			if u.Geometry.Intersects(a) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
