package prioritizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huc-prioritizer/internal/domain"
)

// unit строит единицу с заданным углеродом и остальными индикаторами = 0.1
func unit(id, basin string, carbon float64) *domain.SpatialUnit {
	ind := make(map[domain.CriterionKey]float64)
	for _, c := range domain.Criteria() {
		ind[c.Key] = 0.1
	}
	ind[domain.CriterionCarbon] = carbon
	return &domain.SpatialUnit{
		ID:         id,
		Name:       "Unit " + id,
		Basin:      basin,
		Indicators: ind,
	}
}

// square - квадрат со стороной size градусов от (lon, lat)
func square(t *testing.T, lon, lat, size float64) *domain.Geometry {
	t.Helper()
	g, err := domain.ParseGeometry([]byte(squareJSON(lon, lat, size)))
	require.NoError(t, err)
	return g
}

func squareJSON(lon, lat, size float64) string {
	return fmt.Sprintf(`{"type":"Polygon","coordinates":[[[%g,%g],[%g,%g],[%g,%g],[%g,%g],[%g,%g]]]}`,
		lon, lat, lon+size, lat, lon+size, lat+size, lon, lat+size, lon, lat)
}

func ids(units []*domain.SpatialUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.ID
	}
	return out
}

func scoredIDs(units []domain.ScoredUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.ID
	}
	return out
}

func selection(mode domain.AOIMode, picks ...string) domain.AOISelection {
	sel := domain.NewAOISelection(mode, domain.Ceilings{Regions: 100, Basins: 17})
	l, ok := sel.ActiveList()
	if !ok {
		return sel
	}
	for _, p := range picks {
		l, _ = l.OnPick(l.Len()-1, p)
	}
	return sel.WithActiveList(l)
}
