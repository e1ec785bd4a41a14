package prioritizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
)

func TestResolveAOI_EntireDomain(t *testing.T) {
	units := []*domain.SpatialUnit{unit("1", "Neuse", 1), unit("2", "Tar", 2)}

	got, err := ResolveAOI(selection(domain.AOIModeEntireDomain), units, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestResolveAOI_UnsetModeIsError(t *testing.T) {
	units := []*domain.SpatialUnit{unit("1", "Neuse", 1)}

	got, err := ResolveAOI(selection(domain.AOIModeUnset), units, nil)

	assert.ErrorIs(t, err, errors.ErrInvalidAOIMode)
	assert.Nil(t, got)
}

func TestResolveAOI_Basin(t *testing.T) {
	units := []*domain.SpatialUnit{
		unit("1", "BasinA", 1),
		unit("2", "BasinB", 2),
		unit("3", "BasinA", 3),
	}

	t.Run("filters by basin attribute", func(t *testing.T) {
		got, err := ResolveAOI(selection(domain.AOIModeBasin, "BasinA"), units, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, ids(got))
	})

	t.Run("duplicate picks match units once", func(t *testing.T) {
		once, err := ResolveAOI(selection(domain.AOIModeBasin, "BasinA"), units, nil)
		require.NoError(t, err)
		twice, err := ResolveAOI(selection(domain.AOIModeBasin, "BasinA", "BasinA"), units, nil)
		require.NoError(t, err)

		assert.Equal(t, ids(once), ids(twice))
	})

	t.Run("no picks resolve to empty set", func(t *testing.T) {
		got, err := ResolveAOI(selection(domain.AOIModeBasin), units, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestResolveAOI_Region(t *testing.T) {
	u1 := unit("1", "Neuse", 1)
	u1.Geometry = square(t, -79, 35, 0.2)
	u2 := unit("2", "Neuse", 2)
	u2.Geometry = square(t, -76, 35, 0.2)
	u3 := unit("3", "Neuse", 3)
	u3.Geometry = square(t, -78.1, 35, 0.2) // на границе двух округов
	u4 := unit("4", "Neuse", 4)             // без геометрии
	units := []*domain.SpatialUnit{u1, u2, u3, u4}

	boundaries := []*domain.AdminBoundary{
		{Name: "Wake", StateFP: "37", Geometry: square(t, -79.5, 34.5, 1.5)},
		{Name: "Dare", StateFP: "37", Geometry: square(t, -76.5, 34.5, 1)},
	}

	t.Run("units intersecting chosen boundaries", func(t *testing.T) {
		got, err := ResolveAOI(selection(domain.AOIModeRegion, "Wake"), units, boundaries)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, ids(got))
	})

	t.Run("union of several regions keeps table order", func(t *testing.T) {
		got, err := ResolveAOI(selection(domain.AOIModeRegion, "Dare", "Wake"), units, boundaries)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, ids(got))
	})

	t.Run("name not in boundaries", func(t *testing.T) {
		got, err := ResolveAOI(selection(domain.AOIModeRegion, "Orange"), units, boundaries)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty picks give empty set, scored and ranked without error", func(t *testing.T) {
		got, err := ResolveAOI(selection(domain.AOIModeRegion), units, boundaries)
		require.NoError(t, err)
		require.Empty(t, got)

		scored, err := ScoreAll(got, domain.DefaultWeights())
		require.NoError(t, err)
		full, top := Rank(scored, 3)
		assert.Empty(t, full)
		assert.Empty(t, top)
	})
}

func TestResolveAOI_Geometry(t *testing.T) {
	u1 := unit("1", "Neuse", 1)
	u1.Geometry = square(t, -79, 35, 0.2)
	u2 := unit("2", "Neuse", 2)
	u2.Geometry = square(t, -76, 35, 0.2)
	units := []*domain.SpatialUnit{u1, u2}

	t.Run("drawn polygon", func(t *testing.T) {
		sel := selection(domain.AOIModeGeometry)
		sel.Geometry = json.RawMessage(squareJSON(-79.1, 34.9, 0.15))

		got, err := ResolveAOI(sel, units, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("drawn points", func(t *testing.T) {
		sel := selection(domain.AOIModeGeometry)
		sel.Geometry = json.RawMessage(`{"type":"MultiPoint","coordinates":[[-75.9,35.1]]}`)

		got, err := ResolveAOI(sel, units, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, ids(got))
	})

	t.Run("nothing drawn", func(t *testing.T) {
		got, err := ResolveAOI(selection(domain.AOIModeGeometry), units, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid geometry", func(t *testing.T) {
		sel := selection(domain.AOIModeGeometry)
		sel.Geometry = json.RawMessage(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`)

		_, err := ResolveAOI(sel, units, nil)
		assert.ErrorIs(t, err, errors.ErrInvalidGeometry)
	})
}
