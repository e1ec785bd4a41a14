package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/repository/dataset"
)

var testTables = dataset.Tables{
	Excluded: "huc12_scores_protected_excluded",
	Included: "huc12_scores_protected_included",
}

const testBoundaryTable = "admin_boundaries"

func setupDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "huc12.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background(), testTables, testBoundaryTable))
	return db
}

func geometry(t *testing.T, s string) *domain.Geometry {
	t.Helper()
	g, err := domain.ParseGeometry([]byte(s))
	require.NoError(t, err)
	return g
}

func testUnit(t *testing.T, id, basin string, carbon float64) *domain.SpatialUnit {
	ind := map[domain.CriterionKey]float64{}
	for _, c := range domain.Criteria() {
		ind[c.Key] = 0.5
	}
	ind[domain.CriterionCarbon] = carbon
	return &domain.SpatialUnit{
		ID:         id,
		Name:       "Unit " + id,
		Basin:      basin,
		Acres:      1000,
		Indicators: ind,
		Attributes: map[string]float64{"CARB": carbon * 100},
		Geometry:   geometry(t, `{"type":"Polygon","coordinates":[[[-79,35],[-78,35],[-78,36],[-79,36],[-79,35]]]}`),
	}
}

func TestIndicatorRepository_FindUnitAt(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	west := testUnit(t, "030202010101", "Neuse", 0.9)
	east := testUnit(t, "030202010102", "Neuse", 0.2)
	east.Geometry = geometry(t, `{"type":"Polygon","coordinates":[[[-77,35],[-76,35],[-76,36],[-77,36],[-77,35]]]}`)
	require.NoError(t, db.InsertUnits(ctx, testTables.Excluded, []*domain.SpatialUnit{west, east}))

	repo, err := NewIndicatorRepository(db, testTables)
	require.NoError(t, err)

	got, err := repo.FindUnitAt(ctx, domain.VariantProtectedExcluded, domain.Point{Lat: 35.5, Lon: -76.5})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "030202010102", got.ID)

	got, err = repo.FindUnitAt(ctx, domain.VariantProtectedExcluded, domain.Point{Lat: 35.5, Lon: -77.5})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindUnitAt(ctx, domain.VariantProtectedIncluded, domain.Point{Lat: 35.5, Lon: -78.5})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupDB(t)

	assert.NoError(t, db.Migrate(context.Background(), testTables, testBoundaryTable))
}

func TestIndicatorRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	units := []*domain.SpatialUnit{
		testUnit(t, "030202010102", "Neuse", 0.2),
		testUnit(t, "030202010101", "Neuse", 0.9),
		testUnit(t, "030300020304", "Cape Fear", 0.4),
	}
	require.NoError(t, db.InsertUnits(ctx, testTables.Excluded, units))
	require.NoError(t, db.InsertUnits(ctx, testTables.Included, units[:1]))

	repo, err := NewIndicatorRepository(db, testTables)
	require.NoError(t, err)

	got, err := repo.GetUnits(ctx, domain.VariantProtectedExcluded)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// порядок таблицы - по коду HUC12
	assert.Equal(t, "030202010101", got[0].ID)
	assert.Equal(t, 0.9, got[0].Indicators[domain.CriterionCarbon])
	assert.Equal(t, 90.0, got[0].Attributes["CARB"])
	_, hasFlow := got[0].Attributes["FLOW"]
	assert.False(t, hasFlow)
	assert.True(t, got[0].Geometry.ContainsLatLng(35.5, -78.5))

	included, err := repo.GetUnits(ctx, domain.VariantProtectedIncluded)
	require.NoError(t, err)
	assert.Len(t, included, 1)

	basins, err := repo.ListBasinNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cape Fear", "Neuse"}, basins)
}

func TestIndicatorRepository_MissingIndicatorStaysAbsent(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	u := testUnit(t, "030202010101", "Neuse", 0.9)
	delete(u.Indicators, domain.CriterionResilience)
	require.NoError(t, db.InsertUnits(ctx, testTables.Excluded, []*domain.SpatialUnit{u}))

	repo, err := NewIndicatorRepository(db, testTables)
	require.NoError(t, err)

	got, err := repo.GetUnits(ctx, domain.VariantProtectedExcluded)
	require.NoError(t, err)
	_, ok := got[0].Indicator(domain.CriterionResilience)
	assert.False(t, ok)
}

func TestIndicatorRepository_CorruptGeometry(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	_, err := db.ExecContext(ctx,
		"INSERT INTO "+testTables.Excluded+" (huc12, name, dwq_basin, geometry) VALUES ('1', 'x', 'Neuse', 'not json')")
	require.NoError(t, err)

	repo, err := NewIndicatorRepository(db, testTables)
	require.NoError(t, err)

	_, err = repo.GetUnits(ctx, domain.VariantProtectedExcluded)
	assert.ErrorIs(t, err, errors.ErrDataIntegrity)
}

func TestBoundaryRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	square := `{"type":"Polygon","coordinates":[[[-79,35],[-78,35],[-78,36],[-79,36],[-79,35]]]}`
	require.NoError(t, db.InsertBoundaries(ctx, testBoundaryTable, []*domain.AdminBoundary{
		{Name: "Wake", StateFP: "37", Geometry: geometry(t, square)},
		{Name: "Durham", StateFP: "37", Geometry: geometry(t, square)},
		{Name: "Halifax", StateFP: "51", Geometry: geometry(t, square)},
	}))

	repo, err := NewBoundaryRepository(db, testBoundaryTable)
	require.NoError(t, err)

	names, err := repo.ListNames(ctx, "37")
	require.NoError(t, err)
	assert.Equal(t, []string{"Durham", "Wake"}, names)

	bs, err := repo.GetByNames(ctx, "37", []string{"Wake", "Halifax", "Wake"})
	require.NoError(t, err)
	require.Len(t, bs, 1)
	assert.Equal(t, "Wake", bs[0].Name)
	assert.False(t, bs[0].Geometry.IsEmpty())

	bs, err = repo.GetByNames(ctx, "37", []string{})
	require.NoError(t, err)
	assert.Empty(t, bs)
}
