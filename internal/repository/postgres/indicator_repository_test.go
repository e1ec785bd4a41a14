package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/repository/dataset"
	"github.com/huc-prioritizer/internal/repository/postgres"
	"github.com/huc-prioritizer/internal/repository/postgres/testhelpers"
)

var testTables = dataset.Tables{
	Excluded: "huc12_scores_protected_excluded",
	Included: "huc12_scores_protected_included",
}

const testBoundaryTable = "admin_boundaries"

// DatasetRepositoryTestSuite tests the PostGIS indicator and boundary repositories
type DatasetRepositoryTestSuite struct {
	suite.Suite
	pg         *testhelpers.PostGIS
	indicators repository.IndicatorRepository
	boundaries repository.BoundaryRepository
	ctx        context.Context
}

// SetupSuite runs once before all tests in the suite
func (s *DatasetRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()
	s.pg = testhelpers.Connect(s.T())

	s.Require().NoError(s.pg.Migrate(ctx, "../../../migrations"), "Failed to apply migrations")
	s.Require().NoError(s.pg.Truncate(ctx, testTables, testBoundaryTable), "Failed to cleanup test database")
	s.Require().NoError(s.pg.Seed(ctx, "testdata/huc12.sql"), "Failed to load fixtures")

	db := postgres.NewDBForTest(s.pg.DB, s.pg.Logger)

	var err error
	s.indicators, err = postgres.NewIndicatorRepository(db, testTables)
	s.Require().NoError(err)
	s.boundaries, err = postgres.NewBoundaryRepository(db, testBoundaryTable)
	s.Require().NoError(err)
}

// TearDownSuite runs once after all tests in the suite
func (s *DatasetRepositoryTestSuite) TearDownSuite() {
	if s.pg != nil {
		_ = s.pg.Truncate(context.Background(), testTables, testBoundaryTable)
		s.pg.Close()
	}
}

// SetupTest runs before each test
func (s *DatasetRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *DatasetRepositoryTestSuite) TestGetUnits_Excluded() {
	units, err := s.indicators.GetUnits(s.ctx, domain.VariantProtectedExcluded)

	s.NoError(err)
	s.Len(units, 3)
	s.Equal("030202010101", units[0].ID)
	s.Equal("Upper Crabtree Creek", units[0].Name)
	s.Equal("Neuse", units[0].Basin)
	s.InDelta(0.9, units[0].Indicators[domain.CriterionCarbon], 1e-9)
	s.InDelta(85.2, units[0].Attributes["CARB"], 1e-9)
	s.False(units[0].Geometry.IsEmpty())
	s.True(units[0].Geometry.ContainsLatLng(35.9, -78.8))
}

func (s *DatasetRepositoryTestSuite) TestGetUnits_NullIndicatorIsAbsent() {
	units, err := s.indicators.GetUnits(s.ctx, domain.VariantProtectedExcluded)
	s.Require().NoError(err)

	haw := units[2]
	s.Equal("030300020304", haw.ID)
	_, ok := haw.Indicator(domain.CriterionCarbon)
	s.False(ok)
	_, ok = haw.Attributes["CARB"]
	s.False(ok)
}

func (s *DatasetRepositoryTestSuite) TestGetUnits_Included() {
	units, err := s.indicators.GetUnits(s.ctx, domain.VariantProtectedIncluded)

	s.NoError(err)
	s.Len(units, 2)
}

func (s *DatasetRepositoryTestSuite) TestFindUnitAt() {
	unit, err := s.indicators.FindUnitAt(s.ctx, domain.VariantProtectedExcluded, domain.Point{Lat: 35.9, Lon: -78.8})

	s.Require().NoError(err)
	s.Require().NotNil(unit)
	s.Equal("030202010101", unit.ID)
	s.False(unit.Geometry.IsEmpty())
}

func (s *DatasetRepositoryTestSuite) TestFindUnitAt_Outside() {
	unit, err := s.indicators.FindUnitAt(s.ctx, domain.VariantProtectedExcluded, domain.Point{Lat: 0, Lon: 0})

	s.NoError(err)
	s.Nil(unit)
}

func (s *DatasetRepositoryTestSuite) TestListBasinNames() {
	names, err := s.indicators.ListBasinNames(s.ctx)

	s.NoError(err)
	s.Equal([]string{"Cape Fear", "Neuse"}, names)
}

func (s *DatasetRepositoryTestSuite) TestBoundaryListNames_Jurisdiction() {
	names, err := s.boundaries.ListNames(s.ctx, "37")

	s.NoError(err)
	s.Equal([]string{"Dare", "Wake"}, names)
}

func (s *DatasetRepositoryTestSuite) TestBoundaryGetByNames() {
	boundaries, err := s.boundaries.GetByNames(s.ctx, "37", []string{"Wake", "Wake", "Halifax"})

	s.NoError(err)
	s.Require().Len(boundaries, 1)
	s.Equal("Wake", boundaries[0].Name)
	s.False(boundaries[0].Geometry.IsEmpty())
}

func (s *DatasetRepositoryTestSuite) TestBoundaryGetByNames_Empty() {
	boundaries, err := s.boundaries.GetByNames(s.ctx, "37", nil)

	s.NoError(err)
	s.Empty(boundaries)
}

func TestDatasetRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DatasetRepositoryTestSuite))
}
