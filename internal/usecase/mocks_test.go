package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/huc-prioritizer/internal/domain"
)

// MockIndicatorRepository is a mock of IndicatorRepository
type MockIndicatorRepository struct {
	mock.Mock
}

func (m *MockIndicatorRepository) GetUnits(ctx context.Context, variant domain.IndicatorVariant) ([]*domain.SpatialUnit, error) {
	args := m.Called(ctx, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SpatialUnit), args.Error(1)
}

func (m *MockIndicatorRepository) FindUnitAt(ctx context.Context, variant domain.IndicatorVariant, point domain.Point) (*domain.SpatialUnit, error) {
	args := m.Called(ctx, variant, point)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpatialUnit), args.Error(1)
}

func (m *MockIndicatorRepository) ListBasinNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockBoundaryRepository is a mock of BoundaryRepository
type MockBoundaryRepository struct {
	mock.Mock
}

func (m *MockBoundaryRepository) ListNames(ctx context.Context, jurisdiction string) ([]string, error) {
	args := m.Called(ctx, jurisdiction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBoundaryRepository) GetByNames(ctx context.Context, jurisdiction string, names []string) ([]*domain.AdminBoundary, error) {
	args := m.Called(ctx, jurisdiction, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdminBoundary), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetNames(ctx context.Context, list string) ([]string, error) {
	args := m.Called(ctx, list)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCacheRepository) SetNames(ctx context.Context, list string, names []string, ttl time.Duration) error {
	args := m.Called(ctx, list, names, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetScenarioResult(ctx context.Context, sessionID uuid.UUID) (*domain.ScenarioResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScenarioResult), args.Error(1)
}

func (m *MockCacheRepository) SetScenarioResult(ctx context.Context, sessionID uuid.UUID, result *domain.ScenarioResult, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, result, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteScenarioResult(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockSessionRepository is a mock of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

// Update применяет mutate к сессии из Return, как это делает хранилище
func (m *MockSessionRepository) Update(ctx context.Context, id uuid.UUID, ttl time.Duration, mutate func(s *domain.Session) error) (*domain.Session, error) {
	args := m.Called(ctx, id, ttl)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) == nil {
		return nil, nil
	}
	s := args.Get(0).(*domain.Session)
	if err := mutate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) AcquireRun(ctx context.Context, id uuid.UUID, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, id, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) ReleaseRun(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) IsRunActive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// squareJSON - квадрат со стороной size градусов с левым нижним углом (lon, lat)
func squareJSON(lon, lat, size float64) string {
	return fmt.Sprintf(`{"type":"Polygon","coordinates":[[[%[1]v,%[2]v],[%[3]v,%[2]v],[%[3]v,%[4]v],[%[1]v,%[4]v],[%[1]v,%[2]v]]]}`,
		lon, lat, lon+size, lat+size)
}

func square(lon, lat, size float64) *domain.Geometry {
	g, err := domain.ParseGeometry([]byte(squareJSON(lon, lat, size)))
	if err != nil {
		panic(err)
	}
	return g
}

// unit строит единицу с одинаковым значением всех индикаторов, кроме углерода
func unit(id, basin string, carbon float64, geom *domain.Geometry) *domain.SpatialUnit {
	indicators := make(map[domain.CriterionKey]float64)
	for _, c := range domain.Criteria() {
		indicators[c.Key] = 0.5
	}
	indicators[domain.CriterionCarbon] = carbon
	return &domain.SpatialUnit{
		ID:         id,
		Name:       "Unit " + id,
		Basin:      basin,
		Acres:      1000,
		Attributes: map[string]float64{"CARB": carbon * 100},
		Indicators: indicators,
		Geometry:   geom,
	}
}

// grid: три соседние единицы вдоль долготы в двух бассейнах
func grid() []*domain.SpatialUnit {
	return []*domain.SpatialUnit{
		unit("030201010101", "Neuse", 0.2, square(-79, 35, 0.5)),
		unit("030201010102", "Neuse", 0.9, square(-78, 35, 0.5)),
		unit("030201010103", "Tar-Pamlico", 0.5, square(-77, 35, 0.5)),
	}
}
