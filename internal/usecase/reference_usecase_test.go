package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	apperrors "github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/pkg/metrics"
	"github.com/huc-prioritizer/internal/usecase"
)

func newReferenceUseCase(indicators *MockIndicatorRepository, boundaries *MockBoundaryRepository, cache *MockCacheRepository) *usecase.ReferenceUseCase {
	collector := metrics.NewCollector("test", prometheus.NewRegistry())
	return usecase.NewReferenceUseCase(indicators, boundaries, cache, collector, zap.NewNop(), "37", time.Hour)
}

func TestReferenceUseCase_RegionNames(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		boundaries := &MockBoundaryRepository{}
		cache := &MockCacheRepository{}
		uc := newReferenceUseCase(&MockIndicatorRepository{}, boundaries, cache)

		cache.On("GetNames", ctx, "regions:37").Return([]string{"Wake", "Durham"}, nil)

		names, err := uc.RegionNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Wake", "Durham"}, names)
		boundaries.AssertNotCalled(t, "ListNames", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		boundaries := &MockBoundaryRepository{}
		cache := &MockCacheRepository{}
		uc := newReferenceUseCase(&MockIndicatorRepository{}, boundaries, cache)

		cache.On("GetNames", ctx, "regions:37").Return(nil, nil)
		boundaries.On("ListNames", ctx, "37").Return([]string{"Durham", "Wake"}, nil)
		cache.On("SetNames", ctx, "regions:37", []string{"Durham", "Wake"}, time.Hour).Return(nil)

		names, err := uc.RegionNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Durham", "Wake"}, names)
		cache.AssertExpectations(t)
	})

	t.Run("cache failure falls back to the database", func(t *testing.T) {
		boundaries := &MockBoundaryRepository{}
		cache := &MockCacheRepository{}
		uc := newReferenceUseCase(&MockIndicatorRepository{}, boundaries, cache)

		cache.On("GetNames", ctx, "regions:37").Return(nil, errors.New("connection refused"))
		boundaries.On("ListNames", ctx, "37").Return([]string{"Wake"}, nil)
		cache.On("SetNames", ctx, "regions:37", []string{"Wake"}, time.Hour).Return(errors.New("connection refused"))

		names, err := uc.RegionNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Wake"}, names)
	})

	t.Run("database failure is returned", func(t *testing.T) {
		boundaries := &MockBoundaryRepository{}
		cache := &MockCacheRepository{}
		uc := newReferenceUseCase(&MockIndicatorRepository{}, boundaries, cache)

		cache.On("GetNames", ctx, "regions:37").Return(nil, nil)
		boundaries.On("ListNames", ctx, "37").Return(nil, apperrors.ErrDatabaseError)

		_, err := uc.RegionNames(ctx)
		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)
	})
}

func TestReferenceUseCase_NamesFor(t *testing.T) {
	ctx := context.Background()
	indicators := &MockIndicatorRepository{}
	cache := &MockCacheRepository{}
	uc := newReferenceUseCase(indicators, &MockBoundaryRepository{}, cache)

	cache.On("GetNames", ctx, "basins").Return(nil, nil)
	indicators.On("ListBasinNames", ctx).Return([]string{"Neuse", "Tar-Pamlico"}, nil)
	cache.On("SetNames", ctx, "basins", mock.Anything, time.Hour).Return(nil)

	names, err := uc.NamesFor(ctx, domain.AOIModeBasin)
	require.NoError(t, err)
	assert.Equal(t, []string{"Neuse", "Tar-Pamlico"}, names)

	for _, mode := range []domain.AOIMode{domain.AOIModeGeometry, domain.AOIModeEntireDomain, domain.AOIModeUnset} {
		_, err := uc.NamesFor(ctx, mode)
		assert.ErrorIs(t, err, apperrors.ErrModeMismatch, string(mode))
	}
}
