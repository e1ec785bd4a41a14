package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/pkg/metrics"
	"github.com/huc-prioritizer/internal/prioritizer"
	"github.com/huc-prioritizer/internal/repository/dataset"
	"github.com/huc-prioritizer/internal/usecase/dto"
)

// ScenarioConfig - параметры прогона сценария
type ScenarioConfig struct {
	Jurisdiction string
	Bounds       domain.WeightBounds
	Ceilings     domain.Ceilings
	DefaultLimit int
	SessionTTL   time.Duration
	ResultTTL    time.Duration
}

// ScenarioUseCase загружает данные и прогоняет движок приоритизации
type ScenarioUseCase struct {
	indicatorRepo repository.IndicatorRepository
	boundaryRepo  repository.BoundaryRepository
	sessionRepo   repository.SessionRepository
	cacheRepo     repository.CacheRepository
	engine        *prioritizer.Engine
	metrics       *metrics.Collector
	logger        *zap.Logger
	cfg           ScenarioConfig
}

// NewScenarioUseCase создает новый экземпляр ScenarioUseCase
func NewScenarioUseCase(
	indicatorRepo repository.IndicatorRepository,
	boundaryRepo repository.BoundaryRepository,
	sessionRepo repository.SessionRepository,
	cacheRepo repository.CacheRepository,
	engine *prioritizer.Engine,
	collector *metrics.Collector,
	logger *zap.Logger,
	cfg ScenarioConfig,
) *ScenarioUseCase {
	return &ScenarioUseCase{
		indicatorRepo: indicatorRepo,
		boundaryRepo:  boundaryRepo,
		sessionRepo:   sessionRepo,
		cacheRepo:     cacheRepo,
		engine:        engine,
		metrics:       collector,
		logger:        logger,
		cfg:           cfg,
	}
}

// Evaluate выполняет сценарий без сессии
func (uc *ScenarioUseCase) Evaluate(ctx context.Context, in domain.ScenarioInput) (*domain.ScenarioResult, error) {
	start := time.Now()
	result, err := uc.evaluate(ctx, in)

	status, units := "ok", 0
	if err != nil {
		status = "error"
	} else {
		units = result.UnitCount
	}
	uc.metrics.RecordScenario(string(in.AOI.Mode), status, units, time.Since(start))

	if err != nil {
		uc.logger.Warn("Scenario evaluation failed",
			zap.String("mode", string(in.AOI.Mode)),
			zap.String("policy", string(in.Policy)),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Scenario evaluated",
		zap.String("result_id", result.ID.String()),
		zap.String("mode", string(result.Mode)),
		zap.String("variant", string(result.Variant)),
		zap.Int("units", result.UnitCount),
		zap.Int("top", len(result.Top)),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}

func (uc *ScenarioUseCase) evaluate(ctx context.Context, in domain.ScenarioInput) (*domain.ScenarioResult, error) {
	// 1. Конфигурация проверяется до загрузки данных
	variant, err := prioritizer.ResolveVariant(in.Policy)
	if err != nil {
		return nil, err
	}
	if !in.AOI.Mode.Valid() {
		return nil, errors.ErrInvalidAOIMode.WithDetails(map[string]interface{}{
			"mode": string(in.AOI.Mode),
		})
	}

	// 2. Таблица индикаторов выбранного варианта
	units, err := uc.indicatorRepo.GetUnits(ctx, variant)
	if err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}

	// 3. Границы нужны только для выбора по регионам
	var boundaries []*domain.AdminBoundary
	if in.AOI.Mode == domain.AOIModeRegion {
		names := dataset.DedupeNames(in.AOI.Regions.Chosen())
		if len(names) > 0 {
			boundaries, err = uc.boundaryRepo.GetByNames(ctx, uc.cfg.Jurisdiction, names)
			if err != nil {
				return nil, fmt.Errorf("load boundaries: %w", err)
			}
		}
	}

	return uc.engine.Evaluate(in, units, boundaries)
}

// BuildInput собирает вход сценария из разового запроса
func (uc *ScenarioUseCase) BuildInput(req dto.EvaluateRequest) (domain.ScenarioInput, error) {
	policy, err := domain.ParsePolicy(req.Policy)
	if err != nil {
		return domain.ScenarioInput{}, err
	}
	mode, err := domain.ParseAOIMode(req.Mode)
	if err != nil {
		return domain.ScenarioInput{}, err
	}

	sel := domain.NewAOISelection(mode, uc.cfg.Ceilings)
	switch mode {
	case domain.AOIModeRegion:
		if sel.Regions, err = fillPicker(sel.Regions, req.Regions); err != nil {
			return domain.ScenarioInput{}, err
		}
	case domain.AOIModeBasin:
		if sel.Basins, err = fillPicker(sel.Basins, req.Basins); err != nil {
			return domain.ScenarioInput{}, err
		}
	case domain.AOIModeGeometry:
		sel.Geometry = req.Geometry
	}

	weights, err := uc.parseWeights(req.Weights)
	if err != nil {
		return domain.ScenarioInput{}, err
	}

	return domain.ScenarioInput{
		Policy:  policy,
		AOI:     sel,
		Weights: weights,
		Limit:   prioritizer.ParseLimitDefault(string(req.Limit), uc.cfg.DefaultLimit),
	}, nil
}

// EvaluateRequest - BuildInput и Evaluate одним вызовом
func (uc *ScenarioUseCase) EvaluateRequest(ctx context.Context, req dto.EvaluateRequest) (*domain.ScenarioResult, error) {
	in, err := uc.BuildInput(req)
	if err != nil {
		return nil, err
	}
	return uc.Evaluate(ctx, in)
}

// RunForSession прогоняет сценарий по выбору сессии.
// Пока результат не сброшен через Reset, повторный прогон запрещён.
func (uc *ScenarioUseCase) RunForSession(
	ctx context.Context,
	id uuid.UUID,
	rawWeights map[string]float64,
	limitText string,
) (*domain.ScenarioResult, error) {
	session, err := loadSession(ctx, uc.sessionRepo, id)
	if err != nil {
		return nil, err
	}
	weights, err := uc.parseWeights(rawWeights)
	if err != nil {
		return nil, err
	}

	acquired, err := uc.sessionRepo.AcquireRun(ctx, id, uc.cfg.SessionTTL)
	if err != nil {
		uc.logger.Error("Failed to acquire scenario lock", zap.String("session_id", id.String()), zap.Error(err))
		return nil, errors.ErrCacheError
	}
	if !acquired {
		return nil, errors.ErrScenarioInProgress.WithDetails(map[string]interface{}{
			"session_id": id.String(),
		})
	}

	in := domain.ScenarioInput{
		Policy:  session.Policy,
		AOI:     session.AOI,
		Weights: weights,
		Limit:   prioritizer.ParseLimitDefault(limitText, uc.cfg.DefaultLimit),
	}

	result, err := uc.Evaluate(ctx, in)
	if err != nil {
		// сессия остаётся как была, прогон можно повторить
		uc.release(ctx, id)
		return nil, err
	}

	if err := uc.cacheRepo.SetScenarioResult(ctx, id, result, uc.cfg.ResultTTL); err != nil {
		uc.logger.Error("Failed to store scenario result", zap.String("session_id", id.String()), zap.Error(err))
		uc.release(ctx, id)
		return nil, errors.ErrCacheError
	}

	// нарисованная область одноразовая
	if _, err := uc.sessionRepo.Update(ctx, id, uc.cfg.SessionTTL, func(s *domain.Session) error {
		if s.AOI.Mode == domain.AOIModeGeometry {
			s.AOI.Geometry = nil
		}
		s.Touch()
		return nil
	}); err != nil {
		uc.logger.Warn("Failed to save session after run", zap.String("session_id", id.String()), zap.Error(err))
	}

	return result, nil
}

// GetResult возвращает последний результат сессии
func (uc *ScenarioUseCase) GetResult(ctx context.Context, id uuid.UUID) (*domain.ScenarioResult, error) {
	if _, err := loadSession(ctx, uc.sessionRepo, id); err != nil {
		return nil, err
	}

	result, err := uc.cacheRepo.GetScenarioResult(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get scenario result", zap.String("session_id", id.String()), zap.Error(err))
		return nil, errors.ErrCacheError
	}
	if result == nil {
		return nil, errors.ErrScenarioNotFound.WithDetails(map[string]interface{}{
			"session_id": id.String(),
		})
	}
	return result, nil
}

// parseWeights: nil означает веса по умолчанию
func (uc *ScenarioUseCase) parseWeights(raw map[string]float64) (domain.Weights, error) {
	if raw == nil {
		return nil, nil
	}
	return domain.ParseWeights(raw, uc.cfg.Bounds)
}

func (uc *ScenarioUseCase) release(ctx context.Context, id uuid.UUID) {
	if err := uc.sessionRepo.ReleaseRun(ctx, id); err != nil {
		uc.logger.Warn("Failed to release scenario lock", zap.String("session_id", id.String()), zap.Error(err))
	}
}

// fillPicker заполняет список так, как если бы имена выбирались по одному
func fillPicker(l domain.PickerList, names []string) (domain.PickerList, error) {
	if len(names) > l.Ceiling {
		return l, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"picks":   len(names),
			"ceiling": l.Ceiling,
		})
	}
	var err error
	for _, name := range names {
		if l, err = l.OnPick(l.Len()-1, name); err != nil {
			return l, err
		}
	}
	return l, nil
}
