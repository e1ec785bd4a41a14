package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/usecase/dto"
)

// SessionUseCase управляет состоянием выбора пользователя
type SessionUseCase struct {
	sessionRepo repository.SessionRepository
	cacheRepo   repository.CacheRepository
	reference   *ReferenceUseCase
	logger      *zap.Logger
	ceilings    domain.Ceilings
	sessionTTL  time.Duration
}

// NewSessionUseCase создает новый экземпляр SessionUseCase
func NewSessionUseCase(
	sessionRepo repository.SessionRepository,
	cacheRepo repository.CacheRepository,
	reference *ReferenceUseCase,
	logger *zap.Logger,
	ceilings domain.Ceilings,
	sessionTTL time.Duration,
) *SessionUseCase {
	return &SessionUseCase{
		sessionRepo: sessionRepo,
		cacheRepo:   cacheRepo,
		reference:   reference,
		logger:      logger,
		ceilings:    ceilings,
		sessionTTL:  sessionTTL,
	}
}

// Create открывает новую сессию без режима AOI
func (uc *SessionUseCase) Create(ctx context.Context) (*dto.SessionResponse, error) {
	session := domain.NewSession(uc.ceilings)
	if err := uc.save(ctx, session); err != nil {
		return nil, err
	}

	uc.logger.Info("Session created", zap.String("session_id", session.ID.String()))
	return &dto.SessionResponse{Session: session, HeaderCount: domain.HeaderCount}, nil
}

// Get возвращает сессию и признак активного сценария
func (uc *SessionUseCase) Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := loadSession(ctx, uc.sessionRepo, id)
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, session)
}

// Delete удаляет сессию и её результат
func (uc *SessionUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := loadSession(ctx, uc.sessionRepo, id); err != nil {
		return err
	}
	if err := uc.sessionRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete session", zap.String("session_id", id.String()), zap.Error(err))
		return errors.ErrCacheError
	}
	if err := uc.cacheRepo.DeleteScenarioResult(ctx, id); err != nil {
		uc.logger.Warn("Failed to delete scenario result", zap.String("session_id", id.String()), zap.Error(err))
	}
	return nil
}

// SetPolicy меняет политику охраняемых земель
func (uc *SessionUseCase) SetPolicy(ctx context.Context, id uuid.UUID, raw string) (*dto.SessionResponse, error) {
	policy, err := domain.ParsePolicy(raw)
	if err != nil {
		return nil, err
	}
	return uc.update(ctx, id, func(s *domain.Session) error {
		s.Policy = policy
		return nil
	})
}

// SetMode переключает режим AOI; смена режима сбрасывает выбор
func (uc *SessionUseCase) SetMode(ctx context.Context, id uuid.UUID, raw string) (*dto.SessionResponse, error) {
	mode, err := domain.ParseAOIMode(raw)
	if err != nil {
		return nil, err
	}
	return uc.update(ctx, id, func(s *domain.Session) error {
		s.AOI = s.AOI.SwitchMode(mode)
		return nil
	})
}

// Pick записывает имя в слот активного списка.
// Имя должно быть в справочном списке режима.
func (uc *SessionUseCase) Pick(ctx context.Context, id uuid.UUID, slot int, value string) (*dto.SessionResponse, error) {
	return uc.update(ctx, id, func(s *domain.Session) error {
		list, ok := s.AOI.ActiveList()
		if !ok {
			return errors.ErrModeMismatch.WithDetails(map[string]interface{}{
				"mode": string(s.AOI.Mode),
			})
		}

		names, err := uc.reference.NamesFor(ctx, s.AOI.Mode)
		if err != nil {
			return err
		}
		if !containsName(names, value) {
			return errors.ErrUnknownName.WithDetails(map[string]interface{}{
				"mode":  string(s.AOI.Mode),
				"value": value,
			})
		}

		next, err := list.OnPick(slot, value)
		if err != nil {
			return err
		}
		s.AOI = s.AOI.WithActiveList(next)
		return nil
	})
}

// SetGeometry сохраняет нарисованную область; допустимо только в режиме geometry
func (uc *SessionUseCase) SetGeometry(ctx context.Context, id uuid.UUID, raw json.RawMessage) (*dto.SessionResponse, error) {
	if _, err := domain.ParseGeometry(raw); err != nil {
		return nil, err
	}
	return uc.update(ctx, id, func(s *domain.Session) error {
		if s.AOI.Mode != domain.AOIModeGeometry {
			return errors.ErrModeMismatch.WithDetails(map[string]interface{}{
				"mode": string(s.AOI.Mode),
			})
		}
		s.AOI.Geometry = raw
		return nil
	})
}

// Reset очищает выбор и геометрию, удаляет результат и снова разрешает прогон
func (uc *SessionUseCase) Reset(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := uc.mutate(ctx, id, func(s *domain.Session) error {
		s.AOI = s.AOI.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.DeleteScenarioResult(ctx, id); err != nil {
		uc.logger.Warn("Failed to delete scenario result", zap.String("session_id", id.String()), zap.Error(err))
	}
	if err := uc.sessionRepo.ReleaseRun(ctx, id); err != nil {
		uc.logger.Error("Failed to release scenario lock", zap.String("session_id", id.String()), zap.Error(err))
		return nil, errors.ErrCacheError
	}

	uc.logger.Info("Session reset", zap.String("session_id", id.String()))
	return &dto.SessionResponse{Session: session, HeaderCount: domain.HeaderCount}, nil
}

func (uc *SessionUseCase) update(
	ctx context.Context,
	id uuid.UUID,
	mutate func(s *domain.Session) error,
) (*dto.SessionResponse, error) {
	session, err := uc.mutate(ctx, id, mutate)
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, session)
}

// mutate меняет сессию атомарно: параллельные запросы к одной сессии не теряют выбор
func (uc *SessionUseCase) mutate(
	ctx context.Context,
	id uuid.UUID,
	fn func(s *domain.Session) error,
) (*domain.Session, error) {
	var rejected error
	session, err := uc.sessionRepo.Update(ctx, id, uc.sessionTTL, func(s *domain.Session) error {
		if err := fn(s); err != nil {
			rejected = err
			return err
		}
		s.Touch()
		return nil
	})
	if rejected != nil {
		return nil, rejected
	}
	if err != nil {
		uc.logger.Error("Failed to update session",
			zap.String("session_id", id.String()),
			zap.Error(err))
		return nil, errors.ErrCacheError
	}
	if session == nil {
		return nil, errors.ErrSessionNotFound.WithDetails(map[string]interface{}{
			"session_id": id.String(),
		})
	}
	return session, nil
}

func (uc *SessionUseCase) respond(ctx context.Context, session *domain.Session) (*dto.SessionResponse, error) {
	active, err := uc.sessionRepo.IsRunActive(ctx, session.ID)
	if err != nil {
		uc.logger.Warn("Failed to check scenario lock",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
	}
	return &dto.SessionResponse{
		Session:        session,
		ScenarioActive: active,
		HeaderCount:    domain.HeaderCount,
	}, nil
}

func (uc *SessionUseCase) save(ctx context.Context, session *domain.Session) error {
	if err := uc.sessionRepo.Save(ctx, session, uc.sessionTTL); err != nil {
		uc.logger.Error("Failed to save session",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

// loadSession возвращает ErrSessionNotFound, если сессии нет
func loadSession(ctx context.Context, repo repository.SessionRepository, id uuid.UUID) (*domain.Session, error) {
	session, err := repo.Get(ctx, id)
	if err != nil {
		return nil, errors.ErrCacheError.WithDetails(map[string]interface{}{
			"session_id": id.String(),
		})
	}
	if session == nil {
		return nil, errors.ErrSessionNotFound.WithDetails(map[string]interface{}{
			"session_id": id.String(),
		})
	}
	return session, nil
}

func containsName(names []string, value string) bool {
	for _, n := range names {
		if n == value {
			return true
		}
	}
	return false
}
