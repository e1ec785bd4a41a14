package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/usecase/dto"
	"github.com/huc-prioritizer/internal/worker"
)

const (
	errorBackoff    = time.Second
	publishInterval = 200 * time.Millisecond
)

// Evaluator - разовый расчёт сценария
type Evaluator interface {
	EvaluateRequest(ctx context.Context, req dto.EvaluateRequest) (*domain.ScenarioResult, error)
}

// Config - параметры чтения стрима
type Config struct {
	ConsumerGroup string
	BatchSize     int
	ReadTimeout   time.Duration
	MaxRetries    int
}

// ScenarioWorker считает сценарии из stream:scenario:run
type ScenarioWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	evaluator  Evaluator
	cfg        Config
}

// NewScenarioWorker создает новый ScenarioWorker
func NewScenarioWorker(
	streamRepo repository.StreamRepository,
	evaluator Evaluator,
	cfg Config,
	logger *zap.Logger,
) *ScenarioWorker {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}

	return &ScenarioWorker{
		BaseWorker: worker.NewBaseWorker("scenario-evaluation", cfg.ConsumerGroup, logger),
		streamRepo: streamRepo,
		evaluator:  evaluator,
		cfg:        cfg,
	}
}

// Start запускает воркер
func (w *ScenarioWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ScenarioWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.cfg.BatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamScenarioRun, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			if _, err := w.ProcessBatch(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error("Failed to process batch", zap.Error(err))
				w.Pause(ctx, errorBackoff)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает одну пачку сообщений.
// Возвращает количество прочитанных сообщений.
func (w *ScenarioWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	// 1. Блокирующее чтение до ReadTimeout
	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamScenarioRun,
		w.ConsumerGroup(),
		w.ConsumerName(),
		w.cfg.BatchSize,
		w.cfg.ReadTimeout,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	// 2. Каждое сообщение - независимый сценарий
	acked := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			// битое сообщение подтверждаем, чтобы не застревало
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			acked = append(acked, msg.ID)
			continue
		}

		done := w.evaluate(ctx, event)
		if err := w.publish(ctx, done); err != nil {
			// без подтверждения сообщение останется в pending
			logger.Error("Failed to publish done event",
				zap.String("request_id", event.RequestID.String()),
				zap.Error(err))
			continue
		}
		acked = append(acked, msg.ID)
	}

	// 3. ACK
	if err := w.streamRepo.AckMessages(ctx, domain.StreamScenarioRun, w.ConsumerGroup(), acked...); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

func (w *ScenarioWorker) evaluate(ctx context.Context, event *domain.ScenarioRunEvent) *domain.ScenarioDoneEvent {
	req := dto.EvaluateRequest{
		Policy:   event.Policy,
		Mode:     event.Mode,
		Regions:  event.Regions,
		Basins:   event.Basins,
		Geometry: event.Geometry,
		Limit:    dto.LimitText(event.Limit),
	}
	if event.HasWeights() {
		req.Weights = event.Weights
	}

	result, err := w.evaluator.EvaluateRequest(ctx, req)
	if err != nil {
		return &domain.ScenarioDoneEvent{RequestID: event.RequestID, Error: err.Error()}
	}
	return &domain.ScenarioDoneEvent{RequestID: event.RequestID, Result: result}
}

func (w *ScenarioWorker) publish(ctx context.Context, done *domain.ScenarioDoneEvent) error {
	var err error
	for attempt := 1; attempt <= w.cfg.MaxRetries; attempt++ {
		if err = w.streamRepo.PublishToStream(ctx, domain.StreamScenarioDone, done); err == nil {
			return nil
		}
		w.Logger().Warn("Publish attempt failed",
			zap.String("request_id", done.RequestID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < w.cfg.MaxRetries {
			w.Pause(ctx, publishInterval)
		}
	}
	return err
}

// parseMessage парсит сообщение из стрима в ScenarioRunEvent
func parseMessage(msg domain.StreamMessage) (*domain.ScenarioRunEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.ScenarioRunEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.RequestID == uuid.Nil {
		return nil, fmt.Errorf("missing request_id")
	}
	return &event, nil
}
