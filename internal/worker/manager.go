package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout - сколько Stop ждёт завершения воркеров
const DefaultShutdownTimeout = 30 * time.Second

// WorkerManager запускает воркеры и останавливает их с таймаутом
type WorkerManager struct {
	workers         []Worker
	logger          *zap.Logger
	shutdownTimeout time.Duration

	wg   sync.WaitGroup
	mu   sync.Mutex
	done chan struct{}
}

// NewWorkerManager создает новый WorkerManager; timeout <= 0 заменяется на DefaultShutdownTimeout
func NewWorkerManager(logger *zap.Logger, shutdownTimeout time.Duration) *WorkerManager {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &WorkerManager{
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
		done:            make(chan struct{}),
	}
}

func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

func (m *WorkerManager) snapshot() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Worker, len(m.workers))
	copy(out, m.workers)
	return out
}

// Start запускает каждый воркер в своей горутине и сразу возвращается
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.snapshot()
	if len(workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Worker failed",
					zap.String("name", w.Name()),
					zap.Error(err))
			}
			m.logger.Info("Worker exited", zap.String("name", w.Name()))
		}(w)
	}

	go func() {
		m.wg.Wait()
		close(m.done)
	}()

	return nil
}

// Done закрывается, когда все воркеры вышли из Start
func (m *WorkerManager) Done() <-chan struct{} {
	return m.done
}

// Stop сигнализирует всем воркерам и ждёт их не дольше shutdownTimeout
func (m *WorkerManager) Stop() error {
	workers := m.snapshot()
	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", w.Name()),
				zap.Error(err))
		}
	}

	wait := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(wait)
	}()

	select {
	case <-wait:
		m.logger.Info("All workers stopped gracefully")
		return nil
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn("Workers shutdown timed out, pending messages stay in the group",
			zap.Duration("timeout", m.shutdownTimeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.shutdownTimeout)
	}
}
