package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tiendapro/backend/internal/domain/procurement"
)

// OverdueSchedulerConfig holds configuration for the overdue sweep
type OverdueSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval is how often the sweep runs
	Interval time.Duration

	// SweepTimeout is the maximum time for a single sweep
	SweepTimeout time.Duration
}

// DefaultOverdueSchedulerConfig returns default configuration
func DefaultOverdueSchedulerConfig() OverdueSchedulerConfig {
	return OverdueSchedulerConfig{
		Enabled:      true,
		Interval:     time.Hour,
		SweepTimeout: 5 * time.Minute,
	}
}

// OverdueScheduler periodically flips purchases past their due date to
// overdue. Readers already re-derive status as of now, so the sweep only
// keeps the stored column from drifting between mutations.
type OverdueScheduler struct {
	purchases procurement.PurchaseRepository
	logger    *zap.Logger
	config    OverdueSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueScheduler creates a new overdue scheduler
func NewOverdueScheduler(
	purchases procurement.PurchaseRepository,
	logger *zap.Logger,
	config OverdueSchedulerConfig,
) *OverdueScheduler {
	return &OverdueScheduler{
		purchases: purchases,
		logger:    logger,
		config:    config,
	}
}

// Start starts the sweep loop
func (s *OverdueScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Overdue scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Overdue scheduler started",
		zap.Duration("interval", s.config.Interval),
	)
	return nil
}

// Stop gracefully stops the scheduler
func (s *OverdueScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Overdue scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *OverdueScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// one sweep right away so a restart does not wait a full interval
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Overdue sweep loop stopping")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *OverdueScheduler) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.SweepTimeout)
	defer cancel()

	started := time.Now()
	updated, err := s.purchases.MarkOverdue(sweepCtx, started)
	if err != nil {
		s.logger.Error("Overdue sweep failed",
			zap.Duration("duration", time.Since(started)),
			zap.Error(err),
		)
		return
	}

	if updated > 0 {
		s.logger.Info("Overdue sweep completed",
			zap.Int64("purchases_marked", updated),
			zap.Duration("duration", time.Since(started)),
		)
	}
}
