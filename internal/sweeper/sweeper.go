// Package sweeper периодически удаляет просроченные ссылки.
package sweeper

import (
	"LinkGate-Backend/internal/domain"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrAlreadyStarted = errors.New("sweeper already started")
	ErrNotStarted     = errors.New("sweeper not started")
)

// Reclaimer - часть хранилища, нужная сборщику
type Reclaimer interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Config настройки сборщика
type Config struct {
	Interval   time.Duration // Период между запусками
	Timeout    time.Duration // Ограничение на один запуск
	RunOnStart bool          // Выполнить очистку сразу после Start
}

// DefaultConfig returns the hourly schedule
func DefaultConfig() Config {
	return Config{
		Interval:   time.Hour,
		Timeout:    5 * time.Minute,
		RunOnStart: true,
	}
}

// Stats снимок состояния сборщика
type Stats struct {
	Started      bool      `json:"started"`
	Runs         int64     `json:"runs"`
	Skipped      int64     `json:"skipped"`
	Failures     int64     `json:"failures"`
	TotalRemoved int64     `json:"total_removed"`
	LastRemoved  int64     `json:"last_removed"`
	LastRunAt    time.Time `json:"last_run_at,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
}

// Sweeper runs DeleteExpired on a fixed interval. A failed run is logged and retried
// on the next tick; it never propagates to request handling.
type Sweeper struct {
	config  Config
	store   Reclaimer
	locker  Locker
	clock   domain.Clock
	log     *zap.Logger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	started bool
	mu      sync.Mutex

	statsMu sync.RWMutex
	stats   Stats
}

// New creates a sweeper. A nil locker means every tick sweeps.
func New(store Reclaimer, locker Locker, clock domain.Clock, log *zap.Logger, config Config) *Sweeper {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if locker == nil {
		locker = NoopLocker{}
	}

	return &Sweeper{
		config: config,
		store:  store,
		locker: locker,
		clock:  clock,
		log:    log.With(zap.String("component", "sweeper")),
	}
}

// Start launches the background loop
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.started = true
	s.setStarted(true)

	s.log.Info("starting sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("timeout", s.config.Timeout),
		zap.Bool("run_on_start", s.config.RunOnStart))

	s.wg.Add(1)
	go s.loop(ctx)

	return nil
}

// Stop cancels the loop and waits for it to exit, bounded by ctx.
// An interrupted sweep is safe: deletion by predicate is idempotent.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}

	s.log.Info("stopping sweeper")
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("sweeper stopped")
	case <-ctx.Done():
		s.log.Warn("sweeper shutdown timeout reached")
		return fmt.Errorf("sweeper shutdown: %w", ctx.Err())
	}

	s.started = false
	s.setStarted(false)
	return nil
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.tick(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// tick runs one sweep and swallows its failure; the next tick is the retry
func (s *Sweeper) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("sweep panicked", zap.Any("panic", r))
			s.recordFailure(fmt.Errorf("panic: %v", r))
		}
	}()

	if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error("sweep failed, will retry on next tick", zap.Error(err))
	}
}

// RunOnce performs a single sweep and returns the number of removed links
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	acquired, err := s.locker.Acquire(ctx)
	if err != nil {
		s.recordFailure(err)
		return 0, fmt.Errorf("failed to acquire sweep lease: %w", err)
	}
	if !acquired {
		s.log.Debug("another instance holds the sweep lease, skipping")
		s.recordSkip()
		return 0, nil
	}
	defer func() {
		// освобождаем lease отдельным контекстом: ctx уже может быть отменен
		releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer releaseCancel()
		if err := s.locker.Release(releaseCtx); err != nil {
			s.log.Warn("failed to release sweep lease", zap.Error(err))
		}
	}()

	now := s.clock.Now()
	removed, err := s.store.DeleteExpired(ctx, now)
	if err != nil {
		s.recordFailure(err)
		return 0, fmt.Errorf("failed to delete expired links: %w", err)
	}

	s.recordSuccess(now, removed)
	s.log.Info("sweep completed", zap.Int64("removed", removed), zap.Time("now", now))
	return removed, nil
}

// Stats returns a snapshot of sweeper counters
func (s *Sweeper) Stats() Stats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.stats
}

func (s *Sweeper) setStarted(v bool) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats.Started = v
}

func (s *Sweeper) recordSuccess(at time.Time, removed int64) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats.Runs++
	s.stats.LastRunAt = at
	s.stats.LastRemoved = removed
	s.stats.TotalRemoved += removed
	s.stats.LastError = ""
}

// recordFailure не считает отмену при остановке сбоем
func (s *Sweeper) recordFailure(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats.Failures++
	s.stats.LastError = err.Error()
}

func (s *Sweeper) recordSkip() {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats.Skipped++
}
