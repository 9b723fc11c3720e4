// Package scheduler owns the three periodic tasks that drive the broadcast
// engine: trend refresh, aggregate metrics, and ambient activity notices.
//
// The tasks are independent fault domains. Each runs on its own goroutine
// with its own ticker; an error or panic inside one tick is logged and never
// stops that task or the other two.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/trendpulse/trendpulse/internal/classify"
	"github.com/trendpulse/trendpulse/internal/domain"
	"github.com/trendpulse/trendpulse/internal/metrics"
)

const (
	DefaultRefreshInterval  = 3 * time.Minute
	DefaultMetricsInterval  = 1 * time.Minute
	DefaultActivityInterval = 45 * time.Second

	trendingNowThreshold = 50.0
)

const (
	taskRefresh  = "refresh"
	taskMetrics  = "metrics"
	taskActivity = "activity"
)

// activityPool is the fixed set of ambient activity notices.
var activityPool = []string{
	"Search activity is spiking across multiple regions",
	"New trend submissions are rolling in",
	"Viral content is spreading faster than usual",
	"Regional interest is shifting toward finance topics",
	"Sports searches are climbing ahead of the weekend",
	"Breaking news is driving a wave of fresh searches",
}

// Intervals configures the three task periods. Zero values fall back to the
// defaults.
type Intervals struct {
	Refresh  time.Duration
	Metrics  time.Duration
	Activity time.Duration
}

func (i Intervals) withDefaults() Intervals {
	if i.Refresh <= 0 {
		i.Refresh = DefaultRefreshInterval
	}
	if i.Metrics <= 0 {
		i.Metrics = DefaultMetricsInterval
	}
	if i.Activity <= 0 {
		i.Activity = DefaultActivityInterval
	}
	return i
}

// Scheduler runs the periodic tasks against an injected repository and
// broadcaster.
type Scheduler struct {
	repo        domain.TrendRepository
	classifier  *classify.Classifier
	broadcaster domain.Broadcaster
	clock       clockwork.Clock
	deltas      DeltaSource
	intervals   Intervals

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(repo domain.TrendRepository, classifier *classify.Classifier, broadcaster domain.Broadcaster, clock clockwork.Clock, deltas DeltaSource, intervals Intervals) *Scheduler {
	return &Scheduler{
		repo:        repo,
		classifier:  classifier,
		broadcaster: broadcaster,
		clock:       clock,
		deltas:      deltas,
		intervals:   intervals.withDefaults(),
	}
}

// Start launches the three tasks. Each fires once immediately so subscribers
// connecting early see data without waiting a full period. Calling Start
// while already running is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		slog.Debug("Scheduler already running, ignoring Start")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	s.wg.Add(3)
	go s.runTask(ctx, taskRefresh, s.intervals.Refresh, s.refreshTick)
	go s.runTask(ctx, taskMetrics, s.intervals.Metrics, s.metricsTick)
	go s.runTask(ctx, taskActivity, s.intervals.Activity, s.activityTick)

	slog.Info("Scheduler started",
		"refresh_interval", s.intervals.Refresh,
		"metrics_interval", s.intervals.Metrics,
		"activity_interval", s.intervals.Activity,
	)
}

// Stop cancels all three tasks and waits for in-flight ticks to finish. It is
// safe to call if the scheduler was never started, and safe to call twice.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) runTask(ctx context.Context, name string, interval time.Duration, tick func(context.Context) error) {
	defer s.wg.Done()

	s.safeTick(ctx, name, tick)

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.safeTick(ctx, name, tick)
		}
	}
}

// safeTick runs one tick with panic recovery, timing, and error capture. A
// failing tick must never take down its task loop.
func (s *Scheduler) safeTick(ctx context.Context, name string, tick func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Tick panic recovered", "task", name, "panic", r)
			metrics.SchedulerTickPanicsTotal.WithLabelValues(name).Inc()
			metrics.SchedulerTicksTotal.WithLabelValues(name, "panic").Inc()
		}
	}()

	start := s.clock.Now()
	err := tick(ctx)
	metrics.SchedulerTickDuration.WithLabelValues(name).Observe(s.clock.Since(start).Seconds())

	if err != nil {
		slog.Error("Tick failed", "task", name, "error", err)
		metrics.SchedulerTicksTotal.WithLabelValues(name, "error").Inc()
		return
	}
	metrics.SchedulerTicksTotal.WithLabelValues(name, "ok").Inc()
}

// refreshTick perturbs every active trend, broadcasts the mutated batch, and
// forwards derived events from the classifier.
func (s *Scheduler) refreshTick(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	batch := make([]domain.Trend, 0, len(list))
	for _, t := range list {
		growth := t.Growth + s.deltas.GrowthDelta()
		searches := t.Searches + s.deltas.SearchesDelta()

		updated, err := s.repo.Update(ctx, t.ID, domain.TrendChange{
			Searches: &searches,
			Growth:   &growth,
		})
		if err != nil {
			// A trend deactivated mid-tick is not an error for the rest
			// of the batch.
			if !errors.Is(err, domain.ErrTrendNotFound) {
				slog.Warn("Trend refresh failed", "trend_id", t.ID, "error", err)
			}
			continue
		}
		batch = append(batch, updated)
	}

	now := s.clock.Now()
	s.broadcaster.Broadcast(domain.NewTrendsUpdate(batch, now))

	for _, msg := range s.classifier.Classify(batch, now) {
		s.broadcaster.Broadcast(msg)
	}

	slog.Debug("Refresh tick complete", "trends", len(batch))
	return nil
}

// metricsTick computes aggregates over the current trend list and broadcasts
// a metricsUpdate.
func (s *Scheduler) metricsTick(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	m := domain.Metrics{ActiveUsers: s.deltas.ActiveUsers()}
	for _, t := range list {
		m.TotalSearches += t.Searches
		if t.Growth > trendingNowThreshold {
			m.TrendingNow++
		}
	}

	s.broadcaster.Broadcast(domain.NewMetricsUpdate(m, s.clock.Now()))
	return nil
}

// activityTick broadcasts one notice from the fixed activity pool.
func (s *Scheduler) activityTick(_ context.Context) error {
	notice := activityPool[s.deltas.PickIndex(len(activityPool))]
	s.broadcaster.Broadcast(domain.NewActivityUpdate(domain.Activity{Message: notice}, s.clock.Now()))
	return nil
}
