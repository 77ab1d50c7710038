package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

// Reconciler runs one overdue reconciliation sweep
type Reconciler interface {
	ReconcileOverduePayments(ctx context.Context) (*models.ReconcileResult, error)
}

// ReconciliationScheduler triggers the overdue sweep on a fixed interval.
// Within one process at most one sweep runs at a time; a tick that lands
// while a sweep is still running is skipped.
type ReconciliationScheduler struct {
	reconciler Reconciler
	interval   time.Duration
	runOnStart bool
	app        *newrelic.Application
	running    atomic.Bool
}

// NewReconciliationScheduler creates a scheduler. app may be nil when New Relic is disabled.
func NewReconciliationScheduler(reconciler Reconciler, interval time.Duration, runOnStart bool, app *newrelic.Application) *ReconciliationScheduler {
	return &ReconciliationScheduler{
		reconciler: reconciler,
		interval:   interval,
		runOnStart: runOnStart,
		app:        app,
	}
}

// Start blocks, running the sweep every interval until ctx is cancelled
func (s *ReconciliationScheduler) Start(ctx context.Context) error {
	slog.Info("Reconciliation scheduler started", "interval", s.interval, "run_on_start", s.runOnStart)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if s.runOnStart {
		s.tick(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reconciliation scheduler stopped")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *ReconciliationScheduler) tick(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		if utils.KindOf(err) == utils.KindConflict {
			slog.Warn("Skipping scheduled reconciliation", "reason", err)
			return
		}
		slog.Error("Scheduled reconciliation failed", "error", err)
	}
}

// RunOnce runs a single sweep now unless one is already in progress
func (s *ReconciliationScheduler) RunOnce(ctx context.Context) (*models.ReconcileResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, utils.NewConflictError("reconciliation already in progress")
	}
	defer s.running.Store(false)

	txn := s.app.StartTransaction("reconcile-overdue-payments")
	defer txn.End()
	ctx = newrelic.NewContext(ctx, txn)

	result, err := s.reconciler.ReconcileOverduePayments(ctx)
	if err != nil {
		txn.NoticeError(err)
		return nil, err
	}

	txn.AddAttribute("selected", result.Selected)
	txn.AddAttribute("updated", result.Updated)
	txn.AddAttribute("skipped", result.Skipped)
	txn.AddAttribute("failed", result.Failed)
	return result, nil
}
