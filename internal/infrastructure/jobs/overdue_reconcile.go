package jobs

import (
	"context"
	"time"

	"cling-reminder.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OverdueReconciler persists overdue status for past-due reminders
type OverdueReconciler interface {
	ReconcileOverdue(ctx context.Context, userID *uuid.UUID) (int64, error)
}

// OverdueReconcileJob periodically sweeps stored-upcoming reminders
// whose date has passed. The read path projects overdue on the fly, so
// this only keeps the stored values from drifting too far.
type OverdueReconcileJob struct {
	reconciler OverdueReconciler
	interval   time.Duration
	stop       chan struct{}
}

// NewOverdueReconcileJob creates the job. interval <= 0 disables it.
func NewOverdueReconcileJob(reconciler OverdueReconciler, interval time.Duration) *OverdueReconcileJob {
	return &OverdueReconcileJob{
		reconciler: reconciler,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is
// called
func (j *OverdueReconcileJob) Start(ctx context.Context) {
	if j.interval <= 0 {
		logger.Info(ctx, "overdue reconcile job disabled")
		return
	}

	logger.Info(ctx, "starting overdue reconcile job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "overdue reconcile job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "overdue reconcile job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// Stop signals the loop to exit
func (j *OverdueReconcileJob) Stop() {
	close(j.stop)
}

func (j *OverdueReconcileJob) sweep(ctx context.Context) {
	modified, err := j.reconciler.ReconcileOverdue(ctx, nil)
	if err != nil {
		logger.Error(ctx, "overdue reconcile sweep failed", zap.Error(err))
		return
	}
	if modified > 0 {
		logger.Info(ctx, "overdue reconcile sweep", zap.Int64("modified", modified))
	}
}
