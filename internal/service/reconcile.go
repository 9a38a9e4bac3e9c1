package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/iliyamo/sports-session-scheduler/internal/repository"
)

// Reconciler repairs drift between sessions.current_participants and the
// membership table.  Drift should never occur; a non-zero repair count
// points at a write path that bypassed the capacity manager.
type Reconciler struct {
	sessions *repository.SessionRepo
	metrics  *Metrics
	log      zerolog.Logger

	cron *cron.Cron
}

// NewReconciler returns a reconciler for db.
func NewReconciler(db *sql.DB, metrics *Metrics, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		sessions: repository.NewSessionRepo(db),
		metrics:  metrics,
		log:      log,
	}
}

// Run performs one reconciliation pass and returns the number of
// sessions repaired.
func (r *Reconciler) Run(ctx context.Context) (int64, error) {
	n, err := r.sessions.ReconcileCounters(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("reconcile participant counters failed")
		return 0, err
	}
	if n > 0 {
		r.log.Warn().Int64("repaired", n).Msg("participant counters drifted; repaired")
		if r.metrics != nil {
			r.metrics.Repaired.Add(float64(n))
		}
	} else {
		r.log.Debug().Msg("participant counters consistent")
	}
	return n, nil
}

// StartScheduler runs Run on spec (standard cron syntax or descriptors
// such as "@every 10m").
func (r *Reconciler) StartScheduler(spec string) error {
	r.cron = cron.New()
	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_, _ = r.Run(ctx)
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info().Str("schedule", spec).Msg("counter reconciler scheduled")
	return nil
}

// StopScheduler stops the cron loop and waits for a running pass.
func (r *Reconciler) StopScheduler() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}
