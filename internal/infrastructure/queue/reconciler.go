// Package queue runs asset reconciliation off the request path. Mutating
// writes kick the worker; kicks arriving while a run is pending coalesce into
// a single run, since reconciliation is a full scan-and-diff anyway.
package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamsite/content-api/internal/core/ports"
)

type Reconciler struct {
	kicks   chan struct{}
	service ports.ReconcileService
	log     zerolog.Logger
}

func NewReconciler(service ports.ReconcileService, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		kicks:   make(chan struct{}, 1),
		service: service,
		log:     log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	go r.run(ctx)
}

// Kick schedules a reconcile run. Never blocks; a kick while one is already
// queued is absorbed.
func (r *Reconciler) Kick() {
	select {
	case r.kicks <- struct{}{}:
	default:
	}
}

func (r *Reconciler) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.kicks:
			removed, err := r.service.Reconcile(ctx)
			if err != nil {
				r.log.Error().Err(err).Msg("asset reconcile failed")
				continue
			}
			if removed > 0 {
				r.log.Info().Int("removed", removed).Msg("orphaned assets removed")
			}
		}
	}
}
