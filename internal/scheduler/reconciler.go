package scheduler

import (
	"context"
	"time"

	"lodge/config"
	"lodge/internal/domains/reservation/service"

	"github.com/rs/zerolog/log"
)

// Reconciler periodically recomputes every room's availability flag so
// the cached flags stay correct as days roll over without any booking
// activity.
type Reconciler struct {
	service service.Reservation
	cfg     *config.Config
}

func NewReconciler(service service.Reservation, cfg *config.Config) *Reconciler {
	return &Reconciler{
		service: service,
		cfg:     cfg,
	}
}

// Run blocks until ctx is done, sweeping on the configured interval.
// A zero interval disables the sweep.
func (r *Reconciler) Run(ctx context.Context) {
	interval := time.Duration(r.cfg.App.ReconcileIntervalSeconds) * time.Second
	if interval <= 0 {
		log.Info().Msg("Availability reconciliation ticker disabled")

		return
	}

	log.Info().Dur("interval", interval).Msg("Starting availability reconciliation ticker")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping availability reconciliation ticker")

			return
		case <-ticker.C:
			res, err := r.service.ReconcileAll(ctx)
			if err != nil {
				log.Error().Err(err).Msg("scheduled availability reconciliation failed")

				continue
			}

			log.Info().Int64("rooms", res.Rooms).Msg("Scheduled availability reconciliation completed")
		}
	}
}
