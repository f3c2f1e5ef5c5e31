package worker

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

const releaseConcurrency = 4

// ExpirySweeper releases held reservations past their expiry, restoring stock
// that abandoned checkouts would otherwise leak. Each hold is released in its
// own transaction behind the status predicate, so a sweep racing a late
// confirmation (or another sweeper) releases at most once.
type ExpirySweeper struct {
	checkout commands.CheckoutCommands
	uow      shared.UnitOfWork
	clock    clock.Clock
	cfg      config.ReservationConfig
}

func NewExpirySweeper(
	checkout commands.CheckoutCommands,
	uow shared.UnitOfWork,
	clock clock.Clock,
	cfg config.Config,
) *ExpirySweeper {
	return &ExpirySweeper{
		checkout: checkout,
		uow:      uow,
		clock:    clock,
		cfg:      cfg.Reservation,
	}
}

func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			released, err := s.SweepOnce(ctx)
			if err != nil {
				slog.Error("reservation sweep failed", "error", err.Error())
				continue
			}
			if released > 0 {
				slog.Info("released expired reservations", "count", released)
			}
		}
	}
}

func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int, error) {
	ids, err := s.uow.CommandReads().ExpiredHeldReservationIDs(ctx, s.clock.Now(), s.cfg.SweepBatch)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(releaseConcurrency)

	results := make([]bool, len(ids))
	for i, id := range ids {
		g.Go(func() error {
			ok, err := s.checkout.ReleaseExpired(gctx, id)
			if err != nil {
				slog.Warn("failed to release expired reservation",
					"reservation_id", id, "error", err.Error())
				// Leave it for the next sweep instead of aborting the batch.
				return nil
			}
			results[i] = ok
			return nil
		})
	}
	_ = g.Wait()

	released := 0
	for _, ok := range results {
		if ok {
			released++
		}
	}
	return released, nil
}
