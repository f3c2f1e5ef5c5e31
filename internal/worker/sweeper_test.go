//go:build unit

package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/shared"
	"storefront/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheckout struct {
	mu       sync.Mutex
	released map[uuid.UUID]int
	failWith map[uuid.UUID]error
}

func newStubCheckout() *stubCheckout {
	return &stubCheckout{
		released: make(map[uuid.UUID]int),
		failWith: make(map[uuid.UUID]error),
	}
}

func (s *stubCheckout) InitiateCheckout(context.Context, commands.InitiateCheckoutParams, uuid.UUID) (*commands.CheckoutResult, error) {
	panic("not used")
}

func (s *stubCheckout) ConfirmCheckout(context.Context, uuid.UUID, order.Status) (*commands.ConfirmResult, error) {
	panic("not used")
}

func (s *stubCheckout) CancelCheckout(context.Context, uuid.UUID, uuid.UUID) error {
	panic("not used")
}

func (s *stubCheckout) ReleaseExpired(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failWith[id]; ok {
		return false, err
	}
	s.released[id]++
	// Only the first release reports true, mirroring the status predicate.
	return s.released[id] == 1, nil
}

type stubUoW struct {
	expired []uuid.UUID
}

func (u *stubUoW) Within(context.Context, func(context.Context, shared.Tx) error) error {
	panic("not used")
}

func (u *stubUoW) CommandReads() shared.CommandReads {
	return &stubReads{expired: u.expired}
}

type stubReads struct {
	expired []uuid.UUID
}

func (r *stubReads) ItemByID(context.Context, uuid.UUID) (*shared.ItemSnapshot, error) {
	panic("not used")
}

func (r *stubReads) ReservationByID(context.Context, uuid.UUID) (*shared.ReservationSnapshot, error) {
	panic("not used")
}

func (r *stubReads) UserByEmail(context.Context, string) (*shared.UserSnapshot, error) {
	panic("not used")
}

func (r *stubReads) ExpiredHeldReservationIDs(_ context.Context, _ time.Time, limit int) ([]uuid.UUID, error) {
	if len(r.expired) > limit {
		return r.expired[:limit], nil
	}
	return r.expired, nil
}

func TestSweepOnce(t *testing.T) {
	mc := clock.NewMockClock(time.Now())
	cfg := config.NewTestConfig()

	t.Run("releases every expired hold", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		checkout := newStubCheckout()
		sweeper := worker.NewExpirySweeper(checkout, &stubUoW{expired: ids}, mc, cfg)

		released, err := sweeper.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, released)
		for _, id := range ids {
			assert.Equal(t, 1, checkout.released[id])
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		checkout := newStubCheckout()
		sweeper := worker.NewExpirySweeper(checkout, &stubUoW{}, mc, cfg)

		released, err := sweeper.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, released)
	})

	t.Run("one failing release does not abort the batch", func(t *testing.T) {
		good := uuid.New()
		bad := uuid.New()
		checkout := newStubCheckout()
		checkout.failWith[bad] = errs.New("transient failure")
		sweeper := worker.NewExpirySweeper(checkout, &stubUoW{expired: []uuid.UUID{bad, good}}, mc, cfg)

		released, err := sweeper.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, released)
		assert.Equal(t, 1, checkout.released[good])
	})

	t.Run("repeat sweep releases nothing new", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		checkout := newStubCheckout()
		sweeper := worker.NewExpirySweeper(checkout, &stubUoW{expired: ids}, mc, cfg)

		released, err := sweeper.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, released)

		released, err = sweeper.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, released)
	})

	t.Run("batch is bounded by configuration", func(t *testing.T) {
		cfgSmall := cfg
		cfgSmall.Reservation.SweepBatch = 2
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
		checkout := newStubCheckout()
		sweeper := worker.NewExpirySweeper(checkout, &stubUoW{expired: ids}, mc, cfgSmall)

		released, err := sweeper.SweepOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, released)
	})
}
