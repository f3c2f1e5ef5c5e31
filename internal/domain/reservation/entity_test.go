//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"storefront/internal/domain/item"
	"storefront/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeld(t *testing.T, ttl time.Duration) *reservation.Reservation {
	t.Helper()
	qty, err := item.NewQuantity(2)
	require.NoError(t, err)
	return reservation.NewReservation(uuid.New(), uuid.New(), qty, time.Now(), ttl)
}

func TestNewReservation(t *testing.T) {
	now := time.Now()
	qty, err := item.NewQuantity(3)
	require.NoError(t, err)

	res := reservation.NewReservation(uuid.New(), uuid.New(), qty, now, 15*time.Minute)

	assert.NotEqual(t, uuid.Nil, res.ID())
	assert.Equal(t, reservation.StatusHeld, res.Status())
	assert.True(t, res.IsHeld())
	assert.Equal(t, now.Add(15*time.Minute), res.ExpiresAt())
}

func TestReservationCommit(t *testing.T) {
	t.Run("held commits once", func(t *testing.T) {
		res := newHeld(t, 15*time.Minute)

		require.NoError(t, res.Commit())
		assert.Equal(t, reservation.StatusCommitted, res.Status())
	})

	t.Run("repeated commit is a no-op", func(t *testing.T) {
		res := newHeld(t, 15*time.Minute)
		require.NoError(t, res.Commit())

		require.NoError(t, res.Commit())
		assert.Equal(t, reservation.StatusCommitted, res.Status())
	})

	t.Run("commit after release is rejected", func(t *testing.T) {
		res := newHeld(t, 15*time.Minute)
		require.NoError(t, res.Release())

		err := res.Commit()
		require.ErrorIs(t, err, reservation.ErrAlreadyTerminal)
		assert.Equal(t, reservation.StatusReleased, res.Status())
	})
}

func TestReservationRelease(t *testing.T) {
	t.Run("held releases once", func(t *testing.T) {
		res := newHeld(t, 15*time.Minute)

		require.NoError(t, res.Release())
		assert.Equal(t, reservation.StatusReleased, res.Status())
	})

	t.Run("repeated release is a no-op", func(t *testing.T) {
		res := newHeld(t, 15*time.Minute)
		require.NoError(t, res.Release())

		require.NoError(t, res.Release())
		assert.Equal(t, reservation.StatusReleased, res.Status())
	})

	t.Run("release after commit is rejected", func(t *testing.T) {
		res := newHeld(t, 15*time.Minute)
		require.NoError(t, res.Commit())

		err := res.Release()
		require.ErrorIs(t, err, reservation.ErrAlreadyTerminal)
		assert.Equal(t, reservation.StatusCommitted, res.Status())
	})
}

func TestReservationHasExpired(t *testing.T) {
	now := time.Now()
	qty, err := item.NewQuantity(1)
	require.NoError(t, err)

	t.Run("held before expiry", func(t *testing.T) {
		res := reservation.NewReservation(uuid.New(), uuid.New(), qty, now, time.Hour)
		assert.False(t, res.HasExpired(now.Add(30*time.Minute)))
	})

	t.Run("held at exact expiry", func(t *testing.T) {
		res := reservation.NewReservation(uuid.New(), uuid.New(), qty, now, time.Hour)
		assert.True(t, res.HasExpired(now.Add(time.Hour)))
	})

	t.Run("committed never expires", func(t *testing.T) {
		res := reservation.NewReservation(uuid.New(), uuid.New(), qty, now, time.Hour)
		require.NoError(t, res.Commit())
		assert.False(t, res.HasExpired(now.Add(2*time.Hour)))
	})
}

func TestReconstructReservation(t *testing.T) {
	qty, err := item.NewQuantity(1)
	require.NoError(t, err)
	now := time.Now()

	t.Run("valid status", func(t *testing.T) {
		res, err := reservation.ReconstructReservation(
			uuid.New(), uuid.New(), uuid.New(), qty,
			reservation.StatusCommitted, now, now.Add(time.Hour),
		)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCommitted, res.Status())
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := reservation.ReconstructReservation(
			uuid.New(), uuid.New(), uuid.New(), qty,
			reservation.Status("bogus"), now, now.Add(time.Hour),
		)
		require.ErrorIs(t, err, reservation.ErrInvalidStatus)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, reservation.StatusHeld.IsTerminal())
	assert.True(t, reservation.StatusCommitted.IsTerminal())
	assert.True(t, reservation.StatusReleased.IsTerminal())
}
