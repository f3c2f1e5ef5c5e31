package shared

import (
	"context"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/domain/reservation"
	"storefront/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: direct access to command reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Items() ItemRepository
	Reservations() ReservationRepository
	Orders() OrderRepository
	Users() UserRepository
	Reads() CommandReads
}

// CommandReads are the write side's minimal lookups, separate from the
// query-side read stores.
type CommandReads interface {
	ItemByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	// ExpiredHeldReservationIDs lists candidates for the expiry sweep. The
	// actual release stays behind the status predicate, so a stale candidate
	// is harmless.
	ExpiredHeldReservationIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type ItemRepository interface {
	// TryDecrement performs the single conditional update that guards all
	// stock coordination. It fails with KindConflict when available quantity
	// is below qty, leaving the row untouched.
	TryDecrement(ctx context.Context, itemID uuid.UUID, qty int) error
	Increment(ctx context.Context, itemID uuid.UUID, qty int) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	// TransitionStatus updates the row only when its current status matches
	// from; reports whether the transition happened.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error)
}

type OrderRepository interface {
	// InsertPending inserts the order unless one already exists for its
	// reservation; returns the surviving order's id and whether a row was
	// inserted.
	InsertPending(ctx context.Context, o *order.Order) (uuid.UUID, bool, error)
	// FinalizeByReservationID transitions pending -> outcome; reports whether
	// a row changed.
	FinalizeByReservationID(ctx context.Context, reservationID uuid.UUID, outcome order.Status) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
}
