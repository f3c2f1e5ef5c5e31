package reservation

import (
	"errors"
	"time"

	"storefront/internal/domain/item"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus   = errors.New("invalid reservation status")
	ErrAlreadyTerminal = errors.New("reservation already in a terminal state")
	ErrNotHeld         = errors.New("reservation is not held")
)

// Reservation is a provisional, time-bounded hold on inventory pending payment
// confirmation. Exactly one terminal transition is allowed: held -> committed
// or held -> released.
type Reservation struct {
	id        uuid.UUID
	itemID    uuid.UUID
	buyerID   uuid.UUID
	quantity  item.Quantity
	status    Status
	createdAt time.Time
	expiresAt time.Time
}

func NewReservation(itemID, buyerID uuid.UUID, quantity item.Quantity, now time.Time, ttl time.Duration) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		itemID:    itemID,
		buyerID:   buyerID,
		quantity:  quantity,
		status:    StatusHeld,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
}

func ReconstructReservation(
	id, itemID, buyerID uuid.UUID,
	quantity item.Quantity,
	status Status,
	createdAt, expiresAt time.Time,
) (*Reservation, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Reservation{
		id:        id,
		itemID:    itemID,
		buyerID:   buyerID,
		quantity:  quantity,
		status:    status,
		createdAt: createdAt,
		expiresAt: expiresAt,
	}, nil
}

func (r *Reservation) Commit() error {
	switch r.status {
	case StatusHeld:
		r.status = StatusCommitted
		return nil
	case StatusCommitted:
		// Repeated commit is success-of-intent.
		return nil
	default:
		return ErrAlreadyTerminal
	}
}

func (r *Reservation) Release() error {
	switch r.status {
	case StatusHeld:
		r.status = StatusReleased
		return nil
	case StatusReleased:
		return nil
	default:
		return ErrAlreadyTerminal
	}
}

func (r *Reservation) IsHeld() bool {
	return r.status == StatusHeld
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return r.status == StatusHeld && !now.Before(r.expiresAt)
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) ItemID() uuid.UUID       { return r.itemID }
func (r *Reservation) BuyerID() uuid.UUID      { return r.buyerID }
func (r *Reservation) Quantity() item.Quantity { return r.quantity }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) ExpiresAt() time.Time    { return r.expiresAt }
