//go:build unit || e2e

package builder

import (
	"time"

	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	BuyerID   uuid.UUID
	Quantity  int
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		ID:        uuid.New(),
		ItemID:    uuid.New(),
		BuyerID:   uuid.New(),
		Quantity:  2,
		Status:    "held",
		CreatedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:        b.ID,
		ItemID:    b.ItemID,
		BuyerID:   b.BuyerID,
		Quantity:  b.Quantity,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		ExpiresAt: b.ExpiresAt,
	}
}

func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithBuyerID(id uuid.UUID) *ReservationBuilder {
	b.BuyerID = id
	return b
}

func (b *ReservationBuilder) WithExpiresAt(t time.Time) *ReservationBuilder {
	b.ExpiresAt = t
	return b
}

func (b *ReservationBuilder) Expired() *ReservationBuilder {
	b.ExpiresAt = time.Now().Add(-time.Minute)
	return b
}
