package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations
type ItemSnapshot struct {
	ID                uuid.UUID
	DisplayName       string
	UnitPriceCents    int64
	AvailableQuantity int
}

type ReservationSnapshot struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	BuyerID   uuid.UUID
	Quantity  int
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
}
