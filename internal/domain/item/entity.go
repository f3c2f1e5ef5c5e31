package item

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyDisplayName  = errors.New("display name cannot be empty")
	ErrNegativePrice     = errors.New("unit price cannot be negative")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Item struct {
	id                uuid.UUID
	displayName       string
	unitPrice         Money
	availableQuantity int
	createdAt         time.Time
	updatedAt         time.Time
}

func NewItem(displayName string, unitPrice Money, availableQuantity int) (*Item, error) {
	if displayName == "" {
		return nil, ErrEmptyDisplayName
	}
	if availableQuantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &Item{
		id:                uuid.New(),
		displayName:       displayName,
		unitPrice:         unitPrice,
		availableQuantity: availableQuantity,
	}, nil
}

func ReconstructItem(
	id uuid.UUID,
	displayName string,
	unitPrice Money,
	availableQuantity int,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:                id,
		displayName:       displayName,
		unitPrice:         unitPrice,
		availableQuantity: availableQuantity,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// CanFulfill reports whether the current quantity covers qty. This is advisory
// only: the authoritative check is the storage layer's conditional decrement.
func (i *Item) CanFulfill(qty Quantity) bool {
	return i.availableQuantity >= qty.Int()
}

func (i *Item) ID() uuid.UUID          { return i.id }
func (i *Item) DisplayName() string    { return i.displayName }
func (i *Item) UnitPrice() Money       { return i.unitPrice }
func (i *Item) AvailableQuantity() int { return i.availableQuantity }
func (i *Item) CreatedAt() time.Time   { return i.createdAt }
func (i *Item) UpdatedAt() time.Time   { return i.updatedAt }
