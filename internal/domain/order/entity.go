package order

import (
	"errors"
	"time"

	"storefront/internal/domain/item"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrAlreadyFinalized = errors.New("order already finalized")
)

// Order is the append-only sale record. reservationID doubles as the
// idempotency key: at most one order exists per reservation.
type Order struct {
	id            uuid.UUID
	reservationID uuid.UUID
	buyerID       uuid.UUID
	quantity      item.Quantity
	amount        item.Money
	paymentMethod PaymentMethod
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

func NewOrder(reservationID, buyerID uuid.UUID, quantity item.Quantity, unitPrice item.Money, method PaymentMethod) (*Order, error) {
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}

	return &Order{
		id:            uuid.New(),
		reservationID: reservationID,
		buyerID:       buyerID,
		quantity:      quantity,
		amount:        unitPrice.MulQuantity(quantity),
		paymentMethod: method,
		status:        StatusPending,
	}, nil
}

func ReconstructOrder(
	id, reservationID, buyerID uuid.UUID,
	quantity item.Quantity,
	amount item.Money,
	method PaymentMethod,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Order{
		id:            id,
		reservationID: reservationID,
		buyerID:       buyerID,
		quantity:      quantity,
		amount:        amount,
		paymentMethod: method,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

// Finalize moves a pending order to its terminal status. Re-finalizing with
// the same outcome is a no-op; a different outcome is rejected so the recorded
// result can never flap.
func (o *Order) Finalize(outcome Status) error {
	if !outcome.IsFinal() {
		return ErrInvalidStatus
	}
	if o.status == outcome {
		return nil
	}
	if o.status.IsFinal() {
		return ErrAlreadyFinalized
	}
	o.status = outcome
	return nil
}

func (o *Order) IsPending() bool {
	return o.status == StatusPending
}

func (o *Order) ID() uuid.UUID                 { return o.id }
func (o *Order) ReservationID() uuid.UUID      { return o.reservationID }
func (o *Order) BuyerID() uuid.UUID            { return o.buyerID }
func (o *Order) Quantity() item.Quantity       { return o.quantity }
func (o *Order) Amount() item.Money            { return o.amount }
func (o *Order) PaymentMethod() PaymentMethod  { return o.paymentMethod }
func (o *Order) Status() Status                { return o.status }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) UpdatedAt() time.Time          { return o.updatedAt }
