package commands

import (
	"context"

	"github.com/google/uuid"
)

// SessionRequest carries everything a provider needs to open a checkout
// session. ReservationID travels as the client reference so the confirmation
// callback can be correlated back to the hold.
type SessionRequest struct {
	ReservationID uuid.UUID
	OrderID       uuid.UUID
	BuyerID       uuid.UUID
	ItemName      string
	Quantity      int
	AmountCents   int64
	SuccessURL    string
	CancelURL     string
}

type SessionHandle struct {
	SessionID   string
	RedirectURL string
}

// PaymentGateway abstracts the external payment provider. Implementations
// treat the provider as unreliable: any transport or provider-side failure
// surfaces as an error and the caller compensates.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*SessionHandle, error)
}
