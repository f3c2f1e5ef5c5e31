package request

import (
	"github.com/google/uuid"
)

type InitiateCheckoutRequest struct {
	ItemID        uuid.UUID `json:"itemId" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,gt=0"`
	PaymentMethod string    `json:"paymentMethod" binding:"required,oneof=card pix"`
}

// ConfirmCheckoutRequest is the provider callback payload. The reservation id
// is the client reference handed to the provider at session creation.
type ConfirmCheckoutRequest struct {
	ReservationID uuid.UUID `json:"reservationId" binding:"required"`
	Outcome       string    `json:"outcome" binding:"required,oneof=success failed"`
}
