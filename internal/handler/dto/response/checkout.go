package response

import (
	"storefront/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	OrderID       uuid.UUID `json:"orderId"`
	SessionURL    string    `json:"sessionUrl"`
}

type ConfirmResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	OrderStatus   string    `json:"orderStatus"`
	Replayed      bool      `json:"replayed"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		ReservationID: r.ReservationID,
		OrderID:       r.OrderID,
		SessionURL:    r.SessionURL,
	}
}

func FromConfirmResult(r *commands.ConfirmResult) *ConfirmResponse {
	return &ConfirmResponse{
		ReservationID: r.ReservationID,
		OrderStatus:   r.OrderStatus.String(),
		Replayed:      r.IsReplayed,
	}
}
