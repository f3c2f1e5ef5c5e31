package response

import (
	"time"

	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservationId"`
	ItemID        uuid.UUID `json:"itemId"`
	ItemName      string    `json:"itemName"`
	Quantity      int       `json:"quantity"`
	AmountCents   int64     `json:"amountCents"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromOrderView(rm *queries.OrderView) *OrderResponse {
	return &OrderResponse{
		ID:            rm.ID,
		ReservationID: rm.ReservationID,
		ItemID:        rm.ItemID,
		ItemName:      rm.ItemName,
		Quantity:      rm.Quantity,
		AmountCents:   rm.AmountCents,
		PaymentMethod: rm.PaymentMethod,
		Status:        rm.Status,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}
