package response

import (
	"time"

	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID                uuid.UUID `json:"id"`
	DisplayName       string    `json:"displayName"`
	UnitPriceCents    int64     `json:"unitPriceCents"`
	AvailableQuantity int       `json:"availableQuantity"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func FromItemView(rm *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:                rm.ID,
		DisplayName:       rm.DisplayName,
		UnitPriceCents:    rm.UnitPriceCents,
		AvailableQuantity: rm.AvailableQuantity,
		CreatedAt:         rm.CreatedAt,
		UpdatedAt:         rm.UpdatedAt,
	}
}
