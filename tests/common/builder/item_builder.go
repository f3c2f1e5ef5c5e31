//go:build unit || e2e

package builder

import (
	"time"

	"storefront/internal/domain/item"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ID                uuid.UUID
	DisplayName       string
	UnitPriceCents    int64
	AvailableQuantity int
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:                uuid.New(),
		DisplayName:       "Mechanical Keyboard",
		UnitPriceCents:    500,
		AvailableQuantity: 10,
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

func (b *ItemBuilder) BuildDomain() (*item.Item, error) {
	price, err := item.NewMoney(b.UnitPriceCents)
	if err != nil {
		return nil, err
	}
	return item.NewItem(b.DisplayName, price, b.AvailableQuantity)
}

func (b *ItemBuilder) BuildView() *queries.ItemView {
	now := time.Now()
	return &queries.ItemView{
		ID:                b.ID,
		DisplayName:       b.DisplayName,
		UnitPriceCents:    b.UnitPriceCents,
		AvailableQuantity: b.AvailableQuantity,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (b *ItemBuilder) BuildSnapshot() *shared.ItemSnapshot {
	return &shared.ItemSnapshot{
		ID:                b.ID,
		DisplayName:       b.DisplayName,
		UnitPriceCents:    b.UnitPriceCents,
		AvailableQuantity: b.AvailableQuantity,
	}
}

func (b *ItemBuilder) WithDisplayName(name string) *ItemBuilder {
	b.DisplayName = name
	return b
}

func (b *ItemBuilder) WithUnitPriceCents(cents int64) *ItemBuilder {
	b.UnitPriceCents = cents
	return b
}

func (b *ItemBuilder) WithAvailableQuantity(qty int) *ItemBuilder {
	b.AvailableQuantity = qty
	return b
}
