package repository

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
)

// The conditional decrement is the whole point of this repository: the
// storage layer evaluates the stock check and the decrement as one statement,
// so two competing checkouts can never both succeed on the last unit.
const tryDecrementSQL = `
UPDATE items
SET available_quantity = available_quantity - $2, updated_at = now()
WHERE id = $1 AND available_quantity >= $2`

const incrementSQL = `
UPDATE items
SET available_quantity = available_quantity + $2, updated_at = now()
WHERE id = $1`

type ItemRepository struct {
	db db.DBTX
}

func NewItemRepository(db db.DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) TryDecrement(ctx context.Context, itemID uuid.UUID, qty int) error {
	tag, err := r.db.Exec(ctx, tryDecrementSQL, itemID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement item stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("stock below requested quantity", nil, infra.KindConflict)
	}
	return nil
}

func (r *ItemRepository) Increment(ctx context.Context, itemID uuid.UUID, qty int) error {
	tag, err := r.db.Exec(ctx, incrementSQL, itemID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to increment item stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}
