package readstore

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

const findItemByIDSQL = `
SELECT id, display_name, unit_price_cents, available_quantity, created_at, updated_at
FROM items
WHERE id = $1`

const listItemsSQL = `
SELECT id, display_name, unit_price_cents, available_quantity, created_at, updated_at
FROM items
ORDER BY display_name`

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(db db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: db}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	var view queries.ItemView
	err := r.db.QueryRow(ctx, findItemByIDSQL, id).Scan(
		&view.ID,
		&view.DisplayName,
		&view.UnitPriceCents,
		&view.AvailableQuantity,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return &view, nil
}

func (r *ItemReadStore) List(ctx context.Context) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx, listItemsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	var views []*queries.ItemView
	for rows.Next() {
		var view queries.ItemView
		if err := rows.Scan(
			&view.ID,
			&view.DisplayName,
			&view.UnitPriceCents,
			&view.AvailableQuantity,
			&view.CreatedAt,
			&view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate item rows", err)
	}
	return views, nil
}
