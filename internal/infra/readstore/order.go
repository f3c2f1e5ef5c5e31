package readstore

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

const orderViewColumns = `
o.id, o.reservation_id, o.buyer_id, r.item_id, i.display_name,
o.quantity, o.amount_cents, o.payment_method, o.status, o.created_at, o.updated_at`

const findOrderByIDSQL = `
SELECT ` + orderViewColumns + `
FROM orders o
JOIN reservations r ON r.id = o.reservation_id
JOIN items i ON i.id = r.item_id
WHERE o.id = $1`

const findOrderByReservationIDSQL = `
SELECT ` + orderViewColumns + `
FROM orders o
JOIN reservations r ON r.id = o.reservation_id
JOIN items i ON i.id = r.item_id
WHERE o.reservation_id = $1`

const listOrdersByBuyerSQL = `
SELECT ` + orderViewColumns + `
FROM orders o
JOIN reservations r ON r.id = o.reservation_id
JOIN items i ON i.id = r.item_id
WHERE o.buyer_id = $1
ORDER BY o.created_at DESC`

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	view, err := r.scanOrderRow(r.db.QueryRow(ctx, findOrderByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}
	return view, nil
}

func (r *OrderReadStore) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*queries.OrderView, error) {
	view, err := r.scanOrderRow(r.db.QueryRow(ctx, findOrderByReservationIDSQL, reservationID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by reservation ID", err)
	}
	return view, nil
}

func (r *OrderReadStore) ListByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, listOrdersByBuyerSQL, buyerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list buyer orders", err)
	}
	defer rows.Close()

	var views []*queries.OrderView
	for rows.Next() {
		view, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OrderReadStore) scanOrderRow(row rowScanner) (*queries.OrderView, error) {
	var view queries.OrderView
	err := row.Scan(
		&view.ID,
		&view.ReservationID,
		&view.BuyerID,
		&view.ItemID,
		&view.ItemName,
		&view.Quantity,
		&view.AmountCents,
		&view.PaymentMethod,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
