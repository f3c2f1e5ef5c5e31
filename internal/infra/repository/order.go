package repository

import (
	"context"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// The unique index on reservation_id makes recordPending idempotent: a retry
// hits DO NOTHING and the follow-up select returns the original row's id.
const insertPendingOrderSQL = `
INSERT INTO orders (id, reservation_id, buyer_id, quantity, amount_cents, payment_method, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (reservation_id) DO NOTHING
RETURNING id`

const selectOrderIDByReservationSQL = `
SELECT id FROM orders WHERE reservation_id = $1`

const finalizeOrderSQL = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE reservation_id = $1 AND status = 'pending'`

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(db db.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) InsertPending(ctx context.Context, o *order.Order) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, insertPendingOrderSQL,
		o.ID(),
		o.ReservationID(),
		o.BuyerID(),
		o.Quantity().Int(),
		o.Amount().Cents(),
		o.PaymentMethod().String(),
		o.Status().String(),
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !pgconv.IsNoRows(err) {
		return uuid.Nil, false, infra.WrapRepoErr("failed to insert pending order", err)
	}

	// Conflict path: another attempt already recorded this reservation.
	err = r.db.QueryRow(ctx, selectOrderIDByReservationSQL, o.ReservationID()).Scan(&id)
	if err != nil {
		return uuid.Nil, false, infra.WrapRepoErr("failed to load existing order for reservation", err)
	}
	return id, false, nil
}

func (r *OrderRepository) FinalizeByReservationID(ctx context.Context, reservationID uuid.UUID, outcome order.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, finalizeOrderSQL, reservationID, outcome.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to finalize order", err)
	}
	return tag.RowsAffected() == 1, nil
}
