package repository

import (
	"context"

	"storefront/internal/domain/reservation"
	"storefront/internal/infra"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
)

const createReservationSQL = `
INSERT INTO reservations (id, item_id, buyer_id, quantity, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

// Status transitions are single-row updates guarded by the current-state
// predicate: optimistic concurrency without long-held locks.
const transitionStatusSQL = `
UPDATE reservations
SET status = $3
WHERE id = $1 AND status = $2`

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createReservationSQL,
		res.ID(),
		res.ItemID(),
		res.BuyerID(),
		res.Quantity().Int(),
		res.Status().String(),
		res.CreatedAt(),
		res.ExpiresAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, transitionStatusSQL, id, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition reservation status", err)
	}
	return tag.RowsAffected() == 1, nil
}
