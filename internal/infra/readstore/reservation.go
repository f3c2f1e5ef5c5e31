package readstore

import (
	"context"
	"time"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

const findReservationByIDSQL = `
SELECT id, item_id, buyer_id, quantity, status, created_at, expires_at
FROM reservations
WHERE id = $1`

const expiredHeldIDsSQL = `
SELECT id
FROM reservations
WHERE status = 'held' AND expires_at <= $1
ORDER BY expires_at
LIMIT $2`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var view queries.ReservationView
	err := r.db.QueryRow(ctx, findReservationByIDSQL, id).Scan(
		&view.ID,
		&view.ItemID,
		&view.BuyerID,
		&view.Quantity,
		&view.Status,
		&view.CreatedAt,
		&view.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return &view, nil
}

func (r *ReservationReadStore) ExpiredHeldIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, expiredHeldIDsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired held reservations", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation ids", err)
	}
	return ids, nil
}
