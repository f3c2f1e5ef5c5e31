package readstore

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

const findUserByIDSQL = `
SELECT id, name, email, role
FROM users
WHERE id = $1`

const findUserByEmailSQL = `
SELECT id, name, email, password_hash, role
FROM users
WHERE email = $1`

// UserAuthRow carries the password hash for credential verification; it never
// leaves the command path.
type UserAuthRow struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var view queries.UserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID,
		&view.Name,
		&view.Email,
		&view.Role,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*UserAuthRow, error) {
	var row UserAuthRow
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(
		&row.ID,
		&row.Name,
		&row.Email,
		&row.PasswordHash,
		&row.Role,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &row, nil
}
