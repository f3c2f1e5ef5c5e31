//go:build unit || e2e

package dbtest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture user's hash.
const TestPassword = "password123"

var (
	hashOnce     sync.Once
	passwordHash string
)

// fixture users share one hash; bcrypt at cost 10 is too slow to run per row.
func testPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.DefaultCost)
		require.NoError(t, err)
		passwordHash = string(hash)
	})
	return passwordHash
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, name, email, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5, now()) ON CONFLICT (email) DO NOTHING",
		userID, "Test Buyer", email, testPasswordHash(t), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func CreateTestItem(t *testing.T, db DBLike, name string, unitPriceCents int64, quantity int) uuid.UUID {
	t.Helper()

	itemID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO items (id, display_name, unit_price_cents, available_quantity, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())",
		itemID, name, unitPriceCents, quantity)
	require.NoError(t, err)

	return itemID
}

func CreateTestReservation(t *testing.T, db DBLike, itemID, buyerID uuid.UUID, quantity int, status string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO reservations (id, item_id, buyer_id, quantity, status, created_at, expires_at) VALUES ($1, $2, $3, $4, $5, now(), now() + interval '15 minutes')",
		reservationID, itemID, buyerID, quantity, status)
	require.NoError(t, err)

	return reservationID
}

// ExpireReservation backdates a hold so expiry-dependent paths can run
// without waiting out the TTL.
func ExpireReservation(t *testing.T, db DBLike, reservationID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE reservations SET expires_at = now() - interval '1 hour' WHERE id = $1", reservationID)
	require.NoError(t, err)
}

func ItemQuantity(t *testing.T, db DBLike, itemID uuid.UUID) int {
	t.Helper()

	var qty int
	err := db.QueryRow(context.Background(),
		"SELECT available_quantity FROM items WHERE id = $1", itemID).Scan(&qty)
	require.NoError(t, err)
	return qty
}

func ReservationStatus(t *testing.T, db DBLike, reservationID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM reservations WHERE id = $1", reservationID).Scan(&status)
	require.NoError(t, err)
	return status
}

// ResetDB truncates all mutable tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(),
		"TRUNCATE orders, reservations, items, users CASCADE")
	return err
}
