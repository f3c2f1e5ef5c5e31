//go:build e2e

package checkout_test

import (
	"context"

	"storefront/internal/domain/item"
	"storefront/internal/domain/order"
	"storefront/internal/infra/repository"
	"storefront/tests/common/dbtest"

	"github.com/stretchr/testify/require"
)

// The orders table is the idempotency ledger: the unique index on
// reservation_id has to collapse duplicate pending inserts onto the original
// row, no matter how many attempts race for the same reservation.
func (s *CheckoutSuite) TestOrderLedger() {
	s.Run("second pending insert for a reservation returns the original order", func() {
		t := s.T()
		ctx := context.Background()

		buyerID := dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "customer")
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		reservationID := dbtest.CreateTestReservation(t, s.DB, itemID, buyerID, 2, "held")

		repo := repository.NewOrderRepository(s.DB)
		newPending := func() *order.Order {
			qty, err := item.NewQuantity(2)
			require.NoError(t, err)
			price, err := item.NewMoney(500)
			require.NoError(t, err)
			o, err := order.NewOrder(reservationID, buyerID, qty, price, order.MethodCard)
			require.NoError(t, err)
			return o
		}

		firstID, inserted, err := repo.InsertPending(ctx, newPending())
		require.NoError(t, err)
		require.True(t, inserted)

		// The retry carries a fresh order id; the ledger must hand back the
		// original one instead.
		secondID, inserted, err := repo.InsertPending(ctx, newPending())
		require.NoError(t, err)
		require.False(t, inserted)
		require.Equal(t, firstID, secondID)

		var count int
		err = s.DB.QueryRow(ctx, "SELECT count(*) FROM orders WHERE reservation_id = $1", reservationID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})
}
