//go:build e2e

package checkout_test

import (
	"net/http"
	"testing"

	"storefront/internal/handler/dto/request"
	"storefront/internal/handler/dto/response"
	"storefront/tests/common/authtest"
	"storefront/tests/common/dbtest"
	"storefront/tests/common/httptest"
	"storefront/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	checkoutURL = "/api/checkout"
	confirmURL  = "/api/checkout/confirm"
	itemsURL    = "/api/items"
	ordersURL   = "/api/orders"
)

type CheckoutSuite struct {
	e2e.SharedSuite
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CheckoutSuite))
}

func (s *CheckoutSuite) initiate(t *testing.T, token string, itemID uuid.UUID, quantity int) response.CheckoutResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
		request.InitiateCheckoutRequest{ItemID: itemID, Quantity: quantity, PaymentMethod: "card"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body response.CheckoutResponse
	httptest.DecodeResponseBody(t, w.Body, &body)
	return body
}

func (s *CheckoutSuite) confirm(t *testing.T, reservationID uuid.UUID, outcome string) (*response.ConfirmResponse, int) {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, confirmURL,
		request.ConfirmCheckoutRequest{ReservationID: reservationID, Outcome: outcome}, "")
	if w.Code != http.StatusOK {
		return nil, w.Code
	}

	var body response.ConfirmResponse
	httptest.DecodeResponseBody(t, w.Body, &body)
	return &body, w.Code
}

func (s *CheckoutSuite) TestCheckoutLifecycle() {
	s.Run("successful payment commits the reservation", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		checkout := s.initiate(t, token, itemID, 2)
		require.NotEmpty(t, checkout.SessionURL)
		require.Equal(t, 8, dbtest.ItemQuantity(t, s.DB, itemID))
		require.Equal(t, "held", dbtest.ReservationStatus(t, s.DB, checkout.ReservationID))

		confirmed, code := s.confirm(t, checkout.ReservationID, "success")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "success", confirmed.OrderStatus)
		require.False(t, confirmed.Replayed)

		// Stock stays decremented and the reservation is committed.
		require.Equal(t, 8, dbtest.ItemQuantity(t, s.DB, itemID))
		require.Equal(t, "committed", dbtest.ReservationStatus(t, s.DB, checkout.ReservationID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"/"+checkout.OrderID.String(), nil, token)
		var got response.OrderResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)

		want := response.OrderResponse{
			ID:            checkout.OrderID,
			ReservationID: checkout.ReservationID,
			ItemID:        itemID,
			ItemName:      "Mechanical Keyboard",
			Quantity:      2,
			AmountCents:   1000,
			PaymentMethod: "card",
			Status:        "success",
		}
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(response.OrderResponse{}, "CreatedAt", "UpdatedAt")); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("replayed webhook is acknowledged without reapplying", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		checkout := s.initiate(t, token, itemID, 2)
		_, code := s.confirm(t, checkout.ReservationID, "success")
		require.Equal(t, http.StatusOK, code)

		replayed, code := s.confirm(t, checkout.ReservationID, "success")
		require.Equal(t, http.StatusOK, code)
		require.True(t, replayed.Replayed)
		require.Equal(t, "success", replayed.OrderStatus)
		require.Equal(t, 8, dbtest.ItemQuantity(t, s.DB, itemID))
	})

	s.Run("success on an expired hold finalizes failed, and its replay says so", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		checkout := s.initiate(t, token, itemID, 2)
		dbtest.ExpireReservation(t, s.DB, checkout.ReservationID)

		confirmed, code := s.confirm(t, checkout.ReservationID, "success")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "failed", confirmed.OrderStatus)
		require.False(t, confirmed.Replayed)
		require.Equal(t, 10, dbtest.ItemQuantity(t, s.DB, itemID))
		require.Equal(t, "released", dbtest.ReservationStatus(t, s.DB, checkout.ReservationID))

		// The retry is shed by the guard but still reports the recorded
		// outcome, not the one echoed by the provider.
		replayed, code := s.confirm(t, checkout.ReservationID, "success")
		require.Equal(t, http.StatusOK, code)
		require.True(t, replayed.Replayed)
		require.Equal(t, "failed", replayed.OrderStatus)
		require.Equal(t, 10, dbtest.ItemQuantity(t, s.DB, itemID))
	})

	s.Run("conflicting outcome after finalization is rejected", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		checkout := s.initiate(t, token, itemID, 2)
		_, code := s.confirm(t, checkout.ReservationID, "success")
		require.Equal(t, http.StatusOK, code)

		_, code = s.confirm(t, checkout.ReservationID, "failed")
		require.Equal(t, http.StatusConflict, code)
		require.Equal(t, 8, dbtest.ItemQuantity(t, s.DB, itemID))
	})

	s.Run("failed payment releases the hold", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		checkout := s.initiate(t, token, itemID, 3)
		require.Equal(t, 7, dbtest.ItemQuantity(t, s.DB, itemID))

		confirmed, code := s.confirm(t, checkout.ReservationID, "failed")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "failed", confirmed.OrderStatus)

		require.Equal(t, 10, dbtest.ItemQuantity(t, s.DB, itemID))
		require.Equal(t, "released", dbtest.ReservationStatus(t, s.DB, checkout.ReservationID))
	})

	s.Run("insufficient stock rejects the checkout", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 3)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.InitiateCheckoutRequest{ItemID: itemID, Quantity: 5, PaymentMethod: "card"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Insufficient stock")
		require.Equal(t, 3, dbtest.ItemQuantity(t, s.DB, itemID))
	})

	s.Run("checkout requires authentication", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.InitiateCheckoutRequest{ItemID: itemID, Quantity: 1, PaymentMethod: "card"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func (s *CheckoutSuite) TestCancelCheckout() {
	s.Run("owner can cancel a held reservation", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		checkout := s.initiate(t, token, itemID, 2)
		require.Equal(t, 8, dbtest.ItemQuantity(t, s.DB, itemID))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			checkoutURL+"/"+checkout.ReservationID.String()+"/cancel", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		require.Equal(t, 10, dbtest.ItemQuantity(t, s.DB, itemID))
		require.Equal(t, "released", dbtest.ReservationStatus(t, s.DB, checkout.ReservationID))
	})

	s.Run("another buyer cannot cancel the reservation", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		ownerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "owner@example.com", "customer")
		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", "customer")

		checkout := s.initiate(t, ownerToken, itemID, 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			checkoutURL+"/"+checkout.ReservationID.String()+"/cancel", nil, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "another buyer")

		require.Equal(t, 8, dbtest.ItemQuantity(t, s.DB, itemID))
		require.Equal(t, "held", dbtest.ReservationStatus(t, s.DB, checkout.ReservationID))
	})

	s.Run("committed reservation cannot be cancelled", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 10)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		checkout := s.initiate(t, token, itemID, 2)
		_, code := s.confirm(t, checkout.ReservationID, "success")
		require.Equal(t, http.StatusOK, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			checkoutURL+"/"+checkout.ReservationID.String()+"/cancel", nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already terminal")
	})
}

func (s *CheckoutSuite) TestRestock() {
	s.Run("admin restock raises availability", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 2)
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", "admin")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			itemsURL+"/"+itemID.String()+"/restock", request.RestockRequest{Quantity: 5}, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		require.Equal(t, 7, dbtest.ItemQuantity(t, s.DB, itemID))
	})

	s.Run("customer cannot restock", func() {
		t := s.T()
		itemID := dbtest.CreateTestItem(t, s.DB, "Mechanical Keyboard", 500, 2)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			itemsURL+"/"+itemID.String()+"/restock", request.RestockRequest{Quantity: 5}, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		require.Equal(t, 2, dbtest.ItemQuantity(t, s.DB, itemID))
	})
}
