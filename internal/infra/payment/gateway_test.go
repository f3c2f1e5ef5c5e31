//go:build unit

package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/infra/payment"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRequest() commands.SessionRequest {
	return commands.SessionRequest{
		ReservationID: uuid.New(),
		OrderID:       uuid.New(),
		BuyerID:       uuid.New(),
		ItemName:      "Keyboard",
		Quantity:      2,
		AmountCents:   1000,
		SuccessURL:    "http://localhost:3000/checkout/success",
		CancelURL:     "http://localhost:3000/checkout/cancel",
	}
}

func paymentConfig(baseURL, provider string) config.PaymentConfig {
	return config.PaymentConfig{
		Provider:       provider,
		APIBaseURL:     baseURL,
		APIKey:         "sk_test_dummy",
		RequestTimeout: time.Second,
		SuccessURL:     "http://localhost:3000/checkout/success",
		CancelURL:      "http://localhost:3000/checkout/cancel",
	}
}

func TestStripeGateway(t *testing.T) {
	t.Run("creates a checkout session", func(t *testing.T) {
		var gotPath, gotAuth, gotRef string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, r.ParseForm())
			gotRef = r.PostForm.Get("client_reference_id")

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id":  "cs_test_123",
				"url": "https://checkout.stripe.com/pay/cs_test_123",
			})
		}))
		defer srv.Close()

		gw := payment.NewStripeGateway(paymentConfig(srv.URL, "stripe"), srv.Client())
		req := sessionRequest()

		handle, err := gw.CreateSession(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", handle.SessionID)
		assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", handle.RedirectURL)
		assert.Equal(t, "/v1/checkout/sessions", gotPath)
		assert.Equal(t, "Bearer sk_test_dummy", gotAuth)
		assert.Equal(t, req.ReservationID.String(), gotRef)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
		}))
		defer srv.Close()

		gw := payment.NewStripeGateway(paymentConfig(srv.URL, "stripe"), srv.Client())

		_, err := gw.CreateSession(context.Background(), sessionRequest())
		require.Error(t, err)
	})

	t.Run("missing session url is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_test_123"}`))
		}))
		defer srv.Close()

		gw := payment.NewStripeGateway(paymentConfig(srv.URL, "stripe"), srv.Client())

		_, err := gw.CreateSession(context.Background(), sessionRequest())
		require.Error(t, err)
	})
}

func TestMercadoPagoGateway(t *testing.T) {
	t.Run("creates a checkout preference", func(t *testing.T) {
		var gotPath, gotRef string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			var body struct {
				ExternalReference string `json:"external_reference"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			gotRef = body.ExternalReference

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id":         "pref_123",
				"init_point": "https://www.mercadopago.com/checkout/v1/redirect?pref_id=pref_123",
			})
		}))
		defer srv.Close()

		gw := payment.NewMercadoPagoGateway(paymentConfig(srv.URL, "mercadopago"), srv.Client())
		req := sessionRequest()

		handle, err := gw.CreateSession(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "pref_123", handle.SessionID)
		assert.Contains(t, handle.RedirectURL, "pref_123")
		assert.Equal(t, "/checkout/preferences", gotPath)
		assert.Equal(t, req.ReservationID.String(), gotRef)
	})

	t.Run("provider rejection is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		gw := payment.NewMercadoPagoGateway(paymentConfig(srv.URL, "mercadopago"), srv.Client())

		_, err := gw.CreateSession(context.Background(), sessionRequest())
		require.Error(t, err)
	})
}

func TestNewGateway(t *testing.T) {
	t.Run("stripe provider", func(t *testing.T) {
		gw, err := payment.NewGateway(paymentConfig("http://localhost:18080", "stripe"))
		require.NoError(t, err)
		assert.IsType(t, &payment.StripeGateway{}, gw)
	})

	t.Run("mercadopago provider", func(t *testing.T) {
		gw, err := payment.NewGateway(paymentConfig("http://localhost:18080", "mercadopago"))
		require.NoError(t, err)
		assert.IsType(t, &payment.MercadoPagoGateway{}, gw)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := payment.NewGateway(paymentConfig("http://localhost:18080", "paypal"))
		require.ErrorIs(t, err, payment.ErrUnknownProvider)
	})
}
