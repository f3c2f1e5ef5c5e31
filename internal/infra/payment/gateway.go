package payment

import (
	"net/http"

	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
)

var (
	ErrUnknownProvider = errs.New("unknown payment provider")
	errSessionRequest  = errs.New("payment session request failed")
	errSessionDecode   = errs.New("failed to decode payment session response")
	errSessionRejected = errs.New("payment provider rejected session")
)

// NewGateway selects the provider implementation from configuration. Both
// providers share the HTTP client so the request timeout applies uniformly.
func NewGateway(cfg config.PaymentConfig) (commands.PaymentGateway, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout}

	switch cfg.Provider {
	case "stripe":
		return NewStripeGateway(cfg, client), nil
	case "mercadopago":
		return NewMercadoPagoGateway(cfg, client), nil
	default:
		return nil, errs.Wrapf(ErrUnknownProvider, "provider %q", cfg.Provider)
	}
}
