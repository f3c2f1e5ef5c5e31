package bootstrap

import (
	"storefront/internal/infra/payment"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config) (commands.PaymentGateway, error) {
	return payment.NewGateway(cfg.Payment)
}
