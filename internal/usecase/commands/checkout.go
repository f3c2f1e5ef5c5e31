package commands

import (
	"context"
	"log/slog"

	"storefront/internal/domain/item"
	"storefront/internal/domain/order"
	"storefront/internal/domain/reservation"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound        = errs.New("item not found")
	ErrInsufficientStock   = errs.New("insufficient stock")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrNotReservationOwner = errs.New("reservation belongs to another buyer")
	ErrAlreadyTerminal     = errs.New("reservation already terminal")
	ErrAlreadyFinalized    = errs.New("order already finalized with a different outcome")
	ErrGatewayFailure      = errs.New("payment gateway failure")
	ErrInvalidOutcome      = errs.New("invalid confirmation outcome")
	ErrDomainValidation    = errs.New("domain validation error")

	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type InitiateCheckoutParams struct {
	ItemID        uuid.UUID
	Quantity      int
	PaymentMethod string
}

type CheckoutResult struct {
	ReservationID uuid.UUID
	OrderID       uuid.UUID
	SessionURL    string
}

type ConfirmResult struct {
	ReservationID uuid.UUID
	OrderStatus   order.Status
	// IsReplayed marks confirmations that arrived after the state was already
	// final; the provider's retry gets the same answer without side effects.
	IsReplayed bool
}

type CheckoutCommands interface {
	InitiateCheckout(ctx context.Context, params InitiateCheckoutParams, buyerID uuid.UUID) (*CheckoutResult, error)
	ConfirmCheckout(ctx context.Context, reservationID uuid.UUID, outcome order.Status) (*ConfirmResult, error)
	CancelCheckout(ctx context.Context, reservationID, buyerID uuid.UUID) error
	ReleaseExpired(ctx context.Context, reservationID uuid.UUID) (bool, error)
}

type checkoutCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
	cfg     config.PaymentConfig
	ttl     config.ReservationConfig
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	clock clock.Clock,
	cfg config.Config,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:     uow,
		gateway: gateway,
		clock:   clock,
		cfg:     cfg.Payment,
		ttl:     cfg.Reservation,
	}
}

// InitiateCheckout reserves stock and records the pending order in one
// transaction, then opens a provider session outside it. A gateway failure
// compensates by releasing the hold, so stock is never stranded on a session
// that never existed.
func (c *checkoutCommandsImpl) InitiateCheckout(
	ctx context.Context,
	params InitiateCheckoutParams,
	buyerID uuid.UUID,
) (*CheckoutResult, error) {
	qty, err := item.NewQuantity(params.Quantity)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	method := order.PaymentMethod(params.PaymentMethod)
	if !method.IsValid() {
		return nil, errs.Mark(order.ErrInvalidMethod, ErrDomainValidation)
	}

	var (
		res      *reservation.Reservation
		orderID  uuid.UUID
		itemSnap *shared.ItemSnapshot
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		itemSnap, err = tx.Reads().ItemByID(ctx, params.ItemID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrItemNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Items().TryDecrement(ctx, params.ItemID, qty.Int()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInsufficientStock
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		res = reservation.NewReservation(params.ItemID, buyerID, qty, c.clock.Now(), c.ttl.TTL)
		if _, err := tx.Reservations().Create(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		unitPrice, err := item.NewMoney(itemSnap.UnitPriceCents)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		ord, err := order.NewOrder(res.ID(), buyerID, qty, unitPrice, method)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		id, _, err := tx.Orders().InsertPending(ctx, ord)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		orderID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	handle, err := c.gateway.CreateSession(ctx, SessionRequest{
		ReservationID: res.ID(),
		OrderID:       orderID,
		BuyerID:       buyerID,
		ItemName:      itemSnap.DisplayName,
		Quantity:      qty.Int(),
		AmountCents:   itemSnap.UnitPriceCents * int64(qty.Int()),
		SuccessURL:    c.cfg.SuccessURL,
		CancelURL:     c.cfg.CancelURL,
	})
	if err != nil {
		slog.Warn("payment session creation failed, releasing reservation",
			"reservation_id", res.ID(), "error", err.Error())
		if releaseErr := c.releaseAndFail(ctx, res.ID()); releaseErr != nil {
			slog.Error("failed to release reservation after gateway failure",
				"reservation_id", res.ID(), "error", releaseErr.Error())
		}
		return nil, errs.Mark(err, ErrGatewayFailure)
	}

	return &CheckoutResult{
		ReservationID: res.ID(),
		OrderID:       orderID,
		SessionURL:    handle.RedirectURL,
	}, nil
}

// ConfirmCheckout applies the provider's outcome exactly once. Repeated
// confirmations with the same outcome replay the final state; a conflicting
// outcome is rejected so the recorded result never flaps.
func (c *checkoutCommandsImpl) ConfirmCheckout(
	ctx context.Context,
	reservationID uuid.UUID,
	outcome order.Status,
) (*ConfirmResult, error) {
	if !outcome.IsFinal() {
		return nil, ErrInvalidOutcome
	}

	var result *ConfirmResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		switch reservation.Status(snap.Status) {
		case reservation.StatusHeld:
			// A confirmation racing the sweep past expiry releases instead of
			// committing; the buyer re-initiates checkout.
			if outcome == order.StatusFailed || !c.clock.Now().Before(snap.ExpiresAt) {
				if err := releaseHeld(ctx, tx, snap); err != nil {
					return err
				}
				result = &ConfirmResult{ReservationID: reservationID, OrderStatus: order.StatusFailed}
				return nil
			}

			ok, err := tx.Reservations().TransitionStatus(ctx, reservationID, reservation.StatusHeld, reservation.StatusCommitted)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if !ok {
				return ErrAlreadyTerminal
			}
			if _, err := tx.Orders().FinalizeByReservationID(ctx, reservationID, order.StatusSuccess); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			result = &ConfirmResult{ReservationID: reservationID, OrderStatus: order.StatusSuccess}
			return nil

		case reservation.StatusCommitted:
			if outcome != order.StatusSuccess {
				return ErrAlreadyFinalized
			}
			result = &ConfirmResult{ReservationID: reservationID, OrderStatus: order.StatusSuccess, IsReplayed: true}
			return nil

		case reservation.StatusReleased:
			if outcome != order.StatusFailed {
				return ErrAlreadyFinalized
			}
			result = &ConfirmResult{ReservationID: reservationID, OrderStatus: order.StatusFailed, IsReplayed: true}
			return nil

		default:
			return errs.New("unknown reservation status: " + snap.Status)
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *checkoutCommandsImpl) CancelCheckout(ctx context.Context, reservationID, buyerID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if snap.BuyerID != buyerID {
			return ErrNotReservationOwner
		}

		switch reservation.Status(snap.Status) {
		case reservation.StatusHeld:
			return releaseHeld(ctx, tx, snap)
		case reservation.StatusReleased:
			// Cancel of a released hold is success-of-intent.
			return nil
		default:
			return ErrAlreadyTerminal
		}
	})
}

// ReleaseExpired releases one expired hold. The status predicate inside the
// transaction makes the release happen at most once, no matter how many
// sweepers or confirmations race for it.
func (c *checkoutCommandsImpl) ReleaseExpired(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	released := false
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if reservation.Status(snap.Status) != reservation.StatusHeld || c.clock.Now().Before(snap.ExpiresAt) {
			return nil
		}

		if err := releaseHeld(ctx, tx, snap); err != nil {
			return err
		}
		released = true
		return nil
	})
	return released, err
}

// releaseHeld is the single compensation path: flip held -> released, restore
// the held quantity, and fail the linked order. Callers run it inside a
// transaction so the three writes land together.
func releaseHeld(ctx context.Context, tx shared.Tx, snap *shared.ReservationSnapshot) error {
	ok, err := tx.Reservations().TransitionStatus(ctx, snap.ID, reservation.StatusHeld, reservation.StatusReleased)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		return ErrAlreadyTerminal
	}

	if err := tx.Items().Increment(ctx, snap.ItemID, snap.Quantity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if _, err := tx.Orders().FinalizeByReservationID(ctx, snap.ID, order.StatusFailed); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *checkoutCommandsImpl) releaseAndFail(ctx context.Context, reservationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if reservation.Status(snap.Status) != reservation.StatusHeld {
			return nil
		}
		return releaseHeld(ctx, tx, snap)
	})
}
