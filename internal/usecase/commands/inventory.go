package commands

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidRestockQuantity = errs.New("restock quantity must be positive")

type InventoryCommands interface {
	Restock(ctx context.Context, itemID uuid.UUID, quantity int) error
}

type inventoryCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewInventoryCommands(uow shared.UnitOfWork) InventoryCommands {
	return &inventoryCommandsImpl{uow: uow}
}

func (c *inventoryCommandsImpl) Restock(ctx context.Context, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidRestockQuantity
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ItemByID(ctx, itemID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrItemNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Items().Increment(ctx, itemID, quantity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
