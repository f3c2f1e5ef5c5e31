package queries

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrNotOrderOwner = errs.New("order belongs to another buyer")
)

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*OrderView, error)
	ListByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*OrderView, error)
}

type OrderQueries interface {
	GetOrder(ctx context.Context, id, buyerID uuid.UUID) (*OrderView, error)
	GetOrderByReservation(ctx context.Context, reservationID uuid.UUID) (*OrderView, error)
	ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) GetOrder(ctx context.Context, id, buyerID uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Wrap(err, "failed to find order")
	}
	if view.BuyerID != buyerID {
		// Hide other buyers' orders instead of acknowledging them.
		return nil, ErrOrderNotFound
	}
	return view, nil
}

func (q *orderQueriesImpl) GetOrderByReservation(ctx context.Context, reservationID uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByReservationID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Wrap(err, "failed to find order by reservation")
	}
	return view, nil
}

func (q *orderQueriesImpl) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*OrderView, error) {
	views, err := q.readStore.ListByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list buyer orders")
	}
	return views, nil
}
