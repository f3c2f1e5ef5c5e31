package queries

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrItemNotFound = errs.New("item not found")

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	List(ctx context.Context) ([]*ItemView, error)
}

type ItemQueries interface {
	GetItem(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListItems(ctx context.Context) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	readStore ItemReadStore
}

func NewItemQueries(readStore ItemReadStore) ItemQueries {
	return &itemQueriesImpl{readStore: readStore}
}

func (q *itemQueriesImpl) GetItem(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}
	return view, nil
}

func (q *itemQueriesImpl) ListItems(ctx context.Context) ([]*ItemView, error) {
	views, err := q.readStore.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list items")
	}
	return views, nil
}
