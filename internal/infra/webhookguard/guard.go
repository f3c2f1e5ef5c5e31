package webhookguard

import (
	"context"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "webhook:confirm:"

// Guard deduplicates confirmation callbacks before they hit the database. The
// database transition predicates remain the source of truth; the guard only
// sheds repeat deliveries cheaply. A Redis outage therefore fails open.
type Guard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewGuard(rdb *redis.Client, ttl time.Duration) *Guard {
	return &Guard{rdb: rdb, ttl: ttl}
}

// FirstDelivery reports whether this (reservation, outcome) pair has been seen
// within the TTL window. Errors are returned so the caller can decide to fail
// open.
func (g *Guard) FirstDelivery(ctx context.Context, reservationID uuid.UUID, outcome string) (bool, error) {
	key := keyPrefix + reservationID.String() + ":" + outcome
	ok, err := g.rdb.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return false, errs.Wrap(err, "webhook guard check failed")
	}
	return ok, nil
}

// Forget clears the marker so a later retry of a failed handler run is not
// mistaken for a replay.
func (g *Guard) Forget(ctx context.Context, reservationID uuid.UUID, outcome string) error {
	key := keyPrefix + reservationID.String() + ":" + outcome
	if err := g.rdb.Del(ctx, key).Err(); err != nil {
		return errs.Wrap(err, "webhook guard forget failed")
	}
	return nil
}
