package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"studentregistry/internal/registry/models"
	"studentregistry/pkg/domain"
)

// CachedStore decorates a backing store with a Redis read-through cache for
// name lookups. Cache failures degrade to the backing store and never fail
// the call; the cache is an optimization, not a source of truth.
type CachedStore struct {
	backing Store
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
}

// Store is the backing interface the cache decorates. It matches the
// service-side StudentStore contract.
type Store interface {
	Create(ctx context.Context, record *models.Student) error
	Rename(ctx context.Context, id domain.StudentID, name string, now time.Time) error
	FindName(ctx context.Context, id domain.StudentID) (string, error)
	Exists(ctx context.Context, id domain.StudentID) (bool, error)
}

func NewCached(backing Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{backing: backing, client: client, ttl: ttl, logger: logger}
}

func cacheKey(id domain.StudentID) string {
	return fmt.Sprintf("student:name:%s", id)
}

// Create writes through: the record goes to the backing store first, then
// the cache. A failed cache write only costs a later miss.
func (c *CachedStore) Create(ctx context.Context, record *models.Student) error {
	if err := c.backing.Create(ctx, record); err != nil {
		return err
	}
	c.set(ctx, record.ID, record.Name)
	return nil
}

func (c *CachedStore) Rename(ctx context.Context, id domain.StudentID, name string, now time.Time) error {
	if err := c.backing.Rename(ctx, id, name, now); err != nil {
		return err
	}
	c.set(ctx, id, name)
	return nil
}

func (c *CachedStore) FindName(ctx context.Context, id domain.StudentID) (string, error) {
	name, err := c.client.Get(ctx, cacheKey(id)).Result()
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "cache read failed, falling back to store",
			"student_id", id,
			"error", err,
		)
	}

	name, err = c.backing.FindName(ctx, id)
	if err != nil {
		return "", err
	}
	c.set(ctx, id, name)
	return name, nil
}

// Exists consults the cache first: a cached name proves presence. Misses
// fall through to the backing store since absence is never cached.
func (c *CachedStore) Exists(ctx context.Context, id domain.StudentID) (bool, error) {
	if err := c.client.Get(ctx, cacheKey(id)).Err(); err == nil {
		return true, nil
	}
	return c.backing.Exists(ctx, id)
}

func (c *CachedStore) set(ctx context.Context, id domain.StudentID, name string) {
	if err := c.client.Set(ctx, cacheKey(id), name, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache write failed",
			"student_id", id,
			"error", err,
		)
	}
}
