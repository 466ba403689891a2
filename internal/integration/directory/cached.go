package directory

import (
	"context"
	"time"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

const (
	userKeyPrefix = "user:"
	orgKeyPrefix  = "org:"
)

// CachedDirectory memoizes lookups of another Provider for ttl. A ttl of
// zero keeps entries until Flush. Lookup errors are not cached.
type CachedDirectory struct {
	next  Provider
	cache *cache.Cache
}

func NewCachedDirectory(next Provider, ttl time.Duration) *CachedDirectory {
	cleanup := 2 * ttl
	if ttl <= 0 {
		ttl = cache.NoExpiration
		cleanup = 0
	}

	return &CachedDirectory{
		next:  next,
		cache: cache.New(ttl, cleanup),
	}
}

func (d *CachedDirectory) UserContext(ctx context.Context, userID string) (entity.ContextRecord, error) {
	return d.get(userKeyPrefix+userID, func() (entity.ContextRecord, error) {
		return d.next.UserContext(ctx, userID)
	})
}

func (d *CachedDirectory) OrgContext(ctx context.Context, orgID string) (entity.ContextRecord, error) {
	return d.get(orgKeyPrefix+orgID, func() (entity.ContextRecord, error) {
		return d.next.OrgContext(ctx, orgID)
	})
}

// Flush drops every cached record.
func (d *CachedDirectory) Flush() {
	d.cache.Flush()
}

func (d *CachedDirectory) get(key string, load func() (entity.ContextRecord, error)) (entity.ContextRecord, error) {
	if v, ok := d.cache.Get(key); ok {
		return v.(entity.ContextRecord), nil
	}

	record, err := load()
	if err != nil {
		return nil, err
	}

	d.cache.SetDefault(key, record)
	return record, nil
}
