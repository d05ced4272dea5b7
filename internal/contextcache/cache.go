// Package contextcache holds recently assembled assistant contexts per user.
// The cache is purely an optimization: losing an entry only means recomputing
// the context on the next request.
package contextcache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hogar-app/hogar/internal/model"
)

// Cache maps a user identifier to its last assembled AssistantContext.
type Cache struct {
	c *gocache.Cache
}

// New creates a cache with the given expiry window. Expiry is checked lazily
// on read; no background sweeper runs.
func New(ttl time.Duration) *Cache {
	return &Cache{c: gocache.New(ttl, 0)}
}

func (c *Cache) Get(userID string) (*model.AssistantContext, bool) {
	v, ok := c.c.Get(userID)
	if !ok {
		return nil, false
	}
	return v.(*model.AssistantContext), true
}

func (c *Cache) Set(userID string, ctx *model.AssistantContext) {
	c.c.SetDefault(userID, ctx)
}

func (c *Cache) Evict(userID string) {
	c.c.Delete(userID)
}
