package geocode

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/ttpr0/go-cityroute/geo"
	"golang.org/x/exp/slog"
)

//*******************************************
// lru cached geocoder
//*******************************************

// Cached remembers resolved coordinates and not found answers. Transport
// failures are not cached.
type Cached struct {
	inner IGeocoder
	cache gcache.Cache
}

func NewCached(inner IGeocoder, size int, expiration time.Duration) *Cached {
	if size < 1 {
		size = 1000
	}
	builder := gcache.New(size).LRU()
	if expiration > 0 {
		builder = builder.Expiration(expiration)
	}
	return &Cached{
		inner: inner,
		cache: builder.Build(),
	}
}

type _CacheEntry struct {
	coord geo.Coord
	found bool
}

func _CacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func (self *Cached) Resolve(ctx context.Context, address string) (geo.Coord, error) {
	key := _CacheKey(address)
	if cached, err := self.cache.Get(key); err == nil {
		if entry, ok := cached.(_CacheEntry); ok {
			slog.Debug("geocoder cache hit", "address", key)
			if !entry.found {
				return geo.Coord{}, ErrNotFound
			}
			return entry.coord, nil
		}
	}
	c, err := self.inner.Resolve(ctx, address)
	switch {
	case err == nil:
		self.cache.Set(key, _CacheEntry{coord: c, found: true})
	case errors.Is(err, ErrNotFound):
		self.cache.Set(key, _CacheEntry{found: false})
	}
	return c, err
}

func (self *Cached) Len() int {
	return self.cache.Len(false)
}
