// Package cache provides the page cache used for the global index listing.
// The cache is handed to the routes explicitly rather than accessed as
// global state, so tests can swap it out or disable it.
package cache

import (
	"context"
	"time"
)

// PageCache memoizes rendered listing output with a TTL. Writes to the
// entity store never invalidate entries; staleness resolves only by expiry
// or an explicit Flush. Concurrent misses may recompute the same key
// independently; the last writer wins.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
	// Flush drops every entry. Used by administrative and test paths.
	Flush(ctx context.Context) error
}
