package fetch

import (
	"context"
	"fmt"

	"github.com/bnema/matchday-bot/internal/adapters/cache/ttl"
)

// Result is what Cached returns: the value and whether it came from the cache.
type Result[T any] struct {
	Data      T
	FromCache bool
}

// Cached consults cache before running op through Do. A hit skips the throttle and backoff entirely;
// a successful miss is stored under key. Failures are never cached. Concurrent misses on the same key
// share one upstream call, which outlives any single caller's cancellation so the others still get
// the value.
func Cached[T any](ctx context.Context, f *Fetcher, cache *ttl.Cache[T], key string, op func(context.Context) (T, error)) (Result[T], error) {
	if value, ok := cache.Get(key); ok {
		return Result[T]{Data: value, FromCache: true}, nil
	}

	detached := context.WithoutCancel(ctx)
	results := f.group.DoChan(key, func() (any, error) {
		value, err := Do(detached, f, op)
		if err != nil {
			return nil, err
		}
		cache.Set(key, value)
		return value, nil
	})

	var shared any
	select {
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return Result[T]{}, res.Err
		}
		shared = res.Val
	}

	value, ok := shared.(T)
	if !ok {
		return Result[T]{}, fmt.Errorf("fetch %q: unexpected shared result %T", key, shared)
	}

	return Result[T]{Data: value}, nil
}
