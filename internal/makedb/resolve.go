package makedb

import (
	"context"
	"time"
)

// Resolver answers "what does this identifier mean" queries from a Store.
// It never triggers a refresh itself.
type Resolver struct {
	Store Store
	Wait  time.Duration // bounded wait when the Table is not available yet
}

func NewResolver(store Store, wait time.Duration) *Resolver {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Resolver{Store: store, Wait: wait}
}

// Resolve returns the definition of the word at position in line. When the
// document has no Table it waits at most r.Wait for a refresh to land, then
// gives up.
func (r *Resolver) Resolve(ctx context.Context, uri string, line string, position int) (string, bool) {
	word := Word(line, position)
	if word == "" {
		return "", false
	}

	table, ok := r.Store.Lookup(uri)
	if !ok {
		if table, ok = r.await(ctx, uri); !ok {
			log.Debugf("no symbols for %s after %s", uri, r.Wait)
			return "", false
		}
	}

	definition, ok := table[word]
	return definition, ok
}

func (r *Resolver) await(ctx context.Context, uri string) (Table, bool) {
	timer := time.NewTimer(r.Wait)
	defer timer.Stop()

	select {
	case <-r.Store.Ready(uri):
	case <-timer.C:
	case <-ctx.Done():
		return nil, false
	}
	return r.Store.Lookup(uri)
}
