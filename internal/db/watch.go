package db

import (
	"context"
	"log/slog"
)

// WatchMoods streams the actor's ordered records: once immediately and again
// after every insert or clear. Bursts of changes may be coalesced. The channel
// is closed when ctx ends.
func (db *DB) WatchMoods(ctx context.Context, actor string) <-chan []MoodRecord {
	out := make(chan []MoodRecord)
	changed := db.subscribe()

	go func() {
		defer close(out)
		defer db.unsubscribe(changed)

		for {
			records, err := db.ListMoods(ctx, actor)
			if err != nil {
				if ctx.Err() == nil {
					slog.Error("[DB] Watch query failed", slog.String("error", err.Error()))
				}
				return
			}

			select {
			case out <- records:
			case <-ctx.Done():
				return
			}

			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (db *DB) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	db.mu.Lock()
	db.watchers[ch] = struct{}{}
	db.mu.Unlock()
	return ch
}

func (db *DB) unsubscribe(ch chan struct{}) {
	db.mu.Lock()
	delete(db.watchers, ch)
	db.mu.Unlock()
}

func (db *DB) notify() {
	db.mu.Lock()
	defer db.mu.Unlock()
	for ch := range db.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
