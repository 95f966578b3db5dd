package locale

import (
	"context"
	"sync"
)

// broadcaster fans values out to subscribers. Each subscriber channel holds
// one value; a slow reader sees the latest value rather than blocking senders.
type broadcaster[T any] struct {
	mu       sync.Mutex
	watchers map[uint64]chan T
	nextID   uint64
}

func newBroadcaster[T any]() *broadcaster[T] {
	return &broadcaster[T]{
		watchers: make(map[uint64]chan T),
	}
}

// subscribe registers a watcher until ctx is done. When initial is non-nil its
// result is queued before any broadcast can reach the channel.
func (b *broadcaster[T]) subscribe(ctx context.Context, initial func() T) <-chan T {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan T, 1)
	if ctx.Err() != nil {
		close(ch)
		return ch
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	if initial != nil {
		ch <- initial()
	}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()
	return ch
}

func (b *broadcaster[T]) broadcast(value T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- value:
			continue
		default:
		}
		// replace the stale queued value
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- value:
		default:
		}
	}
}

func (b *broadcaster[T]) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.watchers)
}
