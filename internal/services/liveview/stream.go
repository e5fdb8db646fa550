package liveview

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Query describes a live view: which changes invalidate it and how to
// recompute it.
type Query[T any] struct {
	Name  string
	Match func(Change) bool
	Fetch func(ctx context.Context) (T, error)
}

// Snapshot is one evaluation of a Query. Err is set when Fetch failed; the
// stream keeps running and retries on the next matching change.
type Snapshot[T any] struct {
	Data T
	Err  error
	At   time.Time
}

// Stream delivers an initial snapshot followed by a fresh one after every
// matching change. Snapshots the reader has not taken yet are replaced by
// newer ones, so a slow reader only ever sees the latest state.
type Stream[T any] struct {
	// C is closed once the stream stops.
	C <-chan Snapshot[T]

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Subscribe starts a stream bound to ctx. The stream stops when ctx is done or
// Close is called.
func Subscribe[T any](ctx context.Context, hub *Hub, q Query[T]) *Stream[T] {
	ctx, cancel := context.WithCancel(ctx)

	out := make(chan Snapshot[T])
	dirty := make(chan struct{}, 1)
	dirty <- struct{}{}

	unsubscribe := hub.subscribe(q.Match, func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	})

	s := &Stream[T]{
		C:      out,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		defer close(out)
		defer unsubscribe()

		s.run(ctx, q, dirty, out)
	}()

	return s
}

func (s *Stream[T]) run(ctx context.Context, q Query[T], dirty <-chan struct{}, out chan<- Snapshot[T]) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-dirty:
		}

		// A change arriving while the reader is busy replaces the pending
		// snapshot instead of queueing behind it.
		for delivered := false; !delivered; {
			data, err := q.Fetch(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				zap.L().Warn("live view fetch failed", zap.String("view", q.Name), zap.Error(err))
			}

			select {
			case <-ctx.Done():
				return
			case out <- Snapshot[T]{Data: data, Err: err, At: time.Now()}:
				delivered = true
			case <-dirty:
			}
		}
	}
}

// Close stops the stream and waits for its goroutine to exit. Safe to call
// more than once.
func (s *Stream[T]) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed after the stream has stopped.
func (s *Stream[T]) Done() <-chan struct{} {
	return s.done
}
