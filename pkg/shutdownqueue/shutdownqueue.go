// Package shutdownqueue provides a LIFO queue of named cleanup tasks.
//
// The owner of a process creates one Queue, registers tasks as resources are
// opened, and drains it once on exit:
//
//	q := shutdownqueue.New()
//	q.Add("db", func(ctx context.Context) error { return db.Close() })
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	err := q.Shutdown(ctx)
//
// Tasks run once, in reverse order of registration. Panics are recovered.
// Shutdown is idempotent and returns an aggregated error via errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a shutdown function. It should honor ctx and return an error
// if it can't finish (or ctx is canceled).
type Task func(ctx context.Context) error

type namedTask struct {
	name string
	fn   Task
}

// Queue holds cleanup tasks until Shutdown drains them.
type Queue struct {
	mu     sync.Mutex
	tasks  []namedTask
	closed bool
}

func New() *Queue {
	return &Queue{tasks: make([]namedTask, 0, 8)}
}

// Add registers a task to be run on Shutdown, in LIFO order.
// Safe to call from any goroutine.
// If t is nil or shutdown has already started, Add does nothing.
func (q *Queue) Add(name string, t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.tasks = append(q.tasks, namedTask{name: name, fn: t})
}

// Len reports how many tasks are still queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.tasks)
}

// Shutdown drains all registered tasks in LIFO order.
// It is safe to call multiple times; after the first complete (or partial) run,
// subsequent calls are no-ops.
//
// If ctx is canceled or times out mid-drain, Shutdown stops early and returns
// an error that includes both the context error and any task errors so far.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()

	if q.closed && len(q.tasks) == 0 {
		q.mu.Unlock()

		return nil
	}

	q.closed = true

	tasks := q.tasks

	q.tasks = nil

	q.mu.Unlock()

	var errs []error

	for i := len(tasks) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled before %q: %w", tasks[i].name, ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, tasks[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t namedTask) (err error) {
	start := time.Now()

	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task %q: %v", t.name, r)
		}

		if err != nil {
			zap.L().Warn("shutdown task failed", zap.String("task", t.name), zap.Error(err))
			return
		}

		zap.L().Info("shutdown task done", zap.String("task", t.name), zap.Duration("took", time.Since(start)))
	}()

	err = t.fn(ctx)
	if err != nil {
		return fmt.Errorf("shutdown task %q: %w", t.name, err)
	}

	return nil
}
