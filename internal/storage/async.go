// ABOUTME: Asynchronous request/response wrapper around a Repository.
// ABOUTME: A single worker runs requests in submission order and resolves Futures.
package storage

import (
	"context"
	"database/sql"
	"sync"

	"github.com/harperreed/bmi/internal/bmi"
	"github.com/harperreed/bmi/internal/models"
)

// queueDepth bounds pending requests before Submit blocks.
const queueDepth = 64

// Future is the pending result of one store request.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a Future that has already completed with v and err.
func Resolved[T any](v T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(v, err)
	return f
}

func (f *Future[T]) resolve(v T, err error) {
	f.val = v
	f.err = err
	close(f.done)
}

// Done is closed once the request has completed or failed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the request completes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the request completes. Cancellation is observed by the
// worker, so the result always reports whether the request took effect.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Async serializes every store operation on one worker goroutine. A request
// submitted after another request's Future resolved observes its effects.
type Async struct {
	repo Repository
	reqs chan func()
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewAsync starts the worker for repo. The caller owns the returned queue and
// must Close it, which also closes repo.
func NewAsync(repo Repository) *Async {
	a := &Async{
		repo: repo,
		reqs: make(chan func(), queueDepth),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *Async) run() {
	defer a.wg.Done()
	for req := range a.reqs {
		req()
	}
}

// Repository returns the wrapped repository.
func (a *Async) Repository() Repository {
	return a.repo
}

// EnsureSchema queues schema initialization.
func (a *Async) EnsureSchema(ctx context.Context) *Future[struct{}] {
	return submit(a, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.repo.EnsureSchema(ctx)
	})
}

// Append queues an insert of c.
func (a *Async) Append(ctx context.Context, c bmi.Computation) *Future[int64] {
	return submit(a, ctx, func(ctx context.Context) (int64, error) {
		return a.repo.Append(ctx, c)
	})
}

// ListAll queues a full history read.
func (a *Async) ListAll(ctx context.Context) *Future[[]models.Measurement] {
	return submit(a, ctx, a.repo.ListAll)
}

// Count queues a row count.
func (a *Async) Count(ctx context.Context) *Future[int] {
	return submit(a, ctx, a.repo.Count)
}

// ImportLegacy queues a legacy import so it runs between, never alongside,
// the session's other requests.
func (a *Async) ImportLegacy(ctx context.Context, legacy *sql.DB, dryRun bool) *Future[*LegacySummary] {
	imp, ok := a.repo.(LegacyImporter)
	if !ok {
		return Resolved[*LegacySummary](nil, ErrLegacyUnsupported)
	}
	return submit(a, ctx, func(ctx context.Context) (*LegacySummary, error) {
		return imp.ImportLegacy(ctx, legacy, dryRun)
	})
}

// Close stops accepting requests, drains the queue, and closes the repository.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.reqs)
	a.mu.Unlock()

	a.wg.Wait()
	return a.repo.Close()
}

func submit[T any](a *Async, ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		var zero T
		return Resolved(zero, ErrClosed)
	}

	a.reqs <- func() {
		if err := ctx.Err(); err != nil {
			var zero T
			f.resolve(zero, err)
			return
		}
		v, err := fn(ctx)
		f.resolve(v, err)
	}
	return f
}
