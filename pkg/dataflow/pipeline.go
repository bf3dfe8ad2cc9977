// Package dataflow builds channel pipelines out of typed stages.
package dataflow

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Stream is a read-only channel of items.
type Stream[T any] <-chan T

// From creates a stream from a slice.
func From[T any](ctx context.Context, items ...T) Stream[T] {
	out := make(chan T, len(items))
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()
	return out
}

// Generate runs produce in its own goroutine and streams what it emits.
// The returned wait func reports the producer's error once the stream is drained.
func Generate[T any](ctx context.Context, produce func(emit func(T) bool) error, opts ...Option) (Stream[T], func() error) {
	cfg := newConfig(opts)
	out := make(chan T, cfg.bufferSize)
	done := make(chan struct{})
	var err error

	go func() {
		defer close(done)
		defer close(out)
		err = produce(func(item T) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- item:
				return true
			}
		})
	}()

	return out, func() error {
		<-done
		if err == nil && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
}

// Map transforms the stream with fn. Failed items are dropped unless the
// error handler says otherwise. Supports parallelism via WithWorkers.
func Map[In, Out any](ctx context.Context, input Stream[In], fn func(In) (Out, error), opts ...Option) Stream[Out] {
	cfg := newConfig(opts)
	out := make(chan Out, cfg.bufferSize)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}
				var res Out
				err := cfg.attempt(ctx, func() error {
					var err error
					res, err = fn(msg)
					return err
				})
				if err != nil {
					if cfg.errorHandler != nil {
						cfg.errorHandler(err)
					}
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch groups items into slices of at most size. The last batch may be short.
func Batch[T any](ctx context.Context, input Stream[T], size int) Stream[[]T] {
	if size <= 0 {
		size = 1
	}
	out := make(chan []T)
	go func() {
		defer close(out)
		batch := make([]T, 0, size)
		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- batch:
				batch = make([]T, 0, size)
				return true
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					flush()
					return
				}
				batch = append(batch, msg)
				if len(batch) == size && !flush() {
					return
				}
			}
		}
	}()
	return out
}

// ForEach runs fn for every item and blocks until the stream is exhausted or
// ctx is cancelled. It returns the first unhandled error.
func ForEach[T any](ctx context.Context, input Stream[T], fn func(T) error, opts ...Option) error {
	cfg := newConfig(opts)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}
				err := cfg.attempt(ctx, func() error { return fn(msg) })
				if err == nil || errors.Is(err, ctx.Err()) {
					continue
				}
				if cfg.errorHandler != nil && cfg.errorHandler(err) {
					continue
				}
				errOnce.Do(func() { firstErr = err })
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return firstErr
}

// attempt runs fn once plus the configured retries.
func (c *config) attempt(ctx context.Context, fn func() error) error {
	err := fn()
	for i := 1; err != nil && i <= c.maxRetries; i++ {
		if c.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff(i)):
			}
		}
		err = fn()
	}
	return err
}
