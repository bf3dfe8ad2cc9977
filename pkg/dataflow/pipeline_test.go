package dataflow_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hr_records/pkg/dataflow"
)

func collect[T any](ctx context.Context, s dataflow.Stream[T]) []T {
	var (
		mu  sync.Mutex
		out []T
	)
	_ = dataflow.ForEach(ctx, s, func(v T) error {
		mu.Lock()
		out = append(out, v)
		mu.Unlock()
		return nil
	})
	return out
}

func TestMapWithWorkersAndRetry(t *testing.T) {
	ctx := context.Background()

	var attempts int32
	parsed := dataflow.Map(ctx, dataflow.From(ctx, "1", "2", "x", "3"), strconv.Atoi, dataflow.WithWorkers(2))
	doubled := dataflow.Map(ctx, parsed, func(n int) (int, error) {
		if n == 3 && atomic.AddInt32(&attempts, 1) < 3 {
			return 0, errors.New("transient")
		}
		return n * 2, nil
	}, dataflow.WithRetry(3, func(int) time.Duration { return time.Millisecond }))

	got := collect(ctx, doubled)
	sort.Ints(got)
	assert.Equal(t, []int{2, 4, 6}, got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestBatch(t *testing.T) {
	ctx := context.Background()

	batches := collect(ctx, dataflow.Batch(ctx, dataflow.From(ctx, 1, 2, 3, 4, 5), 2))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, batches)

	assert.Empty(t, collect(ctx, dataflow.Batch(ctx, dataflow.From[int](ctx), 2)))
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("streams emitted items", func(t *testing.T) {
		s, wait := dataflow.Generate(ctx, func(emit func(int) bool) error {
			for i := 1; i <= 3; i++ {
				if !emit(i) {
					return nil
				}
			}
			return nil
		})
		assert.Equal(t, []int{1, 2, 3}, collect(ctx, s))
		assert.NoError(t, wait())
	})

	t.Run("reports producer error", func(t *testing.T) {
		s, wait := dataflow.Generate(ctx, func(emit func(int) bool) error {
			emit(1)
			return assert.AnError
		}, dataflow.WithBufferSize(1))
		assert.Equal(t, []int{1}, collect(ctx, s))
		assert.ErrorIs(t, wait(), assert.AnError)
	})
}

func TestForEachErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("first unhandled error is returned", func(t *testing.T) {
		err := dataflow.ForEach(ctx, dataflow.From(ctx, 1, 2, 3), func(n int) error {
			if n == 2 {
				return assert.AnError
			}
			return nil
		})
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("handled errors are skipped", func(t *testing.T) {
		var skipped int32
		err := dataflow.ForEach(ctx, dataflow.From(ctx, 1, 2, 3), func(n int) error {
			return assert.AnError
		}, dataflow.WithErrorHandler(func(error) bool {
			atomic.AddInt32(&skipped, 1)
			return true
		}))
		require.NoError(t, err)
		assert.Equal(t, int32(3), skipped)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		never := make(chan int)
		assert.ErrorIs(t, dataflow.ForEach(cctx, dataflow.Stream[int](never), func(int) error { return nil }), context.Canceled)
	})
}

func TestExponentialBackoff(t *testing.T) {
	b := dataflow.ExponentialBackoff(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, b(1))
	assert.Equal(t, 40*time.Millisecond, b(3))
}
