package core

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/fluentrop/pkg/rop"
)

func TestWorkerOptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.Equal(t, 4, GetWorkerMaxCount(ctx, 4))
	assert.Equal(t, 2, GetWorkerMaxCount(WithWorkerOptions(ctx, 2), 4))
	assert.Equal(t, 4, GetWorkerMaxCount(WithWorkerOptions(ctx, 0), 4))
	assert.Equal(t, 4, GetWorkerMaxCount(WithWorkerOptions(ctx, -3), 4))
}

func TestProcessOptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.True(t, IsDrainRemainingEnabled(ctx, true))
	assert.False(t, IsDrainRemainingEnabled(WithProcessOptions(ctx, false), true))
	assert.True(t, IsDrainRemainingEnabled(WithProcessOptions(ctx, true), false))
}

func TestToChanAndFromChan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.Equal(t, []int{1, 2, 3}, FromChanMany(ctx, ToChanMany(ctx, []int{1, 2, 3})))
	assert.Equal(t, 7, FromChanFirstOrDefault(ctx, ToChan(ctx, 7), -1))

	empty := make(chan int)
	close(empty)
	assert.Equal(t, -1, FromChanFirstOrDefault(ctx, empty, -1))

	results := FromChanMany(ctx, ToChanManyResults(ctx, []string{"a", "b"}))
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[1].Value())
}

func TestToChanFromArgsResults_Handlers(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	var failed []int
	ch := ToChanManyResultsWithHandlers(canceled, ToChanHandlers[int]{
		OnStartFail: func(_ context.Context, input []int) { failed = input },
	}, []int{1, 2})
	Drain(ch)
	assert.Equal(t, []int{1, 2}, failed)

	var sent atomic.Int64
	ctx := context.Background()
	ch = ToChanManyResultsWithHandlers(ctx, ToChanHandlers[int]{
		OnSuccess: func(context.Context, int) { sent.Add(1) },
	}, []int{1, 2, 3})
	assert.Len(t, FromChanMany(ctx, ch), 3)
	assert.Eventually(t, func() bool { return sent.Load() == 3 }, time.Second, time.Millisecond)
}

func TestFromChanMany_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	never := make(chan int)
	assert.Empty(t, FromChanMany(ctx, never))
}

func TestLocomotive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	engine := func(_ context.Context, in rop.ResultOf[int]) <-chan rop.ResultOf[int] {
		out := make(chan rop.ResultOf[int], 1)
		out <- rop.Map(in, func(v int) int { return v + 1 })
		close(out)
		return out
	}

	input := ToChanResults(ctx, rop.OkOf(1), rop.FailOf[int]("e"), rop.OkOf(3))
	out := make(chan rop.ResultOf[int], 3)

	var delivered atomic.Int64
	wg := &sync.WaitGroup{}
	wg.Add(1)
	Locomotive(ctx, input, out, engine, CancellationHandlers[int, int]{},
		func(context.Context, rop.ResultOf[int]) { delivered.Add(1) }, wg)
	close(out)

	var got []rop.ResultOf[int]
	for r := range out {
		got = append(got, r)
	}
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Value())
	assert.True(t, got[1].IsFailed())
	assert.Equal(t, 4, got[2].Value())
	assert.Equal(t, int64(3), delivered.Load())
}

func TestLocomotive_EngineFailuresBecomeResults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	engine := func(_ context.Context, in rop.ResultOf[int]) <-chan rop.ResultOf[int] {
		switch in.Value() {
		case 1:
			panic("engine boom")
		case 2:
			empty := make(chan rop.ResultOf[int])
			close(empty)
			return empty
		case 3:
			return nil
		}
		out := make(chan rop.ResultOf[int], 1)
		out <- in
		close(out)
		return out
	}

	input := ToChanResults(ctx, rop.OkOf(1), rop.OkOf(2), rop.OkOf(3), rop.OkOf(4))
	out := make(chan rop.ResultOf[int], 4)
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NotPanics(t, func() {
		Locomotive(ctx, input, out, engine, CancellationHandlers[int, int]{}, nil, wg)
	})
	close(out)

	var got []rop.ResultOf[int]
	for r := range out {
		got = append(got, r)
	}
	require.Len(t, got, 4)
	assert.Equal(t, "panic: engine boom", got[0].Errors()[0].Message())
	assert.ErrorIs(t, got[1].Err(), ErrNoResult)
	assert.ErrorIs(t, got[2].Err(), ErrNoResult)
	assert.Equal(t, 4, got[3].Value())
}

func TestLocomotive_DrainOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := make(chan rop.ResultOf[int])
	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		defer close(input)
		for i := range 5 {
			input <- rop.OkOf(i)
		}
	}()

	out := make(chan rop.ResultOf[int])
	wg := &sync.WaitGroup{}
	wg.Add(1)
	Locomotive(ctx, input, out, func(context.Context, rop.ResultOf[int]) <-chan rop.ResultOf[int] {
		return make(chan rop.ResultOf[int])
	}, DrainOnCancel[int, int](), nil, wg)

	select {
	case <-producerDone:
	case <-time.After(time.Second):
		t.Fatal("producer was left blocked")
	}
}
