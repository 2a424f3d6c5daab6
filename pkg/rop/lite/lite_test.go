package lite

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/fluentrop/pkg/rop"
	"github.com/ib-77/fluentrop/pkg/rop/core"
)

func doubled(ctx context.Context, input rop.ResultOf[int]) <-chan rop.ResultOf[int] {
	output := make(chan rop.ResultOf[int], 1)
	go func() {
		defer close(output)
		output <- rop.Map(input, func(v int) int { return v * 2 })
	}()
	return output
}

func successValues[T any](results []rop.ResultOf[T]) []T {
	var values []T
	for _, r := range results {
		if v, ok := r.TryGetValue(); ok {
			values = append(values, v)
		}
	}
	return values
}

func TestRun_SingleWorker(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	results := core.FromChanMany(ctx, Run(ctx, core.ToChanManyResults(ctx, []int{1, 2, 3, 4, 5}), doubled, 1))

	assert.Equal(t, []int{2, 4, 6, 8, 10}, successValues(results))
}

func TestRun_MultipleWorkers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	input := make([]int, 100)
	for i := range input {
		input[i] = i + 1
	}

	slow := func(ctx context.Context, input rop.ResultOf[int]) <-chan rop.ResultOf[int] {
		time.Sleep(10 * time.Millisecond)
		return doubled(ctx, input)
	}

	start := time.Now()
	values := successValues(core.FromChanMany(ctx, Run(ctx, core.ToChanManyResults(ctx, input), slow, 5)))

	assert.Len(t, values, len(input))
	assert.Less(t, time.Since(start), time.Second)
}

func TestRun_NonPositiveLinesUseOneWorker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	values := successValues(core.FromChanMany(ctx, Run(ctx, core.ToChanManyResults(ctx, []int{1, 2}), doubled, 0)))
	assert.Equal(t, []int{2, 4}, values)
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	results := core.FromChanMany(ctx, Run(ctx, core.ToChanManyResults(ctx, []int{}), doubled, 3))
	assert.Empty(t, results)
}

func TestRun_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ctx = core.WithProcessOptions(ctx, true)

	input := make([]int, 10)
	for i := range input {
		input[i] = i + 1
	}

	var processed atomic.Int64
	slow := func(ctx context.Context, input rop.ResultOf[int]) <-chan rop.ResultOf[int] {
		output := make(chan rop.ResultOf[int], 1)
		go func() {
			defer close(output)
			time.Sleep(100 * time.Millisecond)
			if ctx.Err() != nil {
				return
			}
			processed.Add(1)
			output <- input
		}()
		return output
	}

	resultCh := Run(ctx, core.ToChanManyResults(context.Background(), input), slow, 3)

	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	var results []rop.ResultOf[int]
	for r := range resultCh {
		results = append(results, r)
	}

	assert.Less(t, len(results), len(input))
}

func TestTurnout_TypeConversion(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	toLabel := Map(func(_ context.Context, v int) string { return fmt.Sprintf("num_%d", v) })
	values := successValues(core.FromChanMany(ctx, Turnout(ctx, core.ToChanManyResults(ctx, []int{1, 2, 3}), toLabel, 2)))

	sort.Strings(values)
	assert.Equal(t, []string{"num_1", "num_2", "num_3"}, values)
}

func TestEnsureAndWhere(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	notOne := Where(func(_ context.Context, v int) bool { return v != 1 }, "value should not be 1")
	results := core.FromChanMany(ctx, Run(ctx, core.ToChanManyResults(ctx, []int{1, 2, 3}), notOne, 1))

	require.Len(t, results, 3)
	assert.Equal(t, "value should not be 1", results[0].Errors()[0].Message())
	assert.Equal(t, []int{2, 3}, successValues(results))

	lookup := Ensure(func(context.Context, int) (bool, error) { return false, errors.New("store offline") },
		rop.NewError("unused"))
	failed := core.FromChanMany(ctx, Run(ctx, core.ToChanManyResults(ctx, []int{4}), lookup, 1))
	require.Len(t, failed, 1)
	assert.Equal(t, "store offline", failed[0].Errors()[0].Message())
}

func TestBind_PropagatesFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int64
	half := Bind(func(_ context.Context, v int) rop.ResultOf[int] {
		calls.Add(1)
		if v%2 != 0 {
			return rop.FailOf[int]("odd")
		}
		return rop.OkOf(v / 2)
	})

	input := core.ToChanResults(ctx, rop.OkOf(4), rop.FailOf[int]("upstream"), rop.OkOf(3))
	results := core.FromChanMany(ctx, Run(ctx, input, half, 1))

	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].Value())
	assert.Equal(t, "upstream", results[1].Errors()[0].Message())
	assert.Equal(t, "odd", results[2].Errors()[0].Message())
	assert.Equal(t, int64(2), calls.Load())
}

func TestTry_SuccessAndError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	parse := Try(func(_ context.Context, s string) (int, error) { return strconv.Atoi(s) })
	results := core.FromChanMany(ctx, Turnout(ctx, core.ToChanManyResults(ctx, []string{"7", "x"}), parse, 1))

	require.Len(t, results, 2)
	assert.Equal(t, 7, results[0].Value())
	assert.True(t, results[1].IsFailed())
	assert.Contains(t, results[1].Errors()[0].Message(), "invalid syntax")
}

func TestTap_SeesEveryResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var mu sync.Mutex
	var seen []bool
	audit := Tap(func(_ context.Context, r rop.ResultOf[int]) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, r.IsSuccess())
		return nil
	})

	input := core.ToChanResults(ctx, rop.OkOf(1), rop.FailOf[int]("e"))
	results := core.FromChanMany(ctx, Run(ctx, input, audit, 1))

	assert.Len(t, results, 2)
	assert.Equal(t, []bool{true, false}, seen)
}

func TestFinally_FoldsResults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	handlers := FinallyHandlers[int, string]{
		OnSuccess: func(_ context.Context, v int) string { return "val:" + strconv.Itoa(v) },
		OnFailure: func(_ context.Context, errs []rop.ErrorReason) string { return "err:" + errs[0].Message() },
	}

	input := core.ToChanResults(ctx, rop.OkOf(1), rop.FailOf[int]("bad"))
	assert.Equal(t, []string{"val:1", "err:bad"}, core.FromChanMany(ctx, Finally(ctx, input, handlers)))
}

func TestEngines_PanicOnNilCallbacks(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Map[int, int](nil) })
	assert.Panics(t, func() { Bind[int, int](nil) })
	assert.Panics(t, func() { Try[int, int](nil) })
	assert.Panics(t, func() { Tap[int](nil) })
	assert.Panics(t, func() { Where[int](nil, "m") })
	assert.Panics(t, func() { Finally(context.Background(), nil, FinallyHandlers[int, int]{}) })
}

func TestCompletePipeline_URLs(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	urls := []string{
		"https://www.example.com",
		"https://www.test.org",
		"https://www.micros---oft.com",
		"invalid-url",
		"ftp://invalid-protocol.com",
	}

	hasScheme := func(_ context.Context, url string) bool {
		return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
	}
	fetchTitle := func(_ context.Context, url string) (string, error) {
		if strings.Contains(url, "---") {
			return "", errors.New("host not found")
		}
		return "Title for " + url, nil
	}
	titleLength := func(_ context.Context, title string) rop.ResultOf[int] {
		return rop.OkOf(len(title))
	}

	out := core.FromChanMany(ctx,
		Finally(ctx,
			Turnout(ctx,
				Turnout(ctx,
					Run(ctx, core.ToChanManyResults(ctx, urls),
						Where(hasScheme, "URL must start with http:// or https://"), 2),
					Try(fetchTitle), 2),
				Bind(titleLength), 2),
			FinallyHandlers[int, string]{
				OnSuccess: func(_ context.Context, n int) string { return fmt.Sprintf("title length: %d", n) },
				OnFailure: func(_ context.Context, errs []rop.ErrorReason) string { return "invalid" },
			}))

	require.Len(t, out, len(urls))
	invalid := 0
	for _, s := range out {
		if s == "invalid" {
			invalid++
		}
	}
	assert.Equal(t, 3, invalid)
}
