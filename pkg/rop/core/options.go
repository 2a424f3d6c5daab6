package core

import "context"

type OptionKey string

const (
	ProcessOptionKey OptionKey = "process_options"
	WorkerOptionKey  OptionKey = "worker_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

// ProcessOptions controls what happens to values still queued when a
// pipeline is canceled.
type ProcessOptions struct {
	// DrainRemaining consumes and drops whatever is left in the input so
	// upstream stages can exit.
	DrainRemaining bool
}

// WithProcessOptions stores ProcessOptions on ctx.
func WithProcessOptions(ctx context.Context, drainRemaining bool) context.Context {
	return context.WithValue(ctx, ProcessOptionKey, ProcessOptions{DrainRemaining: drainRemaining})
}

// WithWorkerOptions stores the maximum number of concurrent workers on ctx.
// It bounds pipeline lines and parallel combination.
func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

// GetWorkerMaxCount returns the configured worker limit, or defaultMaxWorkers
// when none is set. Non-positive values fall back to the default.
func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok && options.MaxCount.Value > 0 {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

func IsDrainRemainingEnabled(ctx context.Context, defaultDrainRemaining bool) bool {
	options, ok := ctx.Value(ProcessOptionKey).(ProcessOptions)
	if ok {
		return options.DrainRemaining
	}
	return defaultDrainRemaining
}
