package rop

// Merge concatenates the reasons of every result in order. The merged
// result is failed iff any input held an error.
func Merge(results ...Result) Result {
	reasons := make([]Reason, 0, len(results))
	for _, r := range results {
		reasons = append(reasons, r.reasons...)
	}
	return newResult(reasons)
}

// Combine is all-or-nothing. If any input failed, the output holds only the
// error reasons of the failed inputs; otherwise it holds every success
// reason of every input.
func Combine(results ...Result) Result {
	failed := false
	for _, r := range results {
		if r.IsFailed() {
			failed = true
			break
		}
	}

	reasons := make([]Reason, 0, len(results))
	for _, r := range results {
		if failed {
			reasons = append(reasons, r.errorReasons()...)
		} else {
			reasons = append(reasons, r.successReasons()...)
		}
	}
	return newResult(reasons)
}

// CombineValues is Combine for typed results; on success the values are
// collected in input order.
func CombineValues[T any](results ...ResultOf[T]) ResultOf[[]T] {
	plain := make([]Result, len(results))
	for i, r := range results {
		plain[i] = r.Result
	}
	combined := Combine(plain...)
	if combined.IsFailed() {
		return ResultOf[[]T]{Result: combined}
	}
	values := make([]T, len(results))
	for i, r := range results {
		values[i] = r.value
	}
	return ResultOf[[]T]{Result: combined, value: values}
}
