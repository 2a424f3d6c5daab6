package rop

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result is an immutable success/failure container holding an ordered list
// of reasons. It is failed as soon as one of the reasons is an ErrorReason.
//
// Every method that "adds" something returns a new Result with a fresh ID;
// the receiver is never modified, so a Result can be shared freely between
// goroutines. The zero value is a successful Result without reasons.
type Result struct {
	id        uuid.UUID
	createdAt time.Time
	reasons   []Reason
}

func newResult(reasons []Reason) Result {
	return Result{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		reasons:   reasons,
	}
}

func (r Result) IsSuccess() bool {
	for _, reason := range r.reasons {
		if _, ok := reason.(ErrorReason); ok {
			return false
		}
	}
	return true
}

func (r Result) IsFailed() bool {
	return !r.IsSuccess()
}

func (r Result) Reasons() []Reason {
	out := make([]Reason, len(r.reasons))
	copy(out, r.reasons)
	return out
}

func (r Result) Errors() []ErrorReason {
	out := make([]ErrorReason, 0, len(r.reasons))
	for _, reason := range r.reasons {
		if e, ok := reason.(ErrorReason); ok {
			out = append(out, e)
		}
	}
	return out
}

func (r Result) Successes() []SuccessReason {
	out := make([]SuccessReason, 0, len(r.reasons))
	for _, reason := range r.reasons {
		if s, ok := reason.(SuccessReason); ok {
			out = append(out, s)
		}
	}
	return out
}

// HasError reports whether any error reason satisfies match.
func (r Result) HasError(match func(ErrorReason) bool) bool {
	if match == nil {
		panic(nilArgument("match"))
	}
	for _, e := range r.Errors() {
		if match(e) {
			return true
		}
	}
	return false
}

// Err projects the result onto a Go error: nil on success, a *ResultError
// listing every error reason otherwise.
func (r Result) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return &ResultError{errs: r.Errors()}
}

func (r Result) ID() uuid.UUID {
	return r.id
}

func (r Result) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result) String() string {
	parts := make([]string, len(r.reasons))
	for i, reason := range r.reasons {
		parts[i] = fmt.Sprint(reason)
	}
	return fmt.Sprintf("Result: IsSuccess='%t', Reasons='%s'", r.IsSuccess(), strings.Join(parts, ", "))
}

// WithReason returns a new Result with reason appended. It panics on nil.
func (r Result) WithReason(reason Reason) Result {
	if IsNil(reason) {
		panic(nilArgument("reason"))
	}
	return r.derive(reason)
}

// WithReasons returns a new Result with reasons appended in order.
// It panics when reasons is empty or holds nil.
func (r Result) WithReasons(reasons ...Reason) Result {
	if len(reasons) == 0 {
		panic("rop: reasons must not be empty")
	}
	for _, reason := range reasons {
		if IsNil(reason) {
			panic(nilArgument("reason"))
		}
	}
	return r.derive(reasons...)
}

func (r Result) WithSuccess(success SuccessReason) Result {
	if IsNil(success) {
		panic(nilArgument("success"))
	}
	return r.derive(success)
}

func (r Result) WithSuccessMessage(message string) Result {
	return r.derive(NewSuccess(message))
}

func (r Result) WithSuccesses(successes ...SuccessReason) Result {
	if len(successes) == 0 {
		panic("rop: successes must not be empty")
	}
	return r.WithReasons(toReasons(successes)...)
}

func (r Result) WithError(err ErrorReason) Result {
	if IsNil(err) {
		panic(nilArgument("error"))
	}
	return r.derive(err)
}

func (r Result) WithErrorMessage(message string) Result {
	return r.derive(NewError(message))
}

func (r Result) WithErrors(errs ...ErrorReason) Result {
	if len(errs) == 0 {
		panic("rop: errors must not be empty")
	}
	return r.WithReasons(toReasons(errs)...)
}

// derive copies the reason list, appends more and stamps a new instance.
func (r Result) derive(more ...Reason) Result {
	reasons := make([]Reason, 0, len(r.reasons)+len(more))
	reasons = append(reasons, r.reasons...)
	reasons = append(reasons, more...)
	return newResult(reasons)
}

func (r Result) successReasons() []Reason {
	out := make([]Reason, 0, len(r.reasons))
	for _, reason := range r.reasons {
		if _, ok := reason.(SuccessReason); ok {
			out = append(out, reason)
		}
	}
	return out
}

func (r Result) errorReasons() []Reason {
	out := make([]Reason, 0, len(r.reasons))
	for _, reason := range r.reasons {
		if _, ok := reason.(ErrorReason); ok {
			out = append(out, reason)
		}
	}
	return out
}

// Tap runs action when the result is successful and returns r.
// A panicking action turns the result into a failure.
func (r Result) Tap(action func()) Result {
	if action == nil {
		panic(nilArgument("action"))
	}
	if r.IsFailed() {
		return r
	}
	if err := protectAction(action); err != nil {
		return r.derive(NewExceptionError(err))
	}
	return r
}

// TapOnFailure runs action with the first error when the result is failed.
func (r Result) TapOnFailure(action func(ErrorReason)) Result {
	if action == nil {
		panic(nilArgument("action"))
	}
	if r.IsSuccess() {
		return r
	}
	first := r.Errors()[0]
	if err := protectAction(func() { action(first) }); err != nil {
		return r.derive(NewExceptionError(err))
	}
	return r
}

// TapOnFailures runs action with all errors when the result is failed.
func (r Result) TapOnFailures(action func([]ErrorReason)) Result {
	if action == nil {
		panic(nilArgument("action"))
	}
	if r.IsSuccess() {
		return r
	}
	if err := protectAction(func() { action(r.Errors()) }); err != nil {
		return r.derive(NewExceptionError(err))
	}
	return r
}

// TapBoth always runs action with the whole result.
func (r Result) TapBoth(action func(Result)) Result {
	if action == nil {
		panic(nilArgument("action"))
	}
	if err := protectAction(func() { action(r) }); err != nil {
		return r.derive(NewExceptionError(err))
	}
	return r
}

// Match runs exactly one of the branches.
func (r Result) Match(onSuccess func(), onFailure func([]ErrorReason)) {
	if onSuccess == nil {
		panic(nilArgument("onSuccess"))
	}
	if onFailure == nil {
		panic(nilArgument("onFailure"))
	}
	if r.IsSuccess() {
		onSuccess()
		return
	}
	onFailure(r.Errors())
}

func toReasons[R Reason](in []R) []Reason {
	out := make([]Reason, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

// ResultError is the Go error view of a failed result.
type ResultError struct {
	op   string
	errs []ErrorReason
}

func (e *ResultError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Message()
	}
	if e.op != "" {
		return fmt.Sprintf("rop: %s on failed result: %s", e.op, strings.Join(msgs, "; "))
	}
	return "rop: result failed: " + strings.Join(msgs, "; ")
}

// Errors returns the error reasons of the failed result.
func (e *ResultError) Errors() []ErrorReason {
	out := make([]ErrorReason, len(e.errs))
	copy(out, e.errs)
	return out
}

func (e *ResultError) Unwrap() []error {
	out := make([]error, len(e.errs))
	for i, err := range e.errs {
		out[i] = err
	}
	return out
}
