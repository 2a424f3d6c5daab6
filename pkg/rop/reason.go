package rop

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Tag keys set by the reasons this package synthesizes.
const (
	TagExceptionType   = "ExceptionType"
	TagConversionType  = "ConversionType"
	TagCount           = "Count"
	TagTimeout         = "Timeout"
	TagTimeoutDuration = "TimeoutDuration"
)

// Reason explains the outcome of a Result. Message is never empty for
// reasons built through the constructors of this package.
type Reason interface {
	// Message returns the human readable description
	Message() string
	// Tags returns a copy of the metadata attached to the reason
	Tags() map[string]any
}

// SuccessReason is a Reason that does not turn a Result into a failure.
// Custom success reasons embed *Success.
type SuccessReason interface {
	Reason
	successReason()
}

// ErrorReason is a Reason that makes every Result holding it failed.
// Custom errors embed *Error.
type ErrorReason interface {
	Reason
	error
	errorReason()
}

// Success is the plain success reason.
type Success struct {
	message string
	tags    map[string]any
}

// NewSuccess creates a success reason. It panics on an empty message.
func NewSuccess(message string) *Success {
	if message == "" {
		panic("rop: success message must not be empty")
	}
	return &Success{message: message}
}

func (s *Success) Message() string { return s.message }

func (s *Success) Tags() map[string]any { return cloneTags(s.tags) }

// WithTag returns a copy of s with one more tag.
func (s *Success) WithTag(key string, value any) *Success {
	cp := *s
	cp.tags = withTag(s.tags, key, value)
	return &cp
}

// WithTags returns a copy of s with tags merged in, tags winning on conflicts.
func (s *Success) WithTags(tags map[string]any) *Success {
	if len(tags) == 0 {
		return s
	}
	cp := *s
	cp.tags = mergeTags(s.tags, tags)
	return &cp
}

func (s *Success) String() string { return describe("Success", s.message, s.tags) }

func (*Success) successReason() {}

// Error is the plain domain error reason. It may carry the errors that
// caused it.
type Error struct {
	message string
	tags    map[string]any
	causes  []ErrorReason
}

// NewError creates an error reason. It panics on an empty message.
func NewError(message string) *Error {
	if message == "" {
		panic("rop: error message must not be empty")
	}
	return &Error{message: message}
}

// Errorf is NewError with fmt.Sprintf formatting.
func Errorf(format string, args ...any) *Error {
	return NewError(fmt.Sprintf(format, args...))
}

func (e *Error) Message() string { return e.message }

func (e *Error) Tags() map[string]any { return cloneTags(e.tags) }

// Error implements the built-in error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.message
}

// Causes returns the errors this error was caused by.
func (e *Error) Causes() []ErrorReason {
	out := make([]ErrorReason, len(e.causes))
	copy(out, e.causes)
	return out
}

// Unwrap exposes the causes to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if len(e.causes) == 0 {
		return nil
	}
	out := make([]error, len(e.causes))
	for i, c := range e.causes {
		out[i] = c
	}
	return out
}

// WithTag returns a copy of e with one more tag.
func (e *Error) WithTag(key string, value any) *Error {
	cp := *e
	cp.tags = withTag(e.tags, key, value)
	return &cp
}

// WithTags returns a copy of e with tags merged in, tags winning on conflicts.
func (e *Error) WithTags(tags map[string]any) *Error {
	if len(tags) == 0 {
		return e
	}
	cp := *e
	cp.tags = mergeTags(e.tags, tags)
	return &cp
}

// CausedBy returns a copy of e with cause appended to its causes.
// A plain error is wrapped into an ExceptionError. It panics on nil.
func (e *Error) CausedBy(cause error) *Error {
	if IsNil(cause) {
		panic("rop: cause must not be nil")
	}
	cp := *e
	cp.causes = append(append(make([]ErrorReason, 0, len(e.causes)+1), e.causes...), ErrorFrom(cause))
	return &cp
}

func (e *Error) String() string { return describe("Error", e.message, e.tags) }

func (*Error) errorReason() {}

// errorBase lets the error kinds below embed *Error without the field name
// shadowing the Error method.
type errorBase = Error

var (
	_ ErrorReason   = (*Error)(nil)
	_ ErrorReason   = (*ExceptionError)(nil)
	_ ErrorReason   = (*ConversionError)(nil)
	_ ErrorReason   = (*TimeoutError)(nil)
	_ SuccessReason = (*Success)(nil)
)

// ExceptionError wraps an error or panic raised by a callback. The original
// error is kept for diagnostics and never rethrown.
type ExceptionError struct {
	*errorBase
	cause error
}

// NewExceptionError wraps err. It panics on nil.
func NewExceptionError(err error) *ExceptionError {
	if IsNil(err) {
		panic("rop: exception must not be nil")
	}
	msg := err.Error()
	if msg == "" {
		msg = fmt.Sprintf("exception of type %T", err)
	}
	return &ExceptionError{
		errorBase: NewError(msg).WithTag(TagExceptionType, fmt.Sprintf("%T", err)),
		cause:     err,
	}
}

// Cause returns the wrapped error.
func (e *ExceptionError) Cause() error { return e.cause }

// Unwrap returns the wrapped error.
func (e *ExceptionError) Unwrap() error { return e.cause }

func (e *ExceptionError) String() string { return describe("ExceptionError", e.message, e.tags) }

// ConversionError reports a conversion that had nothing to convert, such as
// building a failed result from an empty error list.
type ConversionError struct {
	*errorBase
}

// NewConversionError creates a conversion error for a source of type
// sourceType holding count elements.
func NewConversionError(sourceType string, count int) *ConversionError {
	return &ConversionError{
		errorBase: Errorf("cannot convert %s with %d elements to a result", sourceType, count).
			WithTags(map[string]any{
				TagConversionType: sourceType,
				TagCount:          count,
			}),
	}
}

func (e *ConversionError) String() string { return describe("ConversionError", e.message, e.tags) }

// TimeoutError is produced when an operation does not complete in time.
type TimeoutError struct {
	*errorBase
	timeout time.Duration
}

// NewTimeoutError creates a timeout error for the configured duration.
func NewTimeoutError(timeout time.Duration) *TimeoutError {
	human := FormatDuration(timeout)
	return &TimeoutError{
		errorBase: Errorf("operation timed out after %s", human).
			WithTags(map[string]any{
				TagTimeout:         human,
				TagTimeoutDuration: timeout,
			}),
		timeout: timeout,
	}
}

// Timeout returns the configured duration.
func (e *TimeoutError) Timeout() time.Duration { return e.timeout }

func (e *TimeoutError) String() string { return describe("TimeoutError", e.message, e.tags) }

// FormatDuration renders d as milliseconds below one second and as
// seconds below one minute, e.g. "50ms", "1.5s".
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Millisecond && d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	case d >= time.Second && d < time.Minute:
		return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
	default:
		return d.String()
	}
}

// ErrorFrom turns a Go error into an ErrorReason: error reasons pass
// through, anything else is wrapped into an ExceptionError.
func ErrorFrom(err error) ErrorReason {
	if er, ok := err.(ErrorReason); ok && !IsNil(er) {
		return er
	}
	return NewExceptionError(err)
}

// panicError converts a recovered panic value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}

func cloneTags(tags map[string]any) map[string]any {
	if len(tags) == 0 {
		return map[string]any{}
	}
	return maps.Clone(tags)
}

func withTag(tags map[string]any, key string, value any) map[string]any {
	m := make(map[string]any, len(tags)+1)
	maps.Copy(m, tags)
	m[key] = value
	return m
}

func mergeTags(tags, more map[string]any) map[string]any {
	m := make(map[string]any, len(tags)+len(more))
	maps.Copy(m, tags)
	maps.Copy(m, more)
	return m
}

func describe(kind, message string, tags map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s with Message='%s'", kind, message)
	if len(tags) > 0 {
		keys := make([]string, 0, len(tags))
		for k := range tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, tags[k])
		}
		fmt.Fprintf(&b, ", Tags='%s'", strings.Join(parts, "; "))
	}
	return b.String()
}

// Kind names the reason type: "Success", "Error", "ExceptionError",
// "ConversionError" or "TimeoutError". Any other error reason is an "Error".
func Kind(r Reason) string {
	switch r.(type) {
	case *TimeoutError:
		return "TimeoutError"
	case *ConversionError:
		return "ConversionError"
	case *ExceptionError:
		return "ExceptionError"
	case ErrorReason:
		return "Error"
	default:
		return "Success"
	}
}
