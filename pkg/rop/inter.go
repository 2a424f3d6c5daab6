package rop

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the read-only shape shared by Result and every ResultOf[T].
// Transport adapters and loggers accept it so they work with both.
type Outcome interface {
	// IsSuccess returns true if no error reason is present
	IsSuccess() bool
	// IsFailed returns true if at least one error reason is present
	IsFailed() bool
	// Reasons returns all reasons in the order they were added
	Reasons() []Reason
	// Errors returns the error reasons in order
	Errors() []ErrorReason
	// Successes returns the success reasons in order
	Successes() []SuccessReason
	// Err returns nil on success, otherwise a *ResultError
	Err() error
	// ID identifies this instance
	ID() uuid.UUID
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
}

// ValueOutcome extends Outcome with non-panicking value access.
type ValueOutcome[T any] interface {
	Outcome
	TryGetValue() (T, bool)
}

var (
	_ Outcome           = Result{}
	_ ValueOutcome[int] = ResultOf[int]{}
)
