package rop

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReason_EmptyMessagePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewSuccess("") })
	assert.Panics(t, func() { NewError("") })
}

func TestReason_TagsAreCopyOnWrite(t *testing.T) {
	t.Parallel()

	e1 := NewError("bad").WithTag("k1", 1)
	e2 := e1.WithTag("k2", 2)
	assert.Len(t, e1.Tags(), 1)
	assert.Len(t, e2.Tags(), 2)

	tags := e2.Tags()
	tags["k3"] = 3
	assert.Len(t, e2.Tags(), 2)

	merged := e1.WithTags(map[string]any{"k1": "x", "k4": 4})
	assert.Equal(t, 1, e1.Tags()["k1"])
	assert.Equal(t, "x", merged.Tags()["k1"])

	assert.Empty(t, NewSuccess("ok").Tags())
	assert.Equal(t, "v", NewSuccess("ok").WithTag("k", "v").Tags()["k"])
}

func TestError_CausedBy(t *testing.T) {
	t.Parallel()
	root := errors.New("root")
	domain := NewError("domain")

	e := NewError("outer").CausedBy(root).CausedBy(domain)

	assert.Len(t, e.Causes(), 2)
	assert.ErrorIs(t, e, root)
	assert.ErrorIs(t, e, domain)
	assert.Panics(t, func() { NewError("x").CausedBy(nil) })
}

func TestTimeoutError_Formatting(t *testing.T) {
	t.Parallel()

	e := NewTimeoutError(50 * time.Millisecond)
	assert.Contains(t, e.Message(), "50ms")
	assert.Equal(t, "50ms", e.Tags()[TagTimeout])
	assert.Equal(t, 50*time.Millisecond, e.Timeout())

	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m0s", FormatDuration(2*time.Minute))
	assert.Equal(t, "500µs", FormatDuration(500*time.Microsecond))
}

func TestErrorFrom(t *testing.T) {
	t.Parallel()

	domain := NewError("d")
	assert.Same(t, domain, ErrorFrom(domain))

	plain := errors.New("plain")
	wrapped := ErrorFrom(plain)
	assert.ErrorIs(t, wrapped, plain)
	assert.Panics(t, func() { ErrorFrom(nil) })
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Success", Kind(NewSuccess("s")))
	assert.Equal(t, "Error", Kind(NewError("e")))
	assert.Equal(t, "ExceptionError", Kind(NewExceptionError(errors.New("x"))))
	assert.Equal(t, "ConversionError", Kind(NewConversionError("[]int", 0)))
	assert.Equal(t, "TimeoutError", Kind(NewTimeoutError(time.Second)))
}

func TestErrorKinds_AreErrorReasons(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	kinds := []ErrorReason{
		NewExceptionError(cause),
		NewConversionError("[]error", 0),
		NewTimeoutError(time.Second),
	}

	for _, k := range kinds {
		assert.Equal(t, k.Message(), k.Error())
		r := FailWith(k)
		assert.True(t, r.IsFailed())
		assert.Same(t, k, r.Errors()[0])
	}

	var exc *ExceptionError
	assert.ErrorAs(t, error(kinds[0]), &exc)
	assert.ErrorIs(t, kinds[0], cause)
	assert.Equal(t, "*errors.errorString", kinds[0].Tags()[TagExceptionType])
}
