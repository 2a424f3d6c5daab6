package httpx

//go:generate mockgen -source mapper.go -destination mapper_mocks.go -package httpx

import (
	"net/http"

	"github.com/ib-77/fluentrop/pkg/rop"
)

// TagHTTPStatus on an error reason overrides the status picked by DefaultMapper.
const TagHTTPStatus = "HttpStatusCode"

// StatusMapper picks the HTTP status for a result.
type StatusMapper interface {
	Status(r rop.Outcome) int
}

// DefaultMapper answers 200 for a success. For a failure the first error
// carrying TagHTTPStatus wins; otherwise a timeout gives 504, an exception
// 500 and any other error 400.
type DefaultMapper struct{}

func (DefaultMapper) Status(r rop.Outcome) int {
	if r.IsSuccess() {
		return http.StatusOK
	}

	errs := r.Errors()
	for _, err := range errs {
		if code, ok := statusTag(err); ok {
			return code
		}
	}

	status := http.StatusBadRequest
	for _, err := range errs {
		switch err.(type) {
		case *rop.TimeoutError:
			return http.StatusGatewayTimeout
		case *rop.ExceptionError:
			status = http.StatusInternalServerError
		}
	}
	return status
}

func statusTag(err rop.ErrorReason) (int, bool) {
	switch v := err.Tags()[TagHTTPStatus].(type) {
	case int:
		return v, v >= 100 && v <= 599
	case int32:
		return int(v), v >= 100 && v <= 599
	case int64:
		return int(v), v >= 100 && v <= 599
	default:
		return 0, false
	}
}
