// Package httpx writes rop results as HTTP responses.
//
// Failures are rendered as a JSON object with an "errors" list (kind,
// message, tags) and optional "successes"; the status comes from a
// StatusMapper. Successful values that are proto messages are encoded with
// protojson, anything else with encoding/json.
package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ib-77/fluentrop/pkg/rop"
)

const contentTypeJSON = "application/json"

// Writer turns results into responses. The zero value uses DefaultMapper.
type Writer struct {
	Mapper StatusMapper
}

// WriteResult answers 204 for a success and an error body otherwise.
func (w Writer) WriteResult(rw http.ResponseWriter, r rop.Result) {
	if r.IsSuccess() {
		rw.WriteHeader(http.StatusNoContent)
		return
	}
	w.writeFailure(rw, r)
}

// Write answers a success with its value encoded as JSON and a failure with
// an error body.
func Write[T any](w Writer, rw http.ResponseWriter, r rop.ResultOf[T]) {
	v, ok := r.TryGetValue()
	if !ok {
		w.writeFailure(rw, r)
		return
	}

	body, err := encodeValue(v)
	if err != nil {
		w.writeFailure(rw, r.WithError(rop.NewExceptionError(err)))
		return
	}

	rw.Header().Set("Content-Type", contentTypeJSON)
	rw.WriteHeader(w.mapper().Status(r))
	_, _ = rw.Write(body)
}

func (w Writer) mapper() StatusMapper {
	if w.Mapper == nil {
		return DefaultMapper{}
	}
	return w.Mapper
}

func (w Writer) writeFailure(rw http.ResponseWriter, r rop.Outcome) {
	body, err := ErrorBody(r)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", contentTypeJSON)
	rw.WriteHeader(w.mapper().Status(r))
	_, _ = rw.Write(body)
}

// ErrorBody renders the reasons of r as protojson.
func ErrorBody(r rop.Outcome) ([]byte, error) {
	errs := make([]any, 0, len(r.Errors()))
	for _, e := range r.Errors() {
		errs = append(errs, reasonView(e))
	}
	fields := map[string]any{
		"is_success": r.IsSuccess(),
		"result_id":  r.ID().String(),
		"errors":     errs,
	}
	if successes := r.Successes(); len(successes) > 0 {
		views := make([]any, 0, len(successes))
		for _, s := range successes {
			views = append(views, reasonView(s))
		}
		fields["successes"] = views
	}

	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("httpx: build error body: %w", err)
	}
	return protojson.MarshalOptions{UseProtoNames: true}.Marshal(st)
}

func reasonView(r rop.Reason) map[string]any {
	view := map[string]any{
		"kind":    rop.Kind(r),
		"message": r.Message(),
	}
	if tags := r.Tags(); len(tags) > 0 {
		out := make(map[string]any, len(tags))
		for k, v := range tags {
			out[k] = tagValue(v)
		}
		view["tags"] = out
	}
	return view
}

// tagValue keeps the values structpb understands and prints the rest.
func tagValue(v any) any {
	switch v.(type) {
	case nil, bool, string, int, int32, int64, uint, uint32, uint64, float32, float64:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func encodeValue(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}
