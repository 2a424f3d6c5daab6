package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ib-77/fluentrop/pkg/rop"
)

type user struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDefaultMapper(t *testing.T) {
	t.Parallel()

	m := DefaultMapper{}
	tests := []struct {
		name string
		r    rop.Result
		want int
	}{
		{"success", rop.Ok(), http.StatusOK},
		{"plain error", rop.Fail("bad"), http.StatusBadRequest},
		{"exception", rop.FailWith(rop.NewExceptionError(errors.New("db"))), http.StatusInternalServerError},
		{"timeout wins", rop.FailWith(rop.NewExceptionError(errors.New("db"))).WithError(rop.NewTimeoutError(time.Second)), http.StatusGatewayTimeout},
		{"tag wins", rop.FailWith(rop.NewTimeoutError(time.Second)).WithError(rop.NewError("gone").WithTag(TagHTTPStatus, 410)), http.StatusGone},
		{"invalid tag ignored", rop.FailWith(rop.NewError("x").WithTag(TagHTTPStatus, 42)), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Status(tt.r))
		})
	}
}

func TestWriteResult(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Writer{}.WriteResult(rec, rop.Ok())
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	failed := rop.Fail("name is required").
		WithError(rop.NewError("too young").WithTag("field", "age").WithTag("min", 18)).
		WithSuccessMessage("email ok")
	Writer{}.WriteResult(rec, failed)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, false, body["is_success"])
	assert.Equal(t, failed.ID().String(), body["result_id"])

	errs := body["errors"].([]any)
	require.Len(t, errs, 2)
	second := errs[1].(map[string]any)
	assert.Equal(t, "Error", second["kind"])
	assert.Equal(t, "too young", second["message"])
	assert.Equal(t, map[string]any{"field": "age", "min": float64(18)}, second["tags"])
	assert.Len(t, body["successes"], 1)
}

func TestWrite_Values(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Write(Writer{}, rec, rop.OkOf(user{Name: "ada", Age: 36}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"ada","age":36}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Write(Writer{}, rec, rop.OkOf(wrapperspb.String("hello")))
	assert.JSONEq(t, `"hello"`, rec.Body.String())

	rec = httptest.NewRecorder()
	Write(Writer{}, rec, rop.FailOfWith[user](rop.NewTimeoutError(50*time.Millisecond)))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	errs := decode(t, rec)["errors"].([]any)
	tags := errs[0].(map[string]any)["tags"].(map[string]any)
	assert.Equal(t, "50ms", tags[rop.TagTimeout])
}

func TestWrite_UnencodableValue(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Write(Writer{}, rec, rop.OkOf(make(chan int)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errs := decode(t, rec)["errors"].([]any)
	assert.Equal(t, "ExceptionError", errs[0].(map[string]any)["kind"])
}

func TestWriter_UsesMapper(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mapper := NewMockStatusMapper(ctrl)

	failed := rop.Fail("teapot")
	mapper.EXPECT().Status(gomock.Any()).Return(http.StatusTeapot)

	rec := httptest.NewRecorder()
	Writer{Mapper: mapper}.WriteResult(rec, failed)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	mapper.EXPECT().Status(gomock.Any()).Return(http.StatusAccepted)
	rec = httptest.NewRecorder()
	Write(Writer{Mapper: mapper}, rec, rop.OkOf(1))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "1", rec.Body.String())
}
