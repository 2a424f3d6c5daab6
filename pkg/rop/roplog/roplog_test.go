package roplog

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/fluentrop/pkg/rop"
)

func newContext(buf *bytes.Buffer) context.Context {
	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	return logger.WithContext(context.Background())
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLog_Failure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := newContext(&buf)

	r := rop.Fail("name is required").
		WithError(rop.NewError("age out of range").WithTag("field", "age"))
	Log(ctx, r, "signup")

	line := decode(t, &buf)
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "signup", line["context"])
	assert.Equal(t, r.ID().String(), line["result_id"])
	assert.Equal(t, false, line["is_success"])
	assert.Equal(t, "result failed", line["message"])
	assert.Contains(t, line["error"], "age out of range")

	reasons, ok := line["reasons"].([]any)
	require.True(t, ok)
	require.Len(t, reasons, 2)
	second := reasons[1].(map[string]any)
	assert.Equal(t, "Error", second["kind"])
	assert.Equal(t, "age", second["field"])
}

func TestLogOf_RecordsValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := newContext(&buf)

	LogOf(ctx, rop.OkOf(42).WithSuccessMessage("loaded"), "load")

	line := decode(t, &buf)
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, float64(42), line["value"])
	assert.Equal(t, "result succeeded", line["message"])
	assert.NotContains(t, line, "error")
}

func TestLogIfFailed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := newContext(&buf)

	LogIfFailed(ctx, rop.Ok(), "quiet")
	assert.Zero(t, buf.Len())

	LogIfFailed(ctx, rop.Fail("boom"), "loud")
	assert.Equal(t, "loud", decode(t, &buf)["context"])
}

func TestSettings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithSettings(newContext(&buf), Settings{
		SuccessLevel: zerolog.InfoLevel,
		FailureLevel: zerolog.WarnLevel,
	})

	Log(ctx, rop.Fail("slow"), "settings")
	assert.Equal(t, "warn", decode(t, &buf)["level"])

	assert.Equal(t, DefaultSettings, SettingsFrom(context.Background()))
}

func TestLog_WithoutLoggerIsSilent(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { Log(context.Background(), rop.Fail("x"), "none") })
}
