package log_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/profedit/pkg/log"
)

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level   string
		format  string
		wantErr error
	}{
		"text":           {level: "info", format: "text"},
		"json uppercase": {level: "DEBUG", format: "JSON"},
		"logfmt warning": {level: "warning", format: "logfmt"},
		"bad level":      {level: "loud", format: "text", wantErr: log.ErrUnknownLogLevel},
		"bad format":     {level: "info", format: "xml", wantErr: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := log.CreateHandlerWithStrings(&bytes.Buffer{}, tc.level, tc.format)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(log.CreateHandler(&buf, slog.LevelInfo, log.FormatJSON))
	ctx := log.ContextWith(t.Context(), logger)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x0a, 0x0b, 0x0c, 0x0d, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		SpanID:  trace.SpanID{0x01, 0x02, 0x03, 0x04, 5, 6, 7, 8},
	})

	log.WithContext(trace.ContextWithSpanContext(ctx, sc)).Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"trace_id":"0a0b0c0d"`)
	assert.Contains(t, out, `"span_id":"01020304"`)
}

func TestWithContext_Default(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, log.WithContext(t.Context()))
}
