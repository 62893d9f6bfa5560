package trace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/trace"
)

func TestSetup_Disabled(t *testing.T) {
	for _, name := range trace.EndpointEnvVars {
		t.Setenv(name, "")
	}

	assert.False(t, trace.Enabled())

	shutdown, err := trace.Setup(t.Context(), "profedit", "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(t.Context()))
}

func TestEnabled(t *testing.T) {
	tcs := map[string]struct {
		env  map[string]string
		want bool
	}{
		"generic endpoint": {
			env:  map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": "localhost:4317"},
			want: true,
		},
		"traces endpoint": {
			env:  map[string]string{"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT": "localhost:4317"},
			want: true,
		},
		"none": {
			env:  map[string]string{},
			want: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for _, name := range trace.EndpointEnvVars {
				t.Setenv(name, "")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			assert.Equal(t, tc.want, trace.Enabled())
		})
	}
}
