package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/version"
)

func TestFields(t *testing.T) {
	t.Parallel()

	fields := version.Fields()
	require.NotEmpty(t, fields)

	assert.Equal(t, "version", fields[0].Name)
	assert.Equal(t, version.GetVersion(), fields[0].Value)

	for _, f := range fields {
		assert.NotEmpty(t, f.Value, f.Name)
	}

	last := fields[len(fields)-1]
	assert.Equal(t, "platform", last.Name)
	assert.Equal(t, version.GoOS+"/"+version.GoArch, last.Value)
}
