package v1beta1_test

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/api/v1beta1"
)

type object struct {
	v1beta1.TypeMeta
}

func (object) EnsureDefaults() {}

func TestCheckTypeMeta(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		meta    v1beta1.TypeMeta
		wantErr bool
	}{
		"valid": {
			meta: v1beta1.TypeMeta{APIVersion: v1beta1.APIVersion, Kind: "Configuration"},
		},
		"unknown api version": {
			meta:    v1beta1.TypeMeta{APIVersion: "example.com/v1beta1", Kind: "Configuration"},
			wantErr: true,
		},
		"unknown kind": {
			meta:    v1beta1.TypeMeta{APIVersion: v1beta1.APIVersion, Kind: "Policy"},
			wantErr: true,
		},
		"empty": {
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := v1beta1.CheckTypeMeta(object{TypeMeta: tc.meta}, []string{"Configuration"})
			if tc.wantErr {
				require.ErrorIs(t, err, v1beta1.ErrTypeMeta)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestExtendSchemaWithEnums(t *testing.T) {
	t.Parallel()

	jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}
	jss.Properties.Set("apiVersion", &jsonschema.Schema{Type: "string"})
	jss.Properties.Set("kind", &jsonschema.Schema{Type: "string"})

	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, []string{"Configuration", "ProjectConfiguration"})

	apiVersion, ok := jss.Properties.Get("apiVersion")
	require.True(t, ok)
	assert.Equal(t, []any{v1beta1.APIVersion}, apiVersion.Enum)

	kind, ok := jss.Properties.Get("kind")
	require.True(t, ok)
	assert.Equal(t, []any{"Configuration", "ProjectConfiguration"}, kind.Enum)
}

func TestExtendSchemaWithEnums_Panics(t *testing.T) {
	t.Parallel()

	jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}
	jss.Properties.Set("kind", &jsonschema.Schema{Type: "string"})

	assert.Panics(t, func() {
		v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, []string{"Configuration"})
	})
}
