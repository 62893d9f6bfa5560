// Package v1beta1 contains the v1beta1 API types for profedit configuration.
package v1beta1

import (
	"errors"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

// APIVersion is the current API version for all configuration kinds.
const APIVersion = "profedit.macropower.dev/v1beta1"

var (
	// ValidAPIVersions contains all valid API versions.
	ValidAPIVersions = []string{APIVersion}

	// ErrTypeMeta is returned when apiVersion or kind are not recognized.
	ErrTypeMeta = errors.New("invalid type metadata")
)

// TypeMeta contains the API version and kind metadata common to all config types.
type TypeMeta struct {
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

func (tm TypeMeta) GetAPIVersion() string {
	return tm.APIVersion
}

func (tm TypeMeta) GetKind() string {
	return tm.Kind
}

// Object is implemented by every configuration kind.
type Object interface {
	GetAPIVersion() string
	GetKind() string
	EnsureDefaults()
}

// CheckTypeMeta returns [ErrTypeMeta] unless obj has a valid API version
// and one of kinds.
func CheckTypeMeta(obj Object, kinds []string) error {
	if !slices.Contains(ValidAPIVersions, obj.GetAPIVersion()) {
		return fmt.Errorf("%w: apiVersion %q, expected one of %v", ErrTypeMeta, obj.GetAPIVersion(), ValidAPIVersions)
	}
	if !slices.Contains(kinds, obj.GetKind()) {
		return fmt.Errorf("%w: kind %q, expected one of %v", ErrTypeMeta, obj.GetKind(), kinds)
	}

	return nil
}

// ExtendSchemaWithEnums restricts the apiVersion and kind properties of jss
// to the given values. It panics if jss has no such properties.
func ExtendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	for prop, values := range map[string][]string{
		"apiVersion": apiVersions,
		"kind":       kinds,
	} {
		s, ok := jss.Properties.Get(prop)
		if !ok {
			panic(fmt.Sprintf("%s property not found in schema", prop))
		}

		for _, v := range values {
			s.Enum = append(s.Enum, v)
		}

		jss.Properties.Set(prop, s)
	}
}
