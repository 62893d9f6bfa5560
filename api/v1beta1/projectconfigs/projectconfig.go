// Package projectconfigs provides the ProjectConfiguration type, read from
// a Salesforce DX project.
package projectconfigs

import (
	"fmt"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/profedit/api"
	"github.com/macropower/profedit/api/v1beta1"
	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/rule"
	"github.com/macropower/profedit/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -kind project -o projectconfigs.v1beta1.json

// Kind is the kind of project configurations.
const Kind = "ProjectConfiguration"

var (
	// FileNames contains the valid names for project configuration files.
	FileNames = []string{
		".profedit.yaml",
		"profedit.yaml",
	}

	//go:embed projectconfigs.v1beta1.json
	projectSchemaJSON []byte

	// DefaultValidator validates project configuration against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/projectconfigs.v1beta1.json", projectSchemaJSON)

	// ValidKinds contains the valid kind values for project configurations.
	ValidKinds = []string{Kind}

	_ v1beta1.Object = (*ProjectConfig)(nil)
)

// ProjectConfig represents project-level configuration. Its settings take
// precedence over the global configuration. Project configurations cannot
// set the deploy command.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type ProjectConfig struct {
	// Edit overrides the editing settings of the global configuration.
	Edit *editor.Config `json:"edit,omitempty" jsonschema:"title=Edit"`
	v1beta1.TypeMeta `json:",inline"`
	// Rules are evaluated before the rules of the global configuration.
	Rules []*rule.Rule `json:"rules,omitempty" jsonschema:"title=Rules"`
}

// New creates a new [ProjectConfig].
func New() *ProjectConfig {
	return &ProjectConfig{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
}

// EnsureDefaults is a no-op; unset project settings fall back to the global
// configuration.
func (c *ProjectConfig) EnsureDefaults() {}

// Validate checks the type metadata and compiles rules.
func (c *ProjectConfig) Validate() error {
	err := v1beta1.CheckTypeMeta(c, ValidKinds)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	for i, r := range c.Rules {
		err := r.CompileMatch()
		if err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}
	}

	return nil
}

func (c ProjectConfig) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// Find searches for a project config file starting from targetPath and
// walking up the directory tree. It returns an empty string if none is found.
func Find(targetPath string) (string, error) {
	path, err := api.FindConfigFile(targetPath, FileNames)
	if err != nil {
		return "", fmt.Errorf("find project config: %w", err)
	}

	return path, nil
}
