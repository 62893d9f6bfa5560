// Package configs provides the global Configuration type.
package configs

import (
	"fmt"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/profedit/api"
	"github.com/macropower/profedit/api/v1beta1"
	"github.com/macropower/profedit/pkg/deploy"
	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/execs"
	"github.com/macropower/profedit/pkg/rule"
	"github.com/macropower/profedit/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -kind config -o configs.v1beta1.json

// Kind is the kind of the global configuration.
const Kind = "Configuration"

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed configs.v1beta1.json
	schemaJSON []byte

	// ValidKinds contains the valid kind values for global configurations.
	ValidKinds = []string{Kind}

	// DefaultValidator validates global configuration against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/configs.v1beta1.json", schemaJSON)

	_ v1beta1.Object = (*Config)(nil)
)

// Config represents the global profedit configuration.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Edit contains settings for editing profile files.
	Edit *editor.Config `json:"edit,omitempty" jsonschema:"title=Edit"`
	// Deploy is the command used to deploy modified profiles to an org.
	Deploy *execs.Command `json:"deploy,omitempty" jsonschema:"title=Deploy Command"`
	v1beta1.TypeMeta `json:",inline"`
	// Rules decide which profile files are edited. The first matching rule
	// applies, and files matching no rule are edited.
	Rules []*rule.Rule `json:"rules,omitempty" jsonschema:"title=Rules"`
}

// New creates a new [Config] with default values.
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Edit == nil {
		c.Edit = editor.NewConfig()
	} else {
		c.Edit.EnsureDefaults()
	}

	if c.Deploy == nil {
		cmd := deploy.DefaultCommand()
		c.Deploy = &cmd
	}
}

// Validate checks the type metadata and compiles rules and the deploy
// command.
func (c *Config) Validate() error {
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

	if c.Deploy != nil {
		err := c.Deploy.Compile()
		if err != nil {
			return fmt.Errorf("deploy: %w", err)
		}
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// WriteDefault writes the embedded default config.yaml to path. Existing
// files are only replaced (after a backup) when force is set.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

// DefaultYAML returns the embedded default config.yaml.
func DefaultYAML() []byte {
	return defaultConfigYAML
}

// GetPath returns the path to the global configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}
