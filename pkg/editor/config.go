package editor

import (
	"github.com/macropower/profedit/pkg/xml"
)

// DefaultConcurrency is the number of files edited in parallel when not
// configured.
const DefaultConcurrency = 1

// Config contains the editing settings of a configuration file.
type Config struct {
	// Create controls whether missing entries are added to profiles.
	Create *bool `json:"create,omitempty" jsonschema:"title=Create Missing Entries,default=true"`
	// XMLDeclaration is written before the root element of each profile.
	// An empty string omits the declaration.
	XMLDeclaration *string `json:"xmlDeclaration,omitempty" jsonschema:"title=XML Declaration"`
	// Indent is the indentation unit of written profiles.
	Indent *string `json:"indent,omitempty" jsonschema:"title=Indent"`
	// Concurrency is the number of files edited in parallel.
	Concurrency int `json:"concurrency,omitempty" jsonschema:"title=Concurrency,minimum=1,default=1"`
}

// NewConfig returns a [Config] with all defaults set.
func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults sets unset fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Create == nil {
		create := true
		c.Create = &create
	}
	if c.XMLDeclaration == nil {
		decl := xml.DefaultDeclaration
		c.XMLDeclaration = &decl
	}
	if c.Indent == nil {
		indent := xml.DefaultIndent
		c.Indent = &indent
	}
	if c.Concurrency < 1 {
		c.Concurrency = DefaultConcurrency
	}
}

// Merge overrides fields of c with the fields set in other.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Create != nil {
		c.Create = other.Create
	}
	if other.XMLDeclaration != nil {
		c.XMLDeclaration = other.XMLDeclaration
	}
	if other.Indent != nil {
		c.Indent = other.Indent
	}
	if other.Concurrency > 0 {
		c.Concurrency = other.Concurrency
	}
}

// Options converts c into [Editor] options. Unset fields are left at the
// [Editor] defaults.
func (c *Config) Options() []Option {
	var (
		opts    []Option
		encOpts []xml.EncoderOpt
	)

	if c.Create != nil {
		opts = append(opts, WithCreate(*c.Create))
	}
	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}
	if c.XMLDeclaration != nil {
		encOpts = append(encOpts, xml.WithDeclaration(*c.XMLDeclaration))
	}
	if c.Indent != nil {
		encOpts = append(encOpts, xml.WithIndent(*c.Indent))
	}
	if len(encOpts) > 0 {
		opts = append(opts, WithEncoder(encOpts...))
	}

	return opts
}
