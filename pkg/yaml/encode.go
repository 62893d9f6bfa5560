package yaml

import (
	"io"

	"github.com/goccy/go-yaml"
)

// Encoder writes reports and configuration files with two-space indentation
// and indented sequences.
type Encoder struct {
	e *yaml.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		e: yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true)),
	}
}

// Encode writes v as one YAML document.
func (e *Encoder) Encode(v any) error {
	//nolint:wrapcheck // Callers add the output context.
	return e.e.Encode(v)
}

// Close flushes the underlying encoder.
func (e *Encoder) Close() error {
	//nolint:wrapcheck // Callers add the output context.
	return e.e.Close()
}
