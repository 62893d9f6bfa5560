package yaml

import (
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// Decoder decodes YAML documents, converting parser failures to [*Error]s
// that keep the offending token.
type Decoder struct {
	d *yaml.Decoder
}

// DecoderOpt configures a [Decoder].
type DecoderOpt func(*decoderOptions)

type decoderOptions struct {
	strict bool
}

// WithStrict makes the decoder fail on mapping keys that have no matching
// struct field.
func WithStrict() DecoderOpt {
	return func(o *decoderOptions) {
		o.strict = true
	}
}

func NewDecoder(r io.Reader, opts ...DecoderOpt) *Decoder {
	o := &decoderOptions{}
	for _, opt := range opts {
		opt(o)
	}

	yamlOpts := []yaml.DecodeOption{yaml.AllowDuplicateMapKey()}
	if o.strict {
		yamlOpts = append(yamlOpts, yaml.DisallowUnknownField())
	}

	return &Decoder{d: yaml.NewDecoder(r, yamlOpts...)}
}

func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	//nolint:wrapcheck // Non-parser errors are returned as is.
	return err
}
