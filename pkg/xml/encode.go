package xml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// DefaultDeclaration is the XML declaration written before the root element.
	DefaultDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

	// DefaultIndent is the indentation unit.
	DefaultIndent = "    "
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\r", "&#xD;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		`"`, "&quot;",
		"\t", "&#x9;",
		"\n", "&#xA;",
		"\r", "&#xD;",
	)
)

// Encoder writes [Node] trees in canonical form.
type Encoder struct {
	w           io.Writer
	declaration string
	indent      string
}

// EncoderOpt configures an [Encoder].
type EncoderOpt func(*Encoder)

// WithDeclaration sets the XML declaration line. An empty string omits it.
func WithDeclaration(decl string) EncoderOpt {
	return func(e *Encoder) {
		e.declaration = decl
	}
}

// WithIndent sets the indentation unit.
func WithIndent(indent string) EncoderOpt {
	return func(e *Encoder) {
		e.indent = indent
	}
}

func NewEncoder(w io.Writer, opts ...EncoderOpt) *Encoder {
	e := &Encoder{
		w:           w,
		declaration: DefaultDeclaration,
		indent:      DefaultIndent,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Marshal encodes n into canonical XML.
func Marshal(n *Node, opts ...EncoderOpt) ([]byte, error) {
	b := &bytes.Buffer{}

	err := NewEncoder(b, opts...).Encode(n)
	if err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Encode writes the declaration followed by the tree rooted at n.
func (e *Encoder) Encode(n *Node) error {
	if n == nil {
		return errors.New("encode: nil node")
	}

	b := &bytes.Buffer{}
	if e.declaration != "" {
		b.WriteString(e.declaration)
		b.WriteByte('\n')
	}

	e.writeNode(b, n, 0)

	_, err := e.w.Write(b.Bytes())
	if err != nil {
		return fmt.Errorf("write xml: %w", err)
	}

	return nil
}

func (e *Encoder) writeNode(b *bytes.Buffer, n *Node, depth int) {
	pad := strings.Repeat(e.indent, depth)

	b.WriteString(pad)
	b.WriteByte('<')
	b.WriteString(n.Name)

	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Value))
		b.WriteByte('"')
	}

	if n.IsLeaf() {
		if n.Text == "" {
			b.WriteString("/>\n")
			return
		}

		b.WriteByte('>')
		b.WriteString(textEscaper.Replace(n.Text))
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteString(">\n")

		return
	}

	b.WriteString(">\n")

	if n.hasText() {
		b.WriteString(pad)
		b.WriteString(e.indent)
		b.WriteString(textEscaper.Replace(strings.TrimSpace(n.Text)))
		b.WriteByte('\n')
	}

	for _, c := range n.Children {
		e.writeNode(b, c, depth+1)
	}

	b.WriteString(pad)
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteString(">\n")
}
