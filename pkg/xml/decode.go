package xml

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decoder reads a single element tree from an [io.Reader].
type Decoder struct {
	d *xml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	d := xml.NewDecoder(skipBOM(r))
	d.Strict = true

	return &Decoder{d: d}
}

// Unmarshal decodes data into a [Node] tree. A leading UTF-8 byte order mark
// is ignored.
func Unmarshal(data []byte) (*Node, error) {
	return NewDecoder(bytes.NewReader(data)).Decode()
}

// Decode reads the document and returns its root element. Comments,
// processing instructions (including the XML declaration) and directives are
// dropped.
//
// Element and attribute names are kept as written, without namespace
// resolution, so that encoding reproduces them exactly.
func (d *Decoder) Decode() (*Node, error) {
	var (
		root  *Node
		stack []*Node
	)

	for {
		// RawToken leaves prefixes untouched; element nesting is checked below.
		tok, err := d.d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, d.wrap(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Name:  qualifiedName(t.Name),
				Attrs: convertAttrs(t.Attr),
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, d.errorf("unexpected element <%s> after root element", n.Name)
				}

				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}

			stack = append(stack, n)

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 {
				return nil, d.errorf("unexpected end element </%s>", name)
			}

			top := stack[len(stack)-1]
			if top.Name != name {
				return nil, d.errorf("element <%s> closed by </%s>", top.Name, name)
			}

			if !top.IsLeaf() && !top.hasText() {
				top.Text = ""
			}

			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, d.errorf("unexpected text outside of root element")
				}

				continue
			}

			top := stack[len(stack)-1]
			top.Text += string(t)

		case xml.Comment, xml.ProcInst, xml.Directive:
			// Dropped.
		}
	}

	if len(stack) > 0 {
		return nil, d.errorf("unexpected EOF: element <%s> is not closed", stack[len(stack)-1].Name)
	}
	if root == nil {
		return nil, d.errorf("no root element")
	}

	return root, nil
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a UTF-8 byte order mark at the start of r.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)

	b, err := br.Peek(len(bom))
	if err == nil && bytes.Equal(b, bom) {
		_, _ = br.Discard(len(bom))
	}

	return br
}

func (d *Decoder) errorf(format string, args ...any) error {
	return d.wrap(fmt.Errorf(format, args...))
}

func (d *Decoder) wrap(err error) error {
	line, col := d.d.InputPos()

	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Err: errors.New(syntaxErr.Msg), Line: syntaxErr.Line, Column: col}
	}

	return &ParseError{Err: err, Line: line, Column: col}
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}

	return n.Space + ":" + n.Local
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}

	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, Attr{Name: qualifiedName(a.Name), Value: a.Value})
	}

	return out
}
