package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/macropower/profedit/pkg/xml"
)

// Entry is one component's permission record within a category.
//
// The entry keeps its child elements in their original order. The name and
// enabled flag are mirrored into those elements whenever they change, so an
// entry always encodes exactly as it reads.
type Entry struct {
	nameNode    *xml.Node
	enabledNode *xml.Node
	name        string
	fields      []*xml.Node
	enabled     bool
}

// newEntry builds an entry with the descriptor's fields in sorted order.
func newEntry(d Descriptor, name string, enabled bool) *Entry {
	defaults := map[string]string{}
	for _, f := range d.Defaults {
		defaults[f.Name] = f.Value
	}

	e := &Entry{name: name, enabled: enabled}

	for _, field := range d.Fields() {
		var n *xml.Node

		switch field {
		case d.NameField:
			n = xml.NewLeaf(field, name)
			e.nameNode = n
		case d.EnabledField:
			n = xml.NewLeaf(field, strconv.FormatBool(enabled))
			e.enabledNode = n
		default:
			n = xml.NewLeaf(field, defaults[field])
		}

		e.fields = append(e.fields, n)
	}

	return e
}

// entryFromNode decodes an entry element of the descriptor's category.
func entryFromNode(d Descriptor, n *xml.Node) (*Entry, error) {
	e := &Entry{}

	for _, c := range n.Children {
		field := c.Clone()
		e.fields = append(e.fields, field)

		switch field.Name {
		case d.NameField:
			if e.nameNode != nil {
				return nil, fmt.Errorf("%s: repeated <%s>", d.Element, d.NameField)
			}

			e.nameNode = field
			e.name = field.Text

		case d.EnabledField:
			if e.enabledNode != nil {
				return nil, fmt.Errorf("%s: repeated <%s>", d.Element, d.EnabledField)
			}

			v, err := strconv.ParseBool(strings.TrimSpace(field.Text))
			if err != nil {
				return nil, fmt.Errorf("%s %q: <%s> must be true or false, got %q",
					d.Element, e.name, d.EnabledField, field.Text)
			}

			e.enabledNode = field
			e.enabled = v
		}
	}

	if e.nameNode == nil || e.name == "" {
		return nil, fmt.Errorf("%s: missing <%s>", d.Element, d.NameField)
	}
	if e.enabledNode == nil {
		return nil, fmt.Errorf("%s %q: missing <%s>", d.Element, e.name, d.EnabledField)
	}

	return e, nil
}

// Name returns the component name.
func (e *Entry) Name() string {
	return e.name
}

// Enabled returns the entry's enabled flag.
func (e *Entry) Enabled() bool {
	return e.enabled
}

// Field returns the text of the first child element with the given name.
func (e *Entry) Field(name string) (string, bool) {
	for _, f := range e.fields {
		if f.Name == name {
			return f.Text, true
		}
	}

	return "", false
}

func (e *Entry) setName(name string) bool {
	if e.name == name {
		return false
	}

	e.name = name
	e.nameNode.Text = name

	return true
}

func (e *Entry) setEnabled(enabled bool) bool {
	if e.enabled == enabled {
		return false
	}

	e.enabled = enabled
	e.enabledNode.Text = strconv.FormatBool(enabled)

	return true
}

func (e *Entry) toNode(element string) *xml.Node {
	n := &xml.Node{Name: element, Children: make([]*xml.Node, 0, len(e.fields))}
	for _, f := range e.fields {
		n.Children = append(n.Children, f.Clone())
	}

	return n
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s=%t", e.name, e.enabled)
}
