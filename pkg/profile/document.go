package profile

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/macropower/profedit/pkg/xml"
)

const (
	// RootElement is the root element name of every profile document.
	RootElement = "Profile"

	// Namespace is the default metadata namespace.
	Namespace = "http://soap.sforce.com/2006/04/metadata"
)

// Document is a decoded profile.
//
// Entries of known categories are held per [Category] in document order.
// All other top-level elements are kept as opaque fragments keyed by element
// name. Documents are not safe for concurrent use.
type Document struct {
	entries   map[Category][]*Entry
	fragments map[string][]*xml.Node
	attrs     []xml.Attr
}

// New returns an empty profile document in the metadata namespace.
func New() *Document {
	return &Document{
		entries:   map[Category][]*Entry{},
		fragments: map[string][]*xml.Node{},
		attrs:     []xml.Attr{{Name: "xmlns", Value: Namespace}},
	}
}

// Decode parses a profile document.
func Decode(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data))
}

// Read parses a profile document from r.
func Read(r io.Reader) (*Document, error) {
	root, err := xml.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	doc, err := FromNode(root)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// FromNode builds a document from a decoded root element.
func FromNode(root *xml.Node) (*Document, error) {
	if root.Name != RootElement {
		return nil, fmt.Errorf("%w: root element is <%s>, expected <%s>", ErrParse, root.Name, RootElement)
	}

	doc := &Document{
		entries:   map[Category][]*Entry{},
		fragments: map[string][]*xml.Node{},
		attrs:     slices.Clone(root.Attrs),
	}

	for _, child := range root.Children {
		d, ok := descriptorForElement(child.Name)
		if !ok {
			doc.fragments[child.Name] = append(doc.fragments[child.Name], child.Clone())
			continue
		}

		e, err := entryFromNode(d, child)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		if doc.index(d.Category, e.name) != -1 {
			return nil, fmt.Errorf("%w: %w", ErrParse, &DuplicateEntryError{Category: d.Category, Name: e.name})
		}

		doc.entries[d.Category] = append(doc.entries[d.Category], e)
	}

	return doc, nil
}

// Keys returns the top-level element names present in the document, sorted.
// This is the order in which they are encoded.
func (d *Document) Keys() []string {
	keys := slices.Collect(maps.Keys(d.fragments))

	for c, entries := range d.entries {
		if len(entries) == 0 {
			continue
		}

		desc, _ := c.Descriptor()
		keys = append(keys, desc.Element)
	}

	slices.Sort(keys)

	return keys
}

// Entries returns the entries of a category in document order. An absent
// category has no entries.
func (d *Document) Entries(c Category) []*Entry {
	return slices.Clone(d.entries[c])
}

// Fragments returns the opaque top-level elements with the given name.
func (d *Document) Fragments(name string) []*xml.Node {
	return d.fragments[name]
}

// ToNode converts the document to an element tree with top-level elements in
// sorted order.
func (d *Document) ToNode() *xml.Node {
	root := &xml.Node{
		Name:  RootElement,
		Attrs: slices.Clone(d.attrs),
	}

	for _, key := range d.Keys() {
		if desc, ok := descriptorForElement(key); ok {
			for _, e := range d.entries[desc.Category] {
				root.Children = append(root.Children, e.toNode(desc.Element))
			}

			continue
		}

		for _, n := range d.fragments[key] {
			root.Children = append(root.Children, n.Clone())
		}
	}

	return root
}

// Encode serializes the document in canonical form.
func (d *Document) Encode(opts ...xml.EncoderOpt) ([]byte, error) {
	b, err := xml.Marshal(d.ToNode(), opts...)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	return b, nil
}

// Write serializes the document in canonical form to w.
func (d *Document) Write(w io.Writer, opts ...xml.EncoderOpt) error {
	err := xml.NewEncoder(w, opts...).Encode(d.ToNode())
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	return nil
}

func (d *Document) index(c Category, name string) int {
	return slices.IndexFunc(d.entries[c], func(e *Entry) bool {
		return e.name == name
	})
}
