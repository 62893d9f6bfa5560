package xml

import (
	"strings"
	"unicode/utf8"
)

// Attr is an element attribute, with the name exactly as written in the
// source (including any prefix, e.g. "xmlns:xsi").
type Attr struct {
	Name  string
	Value string
}

// Node is an XML element.
//
// Leaf elements carry their content in Text. Elements with children only keep
// Text when it contains something other than whitespace.
type Node struct {
	Name     string
	Text     string
	Attrs    []Attr
	Children []*Node
}

// NewLeaf creates a leaf element with the given text content.
func NewLeaf(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// IsLeaf reports whether the node has no child elements.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// ChildText returns the text of the first direct child with the given name.
func (n *Node) ChildText(name string) (string, bool) {
	c := n.Child(name)
	if c == nil {
		return "", false
	}

	return c.Text, true
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{
		Name: n.Name,
		Text: n.Text,
	}
	if n.Attrs != nil {
		c.Attrs = append([]Attr{}, n.Attrs...)
	}
	if n.Children != nil {
		c.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			c.Children = append(c.Children, child.Clone())
		}
	}

	return c
}

func (n *Node) hasText() bool {
	return strings.TrimSpace(n.Text) != ""
}

// ValidText reports whether s is valid UTF-8 and holds only characters
// allowed in XML 1.0 character data.
func ValidText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}

	for _, r := range s {
		if !isXMLChar(r) {
			return false
		}
	}

	return true
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
