// Package xml reads and writes generic XML element trees.
//
// Decoding produces a [Node] tree with comments, processing instructions and
// directives removed. Encoding writes a tree in a canonical layout: a fixed
// indentation unit, one element per line, leaf content collapsed onto the
// element's line, and a trailing newline. The same tree always encodes to the
// same bytes.
package xml
