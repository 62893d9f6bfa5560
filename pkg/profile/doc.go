// Package profile models Salesforce profile metadata documents and edits the
// permission entries inside them.
//
// A [Document] is decoded from a `.profile-meta.xml` file. Permission entries
// of the known [Category] kinds (class access, field permissions, and so on)
// are decoded into [Entry] values; every other top-level element is carried
// through untouched. Encoding always emits top-level elements in sorted order,
// so the output is stable across edits and runs.
package profile
