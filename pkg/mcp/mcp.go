package mcp

import (
	"fmt"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/profile"
)

const (
	name         = "profedit"
	instructions = `MCP Server 'profedit' lists and edits permission entries in Salesforce profile metadata files (*.profile-meta.xml).

When to use these tools:
- Checking which classes, pages, fields, objects, or other components a profile grants access to
- Renaming a component across every profile after it was renamed in source
- Enabling or disabling access to a component in one or more profiles

REQUIRED workflow:
1. Use 'list_entries' with the entry type to see the current entries before editing
2. STOP and READ the output to find the EXACT entry name
3. Use 'edit_entry' with dryRun=true first and review the diff
4. Call 'edit_entry' again with dryRun=false to write the files

Profiles can be given as bare names (e.g. "Admin"), which are looked up in every profile directory of the project, or as paths relative to the project root. Omit them to operate on every profile.
`
)

// typeSchemas overrides the inferred schemas of types that marshal as text.
func typeSchemas() map[reflect.Type]*jsonschema.Schema {
	categories := []any{}
	for _, c := range profile.Categories() {
		categories = append(categories, c)
	}

	statuses := []any{}
	for _, s := range editor.Statuses() {
		statuses = append(statuses, s)
	}

	return map[reflect.Type]*jsonschema.Schema{
		reflect.TypeFor[profile.Category](): {
			Type:        "string",
			Description: "The entry type.",
			Enum:        categories,
		},
		reflect.TypeFor[editor.Status](): {
			Type:        "string",
			Description: "The final state of the file.",
			Enum:        statuses,
		},
	}
}

// schemaFor infers the schema of T. It panics on types that cannot be
// represented, which is a programming error.
func schemaFor[T any]() *jsonschema.Schema {
	s, err := jsonschema.For[T](&jsonschema.ForOptions{TypeSchemas: typeSchemas()})
	if err != nil {
		panic(fmt.Sprintf("infer schema: %v", err))
	}

	return s
}
