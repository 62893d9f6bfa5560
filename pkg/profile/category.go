package profile

import (
	"fmt"
	"slices"
	"strings"
)

// Category identifies a kind of permission entry.
type Category string

const (
	CategoryApp              Category = "app"
	CategoryClass            Category = "class"
	CategoryCustomMetadata   Category = "custom-metadata"
	CategoryCustomPermission Category = "custom-permission"
	CategoryCustomSetting    Category = "custom-setting"
	CategoryDataSource       Category = "data-source"
	CategoryField            Category = "field"
	CategoryFlow             Category = "flow"
	CategoryObject           Category = "object"
	CategoryPage             Category = "page"
	CategoryRecordType       Category = "record-type"
	CategoryUserPermission   Category = "user-permission"
)

// Field is a leaf element with a fixed default value, used when creating
// entries.
type Field struct {
	Name  string
	Value string
}

// Descriptor describes the XML shape of a [Category].
type Descriptor struct {
	// Category is the short name used on the command line.
	Category Category
	// Element is the top-level profile element holding each entry.
	Element string
	// NameField is the child element holding the component name.
	NameField string
	// EnabledField is the child element the enabled flag maps to.
	EnabledField string
	// Description is a human readable summary.
	Description string
	// Defaults are the other required fields of a new entry.
	Defaults []Field
}

// Fields returns the names of all child elements a new entry has, sorted.
func (d Descriptor) Fields() []string {
	names := []string{d.NameField, d.EnabledField}
	for _, f := range d.Defaults {
		names = append(names, f.Name)
	}

	slices.Sort(names)

	return names
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Category, d.Element)
}

var descriptors = []Descriptor{
	{
		Category:     CategoryApp,
		Element:      "applicationVisibilities",
		NameField:    "application",
		EnabledField: "visible",
		Description:  "Application visibility",
		Defaults:     []Field{{Name: "default", Value: "false"}},
	},
	{
		Category:     CategoryClass,
		Element:      "classAccesses",
		NameField:    "apexClass",
		EnabledField: "enabled",
		Description:  "Apex class access",
	},
	{
		Category:     CategoryCustomMetadata,
		Element:      "customMetadataTypeAccesses",
		NameField:    "name",
		EnabledField: "enabled",
		Description:  "Custom metadata type access",
	},
	{
		Category:     CategoryCustomPermission,
		Element:      "customPermissions",
		NameField:    "name",
		EnabledField: "enabled",
		Description:  "Custom permission",
	},
	{
		Category:     CategoryCustomSetting,
		Element:      "customSettingAccesses",
		NameField:    "name",
		EnabledField: "enabled",
		Description:  "Custom setting access",
	},
	{
		Category:     CategoryDataSource,
		Element:      "externalDataSourceAccesses",
		NameField:    "externalDataSource",
		EnabledField: "enabled",
		Description:  "External data source access",
	},
	{
		Category:     CategoryField,
		Element:      "fieldPermissions",
		NameField:    "field",
		EnabledField: "readable",
		Description:  "Field permission (enabled maps to readable)",
		Defaults:     []Field{{Name: "editable", Value: "false"}},
	},
	{
		Category:     CategoryFlow,
		Element:      "flowAccesses",
		NameField:    "flow",
		EnabledField: "enabled",
		Description:  "Flow access",
	},
	{
		Category:     CategoryObject,
		Element:      "objectPermissions",
		NameField:    "object",
		EnabledField: "allowRead",
		Description:  "Object permission (enabled maps to allowRead)",
		Defaults: []Field{
			{Name: "allowCreate", Value: "false"},
			{Name: "allowDelete", Value: "false"},
			{Name: "allowEdit", Value: "false"},
			{Name: "modifyAllRecords", Value: "false"},
			{Name: "viewAllRecords", Value: "false"},
		},
	},
	{
		Category:     CategoryPage,
		Element:      "pageAccesses",
		NameField:    "apexPage",
		EnabledField: "enabled",
		Description:  "Visualforce page access",
	},
	{
		Category:     CategoryRecordType,
		Element:      "recordTypeVisibilities",
		NameField:    "recordType",
		EnabledField: "visible",
		Description:  "Record type visibility",
		Defaults:     []Field{{Name: "default", Value: "false"}},
	},
	{
		Category:     CategoryUserPermission,
		Element:      "userPermissions",
		NameField:    "name",
		EnabledField: "enabled",
		Description:  "User permission",
	},
}

var (
	byCategory = map[Category]Descriptor{}
	byElement  = map[string]Descriptor{}
)

func init() {
	for _, d := range descriptors {
		byCategory[d.Category] = d
		byElement[d.Element] = d
	}
}

// Descriptors returns all known descriptors, sorted by category.
func Descriptors() []Descriptor {
	return slices.Clone(descriptors)
}

// Categories returns all known category names, sorted.
func Categories() []string {
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, string(d.Category))
	}

	return names
}

// Descriptor returns the [Descriptor] for c.
func (c Category) Descriptor() (Descriptor, bool) {
	d, ok := byCategory[c]

	return d, ok
}

// ParseCategory resolves a category from its short name (e.g. "class") or
// its element name (e.g. "classAccesses").
func ParseCategory(s string) (Category, error) {
	if d, ok := byCategory[Category(strings.ToLower(s))]; ok {
		return d.Category, nil
	}
	if d, ok := byElement[s]; ok {
		return d.Category, nil
	}

	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownCategory, s, strings.Join(Categories(), ", "))
}

func descriptorForElement(element string) (Descriptor, bool) {
	d, ok := byElement[element]

	return d, ok
}
