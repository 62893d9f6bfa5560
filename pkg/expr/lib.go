package expr

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"

	"github.com/macropower/profedit/pkg/files"
	"github.com/macropower/profedit/pkg/profile"
)

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Strings(),
		ext.Lists(),

		// `pathBase` returns the last element of the path.
		// Example: pathBase(file) == "Admin.profile-meta.xml".
		cel.Function("pathBase",
			cel.Overload("path_base", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(stringFunc("pathBase", filepath.Base)),
			),
		),

		// `pathDir` returns all but the last element of the path.
		// Example: pathDir(file).contains("/force-app/").
		cel.Function("pathDir",
			cel.Overload("path_dir", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(stringFunc("pathDir", pathDir)),
			),
		),

		// `pathExt` returns the file extension of the path.
		// Example: pathExt(file) == ".xml".
		cel.Function("pathExt",
			cel.Overload("path_ext", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(stringFunc("pathExt", filepath.Ext)),
			),
		),

		// `profileName` returns the profile name of a file path.
		// Example: profileName(file) in ["Admin", "Standard"].
		cel.Function("profileName",
			cel.Overload("profile_name", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(stringFunc("profileName", profileName)),
			),
		),

		// `profileField` reads a profile and returns the text of a top-level
		// element that is not a permission entry, or null if it is absent or
		// the file can't be read.
		// Example: profileField(file, "userLicense") == "Salesforce".
		cel.Function("profileField",
			cel.Overload("profile_field", []*cel.Type{cel.StringType, cel.StringType}, cel.DynType,
				cel.BinaryBinding(func(path, element ref.Val) ref.Val {
					pathStr, ok := path.Value().(string)
					if !ok {
						return types.NewErr("profileField: invalid file path")
					}

					elementStr, ok := element.Value().(string)
					if !ok {
						return types.NewErr("profileField: invalid element name")
					}

					doc := readProfile(pathStr)
					if doc == nil {
						return types.NullValue
					}

					nodes := doc.Fragments(elementStr)
					if len(nodes) == 0 || !nodes[0].IsLeaf() {
						return types.NullValue
					}

					return types.String(nodes[0].Text)
				}),
			),
		),

		// `hasEntry` reports whether a profile holds an entry for a component.
		// Returns false if the file can't be read or the category is unknown.
		// Example: hasEntry(file, "class", "MyClass").
		cel.Function("hasEntry",
			cel.Overload("has_entry", []*cel.Type{cel.StringType, cel.StringType, cel.StringType}, cel.BoolType,
				cel.FunctionBinding(func(args ...ref.Val) ref.Val {
					strs := make([]string, 0, len(args))
					for _, arg := range args {
						s, ok := arg.Value().(string)
						if !ok {
							return types.NewErr("hasEntry: invalid string value")
						}

						strs = append(strs, s)
					}

					c, err := profile.ParseCategory(strs[1])
					if err != nil {
						slog.Debug("hasEntry: unknown category", slog.Any("error", err))
						return types.False
					}

					doc := readProfile(strs[0])
					if doc == nil {
						return types.False
					}

					_, err = doc.Find(c, strs[2])

					return types.Bool(err == nil)
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

func stringFunc(name string, fn func(string) string) func(ref.Val) ref.Val {
	return func(v ref.Val) ref.Val {
		s, ok := v.Value().(string)
		if !ok {
			return types.NewErr("%s: invalid string value", name)
		}

		return types.String(fn(s))
	}
}

func pathDir(path string) string {
	return filepath.Dir(path)
}

func profileName(path string) string {
	return files.ProfileName(path)
}

// readProfile returns nil if path can't be read or decoded.
func readProfile(path string) *profile.Document {
	logger := slog.With(slog.String("file", path))

	content, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		logger.Debug("failed to read profile, returning null", slog.Any("error", err))
		return nil
	}

	doc, err := profile.Decode(content)
	if err != nil {
		logger.Debug("failed to decode profile, returning null", slog.Any("error", err))
		return nil
	}

	return doc
}
