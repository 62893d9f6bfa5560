package yaml

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"golang.org/x/tools/go/packages"
)

// SchemaGenerator generates JSON schemas for configuration types, using the
// Go doc comments of the given packages as descriptions.
type SchemaGenerator struct {
	v        any
	packages []string
}

// NewSchemaGenerator creates a [SchemaGenerator] for v. Comments are read
// from the listed package import paths.
func NewSchemaGenerator(v any, packages ...string) *SchemaGenerator {
	return &SchemaGenerator{v: v, packages: packages}
}

// Generate returns the indented JSON schema.
func (g *SchemaGenerator) Generate() ([]byte, error) {
	r := &jsonschema.Reflector{
		Namer: definitionName,
	}

	err := g.addComments(r)
	if err != nil {
		return nil, err
	}

	b, err := json.MarshalIndent(r.Reflect(g.v), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(b, '\n'), nil
}

func (g *SchemaGenerator) addComments(r *jsonschema.Reflector) error {
	if len(g.packages) == 0 {
		return nil
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedModule,
	}, g.packages...)
	if err != nil {
		return fmt.Errorf("load packages: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Comment keys are built from paths relative to the working directory,
	// so walk each package from its module root.
	defer os.Chdir(wd) //nolint:errcheck // Best effort.

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return fmt.Errorf("load package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		if pkg.Module == nil {
			return fmt.Errorf("load package %s: no module", pkg.PkgPath)
		}

		rel, err := filepath.Rel(pkg.Module.Dir, pkg.Dir)
		if err != nil {
			return fmt.Errorf("package %s: %w", pkg.PkgPath, err)
		}

		err = os.Chdir(pkg.Module.Dir)
		if err != nil {
			return fmt.Errorf("change directory: %w", err)
		}

		err = r.AddGoComments(pkg.Module.Path, filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("add comments for %s: %w", pkg.PkgPath, err)
		}
	}

	return nil
}

// definitionName names schema definitions after their type, prefixing
// component Config types with their package name so that they do not
// collide with the top-level Config.
func definitionName(t reflect.Type) string {
	name := t.Name()
	pkg := path.Base(t.PkgPath())

	if name != "Config" || pkg == "configs" || pkg == "." {
		return name
	}

	return strings.ToUpper(pkg[:1]) + pkg[1:] + name
}
