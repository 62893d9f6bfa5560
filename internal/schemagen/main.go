// Command schemagen writes the JSON schemas of the configuration kinds.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/profedit/api/v1beta1/configs"
	"github.com/macropower/profedit/api/v1beta1/projectconfigs"
	"github.com/macropower/profedit/pkg/yaml"
)

var (
	kind    = flag.String("kind", "config", "Configuration kind: config or project")
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
)

var commentPackages = []string{
	"github.com/macropower/profedit/api/v1beta1",
	"github.com/macropower/profedit/api/v1beta1/configs",
	"github.com/macropower/profedit/api/v1beta1/projectconfigs",
	"github.com/macropower/profedit/pkg/editor",
	"github.com/macropower/profedit/pkg/execs",
	"github.com/macropower/profedit/pkg/rule",
}

func main() {
	flag.Parse()

	var v any

	switch *kind {
	case "config":
		v = configs.New()
	case "project":
		v = projectconfigs.New()
	default:
		log.Fatalf("unknown kind %q", *kind)
	}

	jsData, err := yaml.NewSchemaGenerator(v, commentPackages...).Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
