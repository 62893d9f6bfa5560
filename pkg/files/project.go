package files

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/macropower/profedit/api"
)

// ProjectFile is the name of the Salesforce project definition file.
const ProjectFile = "sfdx-project.json"

// ErrNoProject is returned when no [ProjectFile] is found.
var ErrNoProject = errors.New(ProjectFile + " not found")

// PackageDirectory is one entry of a project's packageDirectories.
type PackageDirectory struct {
	Path    string `json:"path"`
	Default bool   `json:"default,omitempty"`
}

// Project is a Salesforce DX project.
type Project struct {
	// Root is the directory containing [ProjectFile].
	Root               string             `json:"-"`
	PackageDirectories []PackageDirectory `json:"packageDirectories"`
}

// FindProject searches start and its parents for [ProjectFile].
func FindProject(start string) (*Project, error) {
	path, err := api.FindConfigFile(start, []string{ProjectFile})
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if path == "" {
		return nil, fmt.Errorf("%w in %q or any parent directory", ErrNoProject, start)
	}

	return LoadProject(path)
}

// LoadProject reads the project definition at path.
func LoadProject(path string) (*Project, error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	p := &Project{}

	err = json.Unmarshal(data, p)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(p.PackageDirectories) == 0 {
		return nil, fmt.Errorf("%s: no packageDirectories", path)
	}

	p.Root = filepath.Dir(path)

	return p, nil
}

// ProfileDirs returns the directories that hold profiles. When custom is
// set, it is resolved relative to the project root and returned alone.
// Otherwise each package directory contributes its
// `main/default/profiles` directory.
func (p *Project) ProfileDirs(custom string) []string {
	if custom != "" {
		if filepath.IsAbs(custom) {
			return []string{custom}
		}

		return []string{filepath.Join(p.Root, custom)}
	}

	dirs := make([]string, 0, len(p.PackageDirectories))
	for _, d := range p.PackageDirectories {
		dirs = append(dirs, filepath.Join(p.Root, filepath.FromSlash(d.Path), "main", "default", "profiles"))
	}

	return dirs
}
