package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// Suffix is the file name suffix of profile metadata files.
	Suffix = ".profile-meta.xml"

	// Ext is the extension of files considered when scanning a directory.
	Ext = ".xml"

	// MetadataType is the metadata type name of profiles.
	MetadataType = "Profile"
)

// Resolve returns the profile file paths to edit.
//
// With no profiles, every `.xml` file in dirs is returned. A profile
// containing a path separator is resolved relative to basePath, and a bare
// profile name is resolved once per directory in dirs. In both cases
// [Suffix] is appended unless the profile already ends with it.
func Resolve(dirs, profiles []string, basePath string) ([]string, error) {
	if len(profiles) == 0 {
		return ScanDirs(dirs...)
	}

	paths := []string{}
	for _, p := range profiles {
		if p == "" {
			continue
		}

		name := p
		if !strings.HasSuffix(name, Suffix) {
			name += Suffix
		}

		if strings.ContainsAny(p, `/\`) {
			paths = append(paths, filepath.Join(basePath, filepath.FromSlash(name)))
			continue
		}

		for _, dir := range dirs {
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	return paths, nil
}

// ScanDirs returns the `.xml` files directly inside each directory, sorted
// per directory. Directories that do not exist are skipped.
func ScanDirs(dirs ...string) ([]string, error) {
	paths := []string{}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read directory %q: %w", dir, err)
		}

		found := []string{}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != Ext {
				continue
			}

			found = append(found, filepath.Join(dir, e.Name()))
		}

		slices.Sort(found)
		paths = append(paths, found...)
	}

	return paths, nil
}

// ProfileName returns the profile name of a profile file: its base name up
// to the first ".".
func ProfileName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i != -1 {
		return base[:i]
	}

	return base
}

// Manifest returns the deploy manifest members for paths, in order and
// without duplicates, e.g. "Profile:Admin".
func Manifest(paths []string) []string {
	members := []string{}
	for _, p := range paths {
		m := MetadataType + ":" + ProfileName(p)
		if !slices.Contains(members, m) {
			members = append(members, m)
		}
	}

	return members
}

// Rel returns path relative to root, or path itself when that fails.
func Rel(root, path string) string {
	if root == "" {
		return path
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}
