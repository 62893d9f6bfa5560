package editor

import (
	"context"

	"github.com/macropower/profedit/pkg/profile"
)

// EntryInfo is a summary of one permission entry.
type EntryInfo struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Listing is the entries of one category in one file.
type Listing struct {
	Err     error       `json:"-"`
	Path    string      `json:"path"`
	Entries []EntryInfo `json:"entries"`
	Status  Status      `json:"status"`
}

// List returns the entries of category c in each file, in the same order as
// paths. Files are never written.
func (e *Editor) List(ctx context.Context, paths []string, c profile.Category) []Listing {
	entries := make([][]EntryInfo, len(paths))

	results := e.each(ctx, "list", paths, func(_ context.Context, i int, path string) Result {
		res := Result{Path: path}

		doc, err := e.read(path, &res)
		if err != nil {
			res.Err = err
			return res
		}

		infos := []EntryInfo{}
		for _, entry := range doc.Entries(c) {
			infos = append(infos, EntryInfo{Name: entry.Name(), Enabled: entry.Enabled()})
		}

		entries[i] = infos

		return res
	})

	listings := make([]Listing, len(results))
	for i, r := range results {
		listings[i] = Listing{
			Path:    r.Path,
			Status:  r.Status,
			Err:     r.Err,
			Entries: entries[i],
		}
	}

	return listings
}
