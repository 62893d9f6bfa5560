package editor

import (
	"strconv"

	"github.com/macropower/profedit/pkg/profile"
)

// Status is the final state of one file in a batch.
type Status int

const (
	// StatusUnchanged means no edit changed the file. It was not written.
	StatusUnchanged Status = iota
	// StatusModified means the file changed. It was written unless the
	// editor is in dry-run mode.
	StatusModified
	// StatusNotFound means at least one target entry was absent and was not
	// created, and nothing else changed.
	StatusNotFound
	// StatusSkipped means the file was excluded by a rule.
	StatusSkipped
	// StatusFailed means the file could not be processed. See [Result.Err].
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusNotFound:
		return "not-found"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}

	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Statuses returns the names of all statuses.
func Statuses() []string {
	return []string{
		StatusUnchanged.String(),
		StatusModified.String(),
		StatusNotFound.String(),
		StatusSkipped.String(),
		StatusFailed.String(),
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Missing is an edit whose target entry was not found.
type Missing struct {
	// Suggestions are similar entry names in the same category.
	Suggestions []string            `json:"suggestions,omitempty"`
	Request     profile.EditRequest `json:"request"`
}

// Result is the outcome of processing one file.
type Result struct {
	// Err is set when Status is [StatusFailed]. It matches [ErrIO] for read
	// and write failures and [profile.ErrParse] for malformed files.
	Err error `json:"-"`

	Path    string    `json:"path"`
	Missing []Missing `json:"missing,omitempty"`

	// Original is the file content before editing.
	Original []byte `json:"-"`

	// Updated is the new file content. It is only set when Status is
	// [StatusModified].
	Updated []byte `json:"-"`

	Status Status `json:"status"`

	// Written reports whether the file was written to disk.
	Written bool `json:"written"`
}

// Changed returns the paths of modified files, in order.
func Changed(results []Result) []string {
	paths := []string{}
	for _, r := range results {
		if r.Status == StatusModified {
			paths = append(paths, r.Path)
		}
	}

	return paths
}

// Failed returns the results that have an error, in order.
func Failed(results []Result) []Result {
	failed := []Result{}
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}

	return failed
}
