package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	xstrings "github.com/charmbracelet/x/exp/strings"

	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/files"
)

// FileReport is the report of one file.
type FileReport struct {
	Path    string           `json:"path"`
	Error   string           `json:"error,omitempty"`
	Diff    string           `json:"diff,omitempty"`
	Missing []editor.Missing `json:"missing,omitempty"`
	Status  editor.Status    `json:"status"`
	Written bool             `json:"written"`
}

// Summary counts files by status.
type Summary struct {
	Modified  int    `json:"modified"`
	Unchanged int    `json:"unchanged"`
	NotFound  int    `json:"notFound"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Bytes     uint64 `json:"bytes"`
}

// EditReport is the machine-readable report of a batch.
type EditReport struct {
	Files   []FileReport `json:"files"`
	Summary Summary      `json:"summary"`
	DryRun  bool         `json:"dryRun"`
}

// NewEditReport builds an [EditReport] from results. When diff is set,
// modified files include a unified diff.
func (p *Printer) NewEditReport(results []editor.Result) EditReport {
	rep := EditReport{
		Files:  make([]FileReport, 0, len(results)),
		DryRun: p.dryRun,
	}

	for _, r := range results {
		fr := FileReport{
			Path:    p.rel(r.Path),
			Status:  r.Status,
			Written: r.Written,
			Missing: r.Missing,
		}
		if r.Err != nil {
			fr.Error = r.Err.Error()
		}
		if p.diff && r.Status == editor.StatusModified {
			fr.Diff = Diff(fr.Path, r.Original, r.Updated)
		}

		rep.Files = append(rep.Files, fr)

		switch r.Status {
		case editor.StatusModified:
			rep.Summary.Modified++
			rep.Summary.Bytes += uint64(len(r.Updated))
		case editor.StatusUnchanged:
			rep.Summary.Unchanged++
		case editor.StatusNotFound:
			rep.Summary.NotFound++
		case editor.StatusSkipped:
			rep.Summary.Skipped++
		case editor.StatusFailed:
			rep.Summary.Failed++
		}
	}

	return rep
}

// Edit writes the report of an edit or format batch.
func (p *Printer) Edit(results []editor.Result) error {
	rep := p.NewEditReport(results)

	done, err := p.encode(rep)
	if done {
		return err
	}

	var b strings.Builder

	if rep.Summary.Modified > 0 {
		b.WriteString(p.changeTable(rep))
		b.WriteByte('\n')
	}

	for _, fr := range rep.Files {
		if fr.Diff != "" {
			b.WriteString(p.highlightDiff(fr.Diff))
		}
	}

	for _, fr := range rep.Files {
		for _, m := range fr.Missing {
			b.WriteString(p.styles.warn.Render(notFoundMessage(fr.Path, m)))
			b.WriteByte('\n')
		}
		if fr.Error != "" {
			b.WriteString(p.styles.fail.Render("error:") + " " + fr.Error)
			b.WriteByte('\n')
		}
	}

	b.WriteString(p.summaryLine(rep))
	b.WriteByte('\n')

	_, err = fmt.Fprint(p.w, b.String())
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func (p *Printer) changeTable(rep EditReport) string {
	action := "Changed"
	if rep.DryRun {
		action = "Would change"
	}

	t := p.newTable("Action", "MetadataType", "ProjectFile")

	for _, fr := range rep.Files {
		if fr.Status == editor.StatusModified {
			t.Row(action, files.MetadataType, fr.Path)
		}
	}

	return t.String()
}

func notFoundMessage(path string, m editor.Missing) string {
	msg := fmt.Sprintf("%s %q not found in %s", m.Request.Category, m.Request.Target, path)
	if len(m.Suggestions) == 0 {
		return msg
	}

	quoted := make([]string, 0, len(m.Suggestions))
	for _, s := range m.Suggestions {
		quoted = append(quoted, strconv.Quote(s))
	}

	return msg + " (did you mean " + strings.Join(quoted, ", ") + "?)"
}

func (p *Printer) summaryLine(rep EditReport) string {
	s := rep.Summary

	parts := []string{}
	add := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}

	add(s.Modified, "modified")
	add(s.Unchanged, "unchanged")
	add(s.NotFound, "not found")
	add(s.Skipped, "skipped")
	add(s.Failed, "failed")

	if len(parts) == 0 {
		return p.styles.subtle.Render("no profiles")
	}

	line := fmt.Sprintf("%d %s: %s", len(rep.Files), plural(len(rep.Files), "profile"), xstrings.EnglishJoin(parts, true))

	if s.Modified > 0 {
		verb := "wrote"
		if rep.DryRun {
			verb = "would write"
		}

		line += fmt.Sprintf(" (%s %s)", verb, humanize.Bytes(s.Bytes))
	}

	switch {
	case s.Failed > 0:
		return p.styles.fail.Render(line)
	case s.Modified > 0:
		return p.styles.success.Render(line)
	}

	return p.styles.subtle.Render(line)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
