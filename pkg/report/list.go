package report

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/profile"
)

// ListingReport is the entries of one file.
type ListingReport struct {
	Path    string             `json:"path"`
	Error   string             `json:"error,omitempty"`
	Entries []editor.EntryInfo `json:"entries"`
	Status  editor.Status      `json:"status"`
}

// NewListingReports builds a [ListingReport] per listing, with paths
// relative to the printer's root.
func (p *Printer) NewListingReports(listings []editor.Listing) []ListingReport {
	reps := make([]ListingReport, 0, len(listings))
	for _, l := range listings {
		lr := ListingReport{
			Path:    p.rel(l.Path),
			Status:  l.Status,
			Entries: l.Entries,
		}
		if l.Err != nil {
			lr.Error = l.Err.Error()
		}
		if lr.Entries == nil {
			lr.Entries = []editor.EntryInfo{}
		}

		reps = append(reps, lr)
	}

	return reps
}

// List writes the entries of category c in each file.
func (p *Printer) List(c profile.Category, listings []editor.Listing) error {
	reps := p.NewListingReports(listings)

	done, err := p.encode(reps)
	if done {
		return err
	}

	d, _ := c.Descriptor()

	t := p.newTable("ProjectFile", d.NameField, d.EnabledField)
	for _, lr := range reps {
		switch {
		case lr.Error != "":
			t.Row(lr.Path, p.styles.fail.Render(lr.Error), "")
		case lr.Status == editor.StatusSkipped:
			t.Row(lr.Path, p.styles.subtle.Render("(skipped)"), "")
		}

		for _, e := range lr.Entries {
			t.Row(lr.Path, e.Name, strconv.FormatBool(e.Enabled))
		}
	}

	_, err = fmt.Fprintln(p.w, t.String())
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// CategoryReport describes one category.
type CategoryReport struct {
	Category     profile.Category `json:"category"`
	Element      string           `json:"element"`
	NameField    string           `json:"nameField"`
	EnabledField string           `json:"enabledField"`
	Description  string           `json:"description"`
}

// Categories writes the known entry categories.
func (p *Printer) Categories(ds []profile.Descriptor) error {
	reps := make([]CategoryReport, 0, len(ds))
	for _, d := range ds {
		reps = append(reps, CategoryReport{
			Category:     d.Category,
			Element:      d.Element,
			NameField:    d.NameField,
			EnabledField: d.EnabledField,
			Description:  d.Description,
		})
	}

	done, err := p.encode(reps)
	if done {
		return err
	}

	t := p.newTable("Type", "Element", "Name", "Enabled", "Description")
	for _, r := range reps {
		t.Row(string(r.Category), r.Element, r.NameField, r.EnabledField, r.Description)
	}

	_, err = fmt.Fprintln(p.w, t.String())
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func (p *Printer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.header
			}

			return p.styles.cell
		})
}
