// Package report renders the results of profile edits for people and for
// other programs.
//
// Text output uses lipgloss tables and chroma-highlighted unified diffs.
// JSON and YAML output contain the same information in a stable shape.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/macropower/profedit/pkg/yaml"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by [ParseFormat].
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns the names of all output formats.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(Formats(), string(f)) {
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, s, strings.Join(Formats(), ", "))
	}

	return f, nil
}

// Printer writes reports to an output.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	style    *chroma.Style
	styles   textStyles
	root     string
	format   Format
	profile  termenv.Profile
	diff     bool
	dryRun   bool
}

// Option configures a [Printer].
type Option func(*Printer)

// WithFormat sets the output format. Defaults to [FormatText].
func WithFormat(f Format) Option {
	return func(p *Printer) {
		p.format = f
	}
}

// WithRoot shows paths relative to root, usually the project directory.
func WithRoot(root string) Option {
	return func(p *Printer) {
		p.root = root
	}
}

// WithDiff includes unified diffs of modified files.
func WithDiff(diff bool) Option {
	return func(p *Printer) {
		p.diff = diff
	}
}

// WithDryRun reports modified files as pending rather than written.
func WithDryRun(dryRun bool) Option {
	return func(p *Printer) {
		p.dryRun = dryRun
	}
}

// WithColorProfile sets the color profile of text output. Defaults to the
// profile detected for the output writer.
func WithColorProfile(profile termenv.Profile) Option {
	return func(p *Printer) {
		p.profile = profile
	}
}

// WithStyle sets the chroma style used to highlight diffs.
func WithStyle(name string) Option {
	return func(p *Printer) {
		if s := styles.Get(name); s != nil {
			p.style = s
		}
	}
}

// New creates a new [Printer] writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:       w,
		format:  FormatText,
		style:   styles.Get("github"),
		profile: termenv.NewOutput(w).EnvColorProfile(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.renderer = lipgloss.NewRenderer(w)
	p.renderer.SetColorProfile(p.profile)
	p.styles = newTextStyles(p.renderer)

	return p
}

func (p *Printer) rel(path string) string {
	if p.root == "" {
		return path
	}

	rel, err := filepath.Rel(p.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return filepath.ToSlash(rel)
}

// encode writes v in the machine-readable formats. It reports false for
// [FormatText].
func (p *Printer) encode(v any) (bool, error) {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")

		err := enc.Encode(v)
		if err != nil {
			return true, fmt.Errorf("encode json: %w", err)
		}

		return true, nil

	case FormatYAML:
		enc := yaml.NewEncoder(p.w)

		err := enc.Encode(v)
		if err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}

		err = enc.Close()
		if err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}

		return true, nil

	case FormatText:
		return false, nil
	}

	return true, fmt.Errorf("%w: %q", ErrUnknownFormat, p.format)
}

type textStyles struct {
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	subtle  lipgloss.Style
}

func newTextStyles(r *lipgloss.Renderer) textStyles {
	return textStyles{
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "238"}),
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"}),
		warn:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "136", Dark: "220"}),
		fail:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Bold(true),
		subtle:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "243"}),
	}
}
