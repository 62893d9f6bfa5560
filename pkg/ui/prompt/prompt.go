// Package prompt asks the user for confirmation on a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when stdin or stdout is not a terminal.
var ErrNotInteractive = errors.New("not running interactively")

// IsInteractive reports whether stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Theme returns the form theme.
func Theme() *huh.Theme {
	h := huh.ThemeBase()

	accent := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	subtle := lipgloss.AdaptiveColor{Light: "#847A85", Dark: "#979797"}

	h.Focused.Base = h.Focused.Base.BorderForeground(accent)
	h.Focused.Title = h.Focused.Title.Foreground(accent).Bold(true)
	h.Focused.NoteTitle = h.Focused.NoteTitle.Foreground(accent).Bold(true).MarginBottom(1)
	h.Focused.Description = h.Focused.Description.Foreground(subtle)
	h.Focused.FocusedButton = h.Focused.FocusedButton.Background(accent)
	h.Blurred = h.Focused
	h.Blurred.Base = h.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return h
}

// ConfirmDeploy asks whether members should be deployed to targetOrg.
func ConfirmDeploy(ctx context.Context, targetOrg string, members []string) (bool, error) {
	if !IsInteractive() {
		return false, ErrNotInteractive
	}

	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Deploy %d profile(s) to %s?", len(members), targetOrg)).
				Description(strings.Join(members, "\n")).
				Affirmative("Deploy").
				Negative("Cancel").
				Value(&confirmed),
		),
	).
		WithShowHelp(false).
		WithTheme(Theme())

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("run deploy prompt: %w", err)
	}

	return confirmed, nil
}
