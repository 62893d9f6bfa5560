package uitest

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"

	tea "github.com/charmbracelet/bubbletea"
)

// BubbleModel is a constraint for Bubble Tea model types that return their
// concrete type from Update instead of [tea.Model].
type BubbleModel[T any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (T, tea.Cmd) //nolint:ireturn // Must satisfy [tea.Model].
	View() string
}

// modelAdapter wraps a concrete model type to satisfy [tea.Model].
type modelAdapter[T BubbleModel[T]] struct {
	model T
}

func (a modelAdapter[T]) Init() tea.Cmd {
	return a.model.Init()
}

//nolint:ireturn // Must satisfy [tea.Model].
func (a modelAdapter[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.model.Update(msg)
	return modelAdapter[T]{model: m}, cmd
}

func (a modelAdapter[T]) View() string {
	return a.model.View()
}

// SetupColorProfile sets the color profile to TrueColor for consistent test output.
func SetupColorProfile() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// NewTestModel creates a new test model with the given terminal size.
func NewTestModel[T BubbleModel[T]](tb testing.TB, m T, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(
		tb, modelAdapter[T]{model: m},
		teatest.WithInitialTermSize(size.Width, size.Height),
	)
}

// FinalModel waits for the program to finish and returns the final model.
func FinalModel[T BubbleModel[T]](tb testing.TB, tm *teatest.TestModel, timeout time.Duration) T {
	tb.Helper()

	final := tm.FinalModel(tb, teatest.WithFinalTimeout(timeout))

	a, ok := final.(modelAdapter[T])
	if !ok {
		tb.Fatalf("unexpected final model %T", final)
	}

	return a.model
}

// WaitForText waits until the plain text output contains s.
func WaitForText(tb testing.TB, r io.Reader, s string, opts ...teatest.WaitForOption) {
	tb.Helper()

	teatest.WaitFor(tb, r, func(b []byte) bool {
		return strings.Contains(PlainText(string(b)), s)
	}, opts...)
}

// PlainText strips all ANSI sequences.
func PlainText(s string) string {
	return ansi.Strip(s)
}
