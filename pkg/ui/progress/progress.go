// Package progress shows a spinner while a long-running action completes.
package progress

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the user quits before the action finishes.
var ErrInterrupted = errors.New("interrupted")

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})

// Action is the work to run.
type Action func(ctx context.Context) error

type doneMsg struct {
	err error
}

// Model is a spinner with a title that quits once its [Action] returns.
type Model struct {
	ctx     context.Context //nolint:containedctx // Passed to the action command.
	err     error
	action  Action
	cancel  context.CancelFunc
	title   string
	spinner spinner.Model
	done    bool
}

// New creates a new [Model] running action with ctx.
func New(ctx context.Context, title string, action Action) Model {
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = titleStyle

	return Model{
		ctx:     ctx,
		action:  action,
		cancel:  cancel,
		title:   title,
		spinner: sp,
	}
}

// Init starts the spinner and the action.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m Model) run() tea.Msg {
	return doneMsg{err: m.action(m.ctx)}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		m.cancel()

		return m, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			m.err = ErrInterrupted
			m.cancel()

			return m, tea.Quit
		}

	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd

			m.spinner, cmd = m.spinner.Update(msg)

			return m, cmd
		}
	}

	return m, nil
}

// View renders the spinner. It is empty once the action is done.
func (m Model) View() string {
	if m.done {
		return ""
	}

	return m.spinner.View() + " " + titleStyle.Render(m.title) + "\n"
}

// Err returns the action's error, or [ErrInterrupted].
func (m Model) Err() error {
	return m.err
}

type program struct {
	Model
}

//nolint:ireturn // Must satisfy [tea.Model].
func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := p.Model.Update(msg)
	return program{Model: m}, cmd
}

// Run shows a spinner on w until action returns, and returns its error.
func Run(ctx context.Context, w io.Writer, title string, action Action) error {
	p := tea.NewProgram(
		program{Model: New(ctx, title, action)},
		tea.WithContext(ctx),
		tea.WithOutput(w),
		tea.WithInput(nil),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run progress: %w", err)
	}

	m, ok := final.(program)
	if !ok {
		return fmt.Errorf("run progress: unexpected model %T", final)
	}

	return m.Err()
}
