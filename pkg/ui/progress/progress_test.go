package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/ui/progress"
	"github.com/macropower/profedit/pkg/uitest"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModel(t *testing.T) {
	t.Parallel()

	errDeploy := errors.New("deploy failed")

	tcs := map[string]struct {
		want error
	}{
		"success": {},
		"failure": {want: errDeploy},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			release := make(chan struct{})
			m := progress.New(t.Context(), "Deploying profiles", func(context.Context) error {
				<-release
				return tc.want
			})

			tm := uitest.NewTestModel(t, m, uitest.Compact)
			uitest.WaitForText(t, tm.Output(), "Deploying profiles")
			close(release)

			final := uitest.FinalModel[progress.Model](t, tm, 2*time.Second)
			if tc.want != nil {
				require.ErrorIs(t, final.Err(), tc.want)
			} else {
				require.NoError(t, final.Err())
			}

			assert.Empty(t, final.View())
		})
	}
}

func TestModel_Interrupt(t *testing.T) {
	t.Parallel()

	canceled := make(chan struct{})
	m := progress.New(t.Context(), "Deploying", func(ctx context.Context) error {
		<-ctx.Done()
		close(canceled)

		return ctx.Err()
	})

	tm := uitest.NewTestModel(t, m, uitest.Compact)
	uitest.WaitForText(t, tm.Output(), "Deploying")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final := uitest.FinalModel[progress.Model](t, tm, 2*time.Second)
	require.ErrorIs(t, final.Err(), progress.ErrInterrupted)

	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("action context was not canceled")
	}
}
