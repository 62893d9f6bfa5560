package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/report"
)

// ErrNotFormatted is returned by `fmt --check` when a profile is not in
// canonical form.
var ErrNotFormatted = errors.New("profiles are not formatted")

type FmtArgs struct {
	*RootArgs
	ProfileArgs
	OutputArgs

	DryRun bool
	Diff   bool
	Check  bool
}

func NewFmtArgs(rootArgs *RootArgs) *FmtArgs {
	return &FmtArgs{RootArgs: rootArgs}
}

func (fa *FmtArgs) AddFlags(cmd *cobra.Command) {
	fa.ProfileArgs.AddFlags(cmd)
	fa.OutputArgs.AddFlags(cmd)

	cmd.Flags().BoolVar(&fa.DryRun, "dry-run", false, "Report changes without writing any file")
	cmd.Flags().BoolVar(&fa.Diff, "diff", false, "Show a diff of each reformatted profile")
	cmd.Flags().BoolVar(&fa.Check, "check", false, "Fail if any profile is not formatted; implies --dry-run")
}

func NewFmtCmd(rootArgs *RootArgs) *cobra.Command {
	fa := NewFmtArgs(rootArgs)

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite profiles in canonical form",
		Long: `Rewrite profiles in canonical form: sorted entries, four-space indentation,
and a standalone XML declaration. Profiles already in canonical form are not
written.`,
		Example: `  profedit fmt
  profedit fmt --check --diff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFmt(cmd, fa)
		},
	}

	fa.AddFlags(cmd)

	return cmd
}

func runFmt(cmd *cobra.Command, fa *FmtArgs) error {
	dryRun := fa.DryRun || fa.Check

	ws, err := loadWorkspace(fa.RootArgs, fa.Dir)
	if err != nil {
		return err
	}

	paths, err := ws.paths(fa.Profiles)
	if err != nil {
		return err
	}

	results := editor.New(ws.editorOptions(editor.WithDryRun(dryRun))...).Format(cmd.Context(), paths)

	p, err := ws.printer(cmd.OutOrStdout(), fa.Output,
		report.WithDiff(fa.Diff),
		report.WithDryRun(dryRun),
	)
	if err != nil {
		return err
	}

	err = p.Edit(results)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	if failed := editor.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, len(failed), len(results))
	}

	if changed := editor.Changed(results); fa.Check && len(changed) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrNotFormatted, len(changed), len(results))
	}

	return nil
}
