package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/profedit/pkg/deploy"
	"github.com/macropower/profedit/pkg/execs"
	"github.com/macropower/profedit/pkg/ui/progress"
	"github.com/macropower/profedit/pkg/ui/prompt"
)

// runDeploy confirms and runs plan. The user is only asked when running on a
// terminal and yes is not set.
func runDeploy(ctx context.Context, cmd *cobra.Command, ra *RootArgs, plan *deploy.Plan, yes bool) error {
	logger := slog.With(
		slog.String("target_org", plan.TargetOrg),
		slog.String("metadata", plan.Metadata()),
	)

	interactive := prompt.IsInteractive()

	if interactive && !yes {
		confirmed := false

		err := withBufferedLogs(ctx, ra, cmd.ErrOrStderr(), func(ctx context.Context) error {
			var err error

			confirmed, err = prompt.ConfirmDeploy(ctx, plan.TargetOrg, plan.Members)

			return err //nolint:wrapcheck // Already wrapped.
		})
		if err != nil {
			return err
		}

		if !confirmed {
			logger.InfoContext(ctx, "deploy canceled")
			return nil
		}
	}

	logger.InfoContext(ctx, "deploying profiles", slog.String("command", plan.String()))

	var res *execs.Result

	action := func(ctx context.Context) error {
		var err error

		res, err = plan.Run(ctx)

		return err //nolint:wrapcheck // Already wrapped.
	}

	var err error
	if interactive {
		err = withBufferedLogs(ctx, ra, cmd.ErrOrStderr(), func(ctx context.Context) error {
			return progress.Run(ctx, os.Stderr, "Deploying to "+plan.TargetOrg, action) //nolint:wrapcheck // Already wrapped.
		})
	} else {
		err = action(ctx)
	}

	if res != nil {
		if res.Stdout != "" {
			mustN(fmt.Fprint(cmd.OutOrStdout(), res.Stdout))
		}
		if err != nil && res.Stderr != "" {
			mustN(fmt.Fprint(cmd.ErrOrStderr(), res.Stderr))
		}
	}

	if errors.Is(err, progress.ErrInterrupted) {
		return fmt.Errorf("deploy to %s: %w", plan.TargetOrg, err)
	}
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	logger.InfoContext(ctx, "deployed profiles")

	return nil
}
