package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/profedit/pkg/deploy"
	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/execs"
	"github.com/macropower/profedit/pkg/profile"
	"github.com/macropower/profedit/pkg/report"
)

// ErrFilesFailed is returned when at least one profile could not be processed.
var ErrFilesFailed = errors.New("profiles failed")

type EditArgs struct {
	*RootArgs
	ProfileArgs
	OutputArgs

	Type          string
	Name          string
	Rename        string
	TargetOrg     string
	DeployCommand string
	Concurrency   int
	Enabled       bool
	Disabled      bool
	NoCreate      bool
	DryRun        bool
	Diff          bool
	Yes           bool
}

func NewEditArgs(rootArgs *RootArgs) *EditArgs {
	return &EditArgs{RootArgs: rootArgs}
}

func (ea *EditArgs) AddFlags(cmd *cobra.Command) {
	ea.ProfileArgs.AddFlags(cmd)
	ea.OutputArgs.AddFlags(cmd)

	cmd.Flags().StringVarP(&ea.Type, "type", "t", "", "Entry type, see 'profedit types'")
	cmd.Flags().StringVarP(&ea.Name, "name", "n", "", "Name of the entry to edit")
	cmd.Flags().StringVarP(&ea.Rename, "rename", "r", "", "New name of the entry")
	cmd.Flags().BoolVarP(&ea.Enabled, "enabled", "e", false, "Enable the entry")
	cmd.Flags().BoolVar(&ea.Disabled, "disabled", false, "Disable the entry")
	cmd.Flags().BoolVar(&ea.NoCreate, "no-create", false, "Do not create missing entries")
	cmd.Flags().BoolVar(&ea.DryRun, "dry-run", false, "Report changes without writing any file")
	cmd.Flags().BoolVar(&ea.Diff, "diff", false, "Show a diff of each modified profile")
	cmd.Flags().IntVar(&ea.Concurrency, "concurrency", 0, "Number of profiles edited in parallel; default from config")
	cmd.Flags().StringVarP(&ea.TargetOrg, "target-org", "u", "", "Deploy modified profiles to this org username or alias")
	cmd.Flags().StringVar(&ea.DeployCommand, "deploy-command", "", "Deploy command line; default from config")
	cmd.Flags().BoolVarP(&ea.Yes, "yes", "y", false, "Deploy without asking for confirmation")

	must(cmd.MarkFlagRequired("type"))
	must(cmd.MarkFlagRequired("name"))
	must(cmd.RegisterFlagCompletionFunc("type", completeCategories))

	cmd.MarkFlagsMutuallyExclusive("enabled", "disabled")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "target-org")
}

// request builds the edit request from the flags.
func (ea *EditArgs) request() (profile.EditRequest, error) {
	c, err := parseCategory(ea.Type)
	if err != nil {
		return profile.EditRequest{}, err
	}

	req := profile.EditRequest{Category: c, Target: ea.Name}
	if ea.Rename != "" {
		req.Rename = &ea.Rename
	}

	switch {
	case ea.Enabled:
		enabled := true
		req.Enabled = &enabled
	case ea.Disabled:
		enabled := false
		req.Enabled = &enabled
	}

	err = req.Validate()
	if err != nil {
		return profile.EditRequest{}, fmt.Errorf("invalid argument: %w", err)
	}

	return req, nil
}

func NewEditCmd(rootArgs *RootArgs) *cobra.Command {
	ea := NewEditArgs(rootArgs)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Rename, enable, or disable an entry in profiles",
		Long: `Edit an entry in every selected profile.

The entry is found by type and name. Entries that do not exist are created
unless --no-create is set, using --rename as the name when given. Profiles
are rewritten in canonical form, and only profiles that changed are written.`,
		Example: `  profedit edit --type class --name MyClass --rename YourClass --profile Admin --enabled
  profedit edit --type class --name MyClass --rename YourClass --enabled`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEdit(cmd, ea)
		},
	}

	ea.AddFlags(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, ea *EditArgs) error {
	ctx := cmd.Context()

	req, err := ea.request()
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(ea.RootArgs, ea.Dir)
	if err != nil {
		return err
	}

	paths, err := ws.paths(ea.Profiles)
	if err != nil {
		return err
	}

	opts := []editor.Option{editor.WithDryRun(ea.DryRun)}
	if ea.NoCreate {
		opts = append(opts, editor.WithCreate(false))
	}
	if ea.Concurrency > 0 {
		opts = append(opts, editor.WithConcurrency(ea.Concurrency))
	}

	slog.DebugContext(ctx, "editing profiles",
		slog.String("request", req.String()),
		slog.Int("files", len(paths)),
	)

	results := editor.New(ws.editorOptions(opts...)...).EditAll(ctx, paths, req)

	p, err := ws.printer(cmd.OutOrStdout(), ea.Output,
		report.WithDiff(ea.Diff),
		report.WithDryRun(ea.DryRun),
	)
	if err != nil {
		return err
	}

	err = p.Edit(results)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	var deployErr error
	if ea.TargetOrg != "" && !ea.DryRun {
		deployErr = ea.deploy(ctx, cmd, ws, editor.Changed(results))
	}

	if failed := editor.Failed(results); len(failed) > 0 {
		return errors.Join(fmt.Errorf("%w: %d of %d", ErrFilesFailed, len(failed), len(results)), deployErr)
	}

	return deployErr
}

func (ea *EditArgs) deploy(ctx context.Context, cmd *cobra.Command, ws *workspace, changed []string) error {
	if len(changed) == 0 {
		slog.InfoContext(ctx, "no modified profiles, skipping deploy", slog.String("target_org", ea.TargetOrg))
		return nil
	}

	deployCmd, err := ea.deployCommand(ws)
	if err != nil {
		return err
	}

	plan, err := deploy.NewPlan(deployCmd, ws.project.Root, ea.TargetOrg, changed)
	if err != nil {
		return fmt.Errorf("plan deploy: %w", err)
	}

	return runDeploy(ctx, cmd, ea.RootArgs, plan, ea.Yes)
}

func (ea *EditArgs) deployCommand(ws *workspace) (execs.Command, error) {
	if ea.DeployCommand == "" {
		if ws.cfg.Deploy != nil {
			return *ws.cfg.Deploy, nil
		}

		return deploy.DefaultCommand(), nil
	}

	c, err := execs.Parse(ea.DeployCommand)
	if err != nil {
		return execs.Command{}, fmt.Errorf("invalid argument --deploy-command: %w", err)
	}

	c.InheritEnv = deploy.DefaultCommand().InheritEnv

	err = c.Compile()
	if err != nil {
		return execs.Command{}, fmt.Errorf("invalid argument --deploy-command: %w", err)
	}

	return c, nil
}
