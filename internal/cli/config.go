package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/profedit/api/v1beta1/configs"
	"github.com/macropower/profedit/pkg/config"
	"github.com/macropower/profedit/pkg/report"
)

type ConfigArgs struct {
	*RootArgs

	Write bool
	Force bool
}

func NewConfigArgs(rootArgs *RootArgs) *ConfigArgs {
	return &ConfigArgs{RootArgs: rootArgs}
}

func (ca *ConfigArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&ca.Write, "write", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ca.Force, "force", false, "Replace an existing configuration file with --write, keeping a backup")
}

func NewConfigCmd(rootArgs *RootArgs) *cobra.Command {
	ca := NewConfigArgs(rootArgs)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the active configuration",
		Long: `Print the active configuration, after merging the project configuration
(.profedit.yaml) found from --project into the global configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, ca)
		},
	}

	ca.AddFlags(cmd)

	return cmd
}

func runConfig(cmd *cobra.Command, ca *ConfigArgs) error {
	path := ca.ConfigPath
	if path == "" {
		path = configs.GetPath()
	}

	if ca.Write {
		err := configs.WriteDefault(path, ca.Force)
		if err != nil {
			return err //nolint:wrapcheck // Already wrapped.
		}

		slog.Info("wrote default configuration", slog.String("path", path))

		return nil
	}

	projectDir := ca.ProjectDir
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		projectDir = wd
	}

	cfg, err := config.Load(config.Options{
		Path:       path,
		ProjectDir: projectDir,
		Colored:    isTerminal(os.Stderr),
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("active configuration",
		slog.String("path", cfg.Path),
		slog.String("project_path", cfg.ProjectPath),
	)

	active := configs.New()
	active.Edit = cfg.Edit
	active.Deploy = cfg.Deploy
	active.Rules = cfg.Rules

	b, err := active.MarshalYAML()
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	return report.New(cmd.OutOrStdout()).Source("yaml", b) //nolint:wrapcheck // Already wrapped.
}
