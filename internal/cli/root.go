package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/profedit/pkg/log"
	"github.com/macropower/profedit/pkg/trace"
	"github.com/macropower/profedit/pkg/version"
)

const (
	cmdName = "profedit"
	cmdDesc = `Edit permission entries in Salesforce profile metadata files.`

	cmdExamples = `  # Enable access to an Apex class in every profile:
  profedit edit --type class --name MyClass --enabled

  # Rename a class in two profiles and preview the change:
  profedit edit -t class -n MyClass -r YourClass -p Admin,Standard --dry-run --diff

  # Edit, then deploy the modified profiles:
  profedit edit -t page -n MyPage --enabled --target-org me@example.com

  # List the field permissions of the Admin profile:
  profedit list --type field --profile Admin`
)

type RootArgs struct {
	shutdownTrace trace.ShutdownFunc

	LogLevel   string
	LogFormat  string
	ConfigPath string
	ProjectDir string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVar(&ra.ConfigPath, "config", "", "Path to the profedit configuration file")
	cmd.PersistentFlags().
		StringVar(&ra.ProjectDir, "project", "", "Directory to search for sfdx-project.json, default is $PWD")

	must(cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml"))
	must(cmd.MarkPersistentFlagDirname("project"))
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:                cmdName,
		Short:              cmdDesc,
		Example:            cmdExamples,
		SilenceUsage:       true,
		PersistentPreRunE:  setup(args),
		PersistentPostRunE: teardown(args),
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewEditCmd(args),
		NewListCmd(args),
		NewFmtCmd(args),
		NewTypesCmd(),
		NewServeMCPCmd(args),
		NewConfigCmd(args),
		NewVersionCmd(),
	)

	bindEnvVars(cmd)

	return cmd
}

func setup(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		shutdown, err := trace.Setup(cmd.Context(), cmdName, version.GetVersion())
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}

		ra.shutdownTrace = shutdown

		return nil
	}
}

func teardown(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if ra.shutdownTrace == nil {
			return nil
		}

		err := ra.shutdownTrace(cmd.Context())
		if err != nil {
			slog.Warn("flush traces", slog.Any("err", err))
		}

		return nil
	}
}
