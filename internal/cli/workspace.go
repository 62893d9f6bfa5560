package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/profedit/pkg/config"
	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/files"
	"github.com/macropower/profedit/pkg/log"
	"github.com/macropower/profedit/pkg/profile"
	"github.com/macropower/profedit/pkg/report"
)

// ProfileArgs select the profile files a command operates on.
type ProfileArgs struct {
	Profiles []string
	Dir      string
}

func (pa *ProfileArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&pa.Profiles, "profile", "p", nil,
		"Profile names, or paths relative to the project root; default is every profile")
	cmd.Flags().StringVarP(&pa.Dir, "dir", "d", "",
		"Profile directory relative to the project root; default is <packageDirectory>/main/default/profiles")

	must(cmd.MarkFlagDirname("dir"))
}

// OutputArgs select the report format.
type OutputArgs struct {
	Output string
}

func (oa *OutputArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&oa.Output, "output", "o", string(report.FormatText),
		fmt.Sprintf("Output format, one of: %s", report.Formats()))

	must(cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(report.Formats(), cobra.ShellCompDirectiveNoFileComp),
	))
}

// workspace is the loaded project and configuration a command runs against.
type workspace struct {
	cfg     *config.Config
	project *files.Project
	dirs    []string
}

func loadWorkspace(ra *RootArgs, dir string) (*workspace, error) {
	start := ra.ProjectDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}

		start = wd
	}

	project, err := files.FindProject(start)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	cfg, err := config.Load(config.Options{
		Path:         ra.ConfigPath,
		ProjectDir:   project.Root,
		WriteDefault: true,
		Colored:      isTerminal(os.Stderr),
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	ws := &workspace{
		cfg:     cfg,
		project: project,
		dirs:    project.ProfileDirs(dir),
	}

	slog.Debug("loaded workspace",
		slog.String("root", project.Root),
		slog.Any("dirs", ws.dirs),
		slog.String("config", cfg.Path),
		slog.String("project_config", cfg.ProjectPath),
	)

	return ws, nil
}

// paths resolves the selected profiles to files.
func (ws *workspace) paths(profiles []string) ([]string, error) {
	paths, err := files.Resolve(ws.dirs, profiles, ws.project.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve profiles: %w", err)
	}
	if len(paths) == 0 {
		slog.Warn("no profiles found", slog.Any("dirs", ws.dirs))
	}

	return paths, nil
}

// editorOptions returns the configured editor options followed by opts.
func (ws *workspace) editorOptions(opts ...editor.Option) []editor.Option {
	return append(
		append(ws.cfg.Edit.Options(), editor.WithRules(ws.cfg.Rules...)),
		opts...,
	)
}

func (ws *workspace) printer(w io.Writer, output string, opts ...report.Option) (*report.Printer, error) {
	format, err := report.ParseFormat(output)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already descriptive.
	}

	return report.New(w, append([]report.Option{
		report.WithFormat(format),
		report.WithRoot(ws.project.Root),
	}, opts...)...), nil
}

// parseCategory resolves a --type flag value.
func parseCategory(s string) (profile.Category, error) {
	c, err := profile.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("invalid argument --type: %w", err)
	}

	return c, nil
}

func completeCategories(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	completions := []cobra.Completion{}
	for _, d := range profile.Descriptors() {
		completions = append(completions, cobra.CompletionWithDesc(string(d.Category), d.Description))
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}

// withBufferedLogs captures logs while fn runs an interactive program on the
// terminal, then flushes them to w.
func withBufferedLogs(ctx context.Context, ra *RootArgs, w io.Writer, fn func(context.Context) error) error {
	buf := log.NewCircularBuffer(100)

	handler, err := log.CreateHandlerWithStrings(buf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	prev := slog.Default()
	slog.SetDefault(slog.New(handler))

	fnErr := fn(ctx)

	slog.SetDefault(prev)
	flushLogs(w, buf)

	return fnErr
}

func flushLogs(w io.Writer, buf *log.CircularBuffer) {
	if buf.Size() == 0 {
		return
	}

	slog.Debug("flush logs to console",
		slog.Int("count", buf.Size()),
		slog.Int("max", buf.Capacity()),
		slog.Bool("truncated", buf.IsFull()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		slog.Error("flush logs", slog.Any("err", err))
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int.
}
