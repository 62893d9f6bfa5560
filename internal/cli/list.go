package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/profedit/pkg/editor"
)

type ListArgs struct {
	*RootArgs
	ProfileArgs
	OutputArgs

	Type string
}

func NewListArgs(rootArgs *RootArgs) *ListArgs {
	return &ListArgs{RootArgs: rootArgs}
}

func (la *ListArgs) AddFlags(cmd *cobra.Command) {
	la.ProfileArgs.AddFlags(cmd)
	la.OutputArgs.AddFlags(cmd)

	cmd.Flags().StringVarP(&la.Type, "type", "t", "", "Entry type, see 'profedit types'")

	must(cmd.MarkFlagRequired("type"))
	must(cmd.RegisterFlagCompletionFunc("type", completeCategories))
}

func NewListCmd(rootArgs *RootArgs) *cobra.Command {
	la := NewListArgs(rootArgs)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the entries of one type in profiles",
		Example: `  profedit list --type class
  profedit list --type object --profile Admin --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, la)
		},
	}

	la.AddFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, la *ListArgs) error {
	c, err := parseCategory(la.Type)
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(la.RootArgs, la.Dir)
	if err != nil {
		return err
	}

	paths, err := ws.paths(la.Profiles)
	if err != nil {
		return err
	}

	listings := editor.New(ws.editorOptions()...).List(cmd.Context(), paths, c)

	p, err := ws.printer(cmd.OutOrStdout(), la.Output)
	if err != nil {
		return err
	}

	err = p.List(c, listings)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	failed := 0
	for _, l := range listings {
		if l.Err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, failed, len(listings))
	}

	return nil
}
