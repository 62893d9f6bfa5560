package cli

import (
	"github.com/spf13/cobra"

	"github.com/macropower/profedit/pkg/profile"
	"github.com/macropower/profedit/pkg/report"
)

func NewTypesCmd() *cobra.Command {
	oa := &OutputArgs{}

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the entry types that can be edited",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(oa.Output)
			if err != nil {
				return err //nolint:wrapcheck // Already descriptive.
			}

			p := report.New(cmd.OutOrStdout(), report.WithFormat(format))

			return p.Categories(profile.Descriptors()) //nolint:wrapcheck // Already wrapped.
		},
	}

	oa.AddFlags(cmd)

	return cmd
}
