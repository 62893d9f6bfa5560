package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/profedit/pkg/version"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, f := range version.Fields() {
				mustN(fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", f.Name+":", f.Value))
			}

			return nil
		},
	}
}
