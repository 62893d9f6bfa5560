package cli

import (
	"github.com/spf13/cobra"

	"github.com/macropower/profedit/pkg/mcp"
)

type ServeMCPArgs struct {
	*RootArgs

	Address string
	Dir     string
	RPCLog  bool
}

func NewServeMCPArgs(rootArgs *RootArgs) *ServeMCPArgs {
	return &ServeMCPArgs{RootArgs: rootArgs}
}

func (sa *ServeMCPArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sa.Address, "address", "", "Serve streamable HTTP at host:port instead of stdio")
	cmd.Flags().StringVarP(&sa.Dir, "dir", "d", "",
		"Profile directory relative to the project root; default is <packageDirectory>/main/default/profiles")
	cmd.Flags().BoolVar(&sa.RPCLog, "rpc-log", false, "Log JSON-RPC messages of the stdio transport to stderr")

	must(cmd.MarkFlagDirname("dir"))
}

func NewServeMCPCmd(rootArgs *RootArgs) *cobra.Command {
	sa := NewServeMCPArgs(rootArgs)

	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Serve the list_entries and edit_entry tools over the Model Context Protocol",
		Example: `  # Serve over stdio:
  profedit serve-mcp

  # Serve over streamable HTTP:
  profedit serve-mcp --address localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeMCP(cmd, sa)
		},
	}

	sa.AddFlags(cmd)

	return cmd
}

func runServeMCP(cmd *cobra.Command, sa *ServeMCPArgs) error {
	ws, err := loadWorkspace(sa.RootArgs, sa.Dir)
	if err != nil {
		return err
	}

	opts := []mcp.Option{
		mcp.WithAddress(sa.Address),
		mcp.WithEditorOptions(ws.editorOptions()...),
	}
	if sa.RPCLog {
		opts = append(opts, mcp.WithRPCLog(cmd.ErrOrStderr()))
	}

	return mcp.NewServer(ws.project.Root, ws.dirs, opts...).Serve(cmd.Context()) //nolint:wrapcheck // Already wrapped.
}
