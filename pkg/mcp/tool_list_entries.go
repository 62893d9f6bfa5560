package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/log"
	"github.com/macropower/profedit/pkg/profile"
	"github.com/macropower/profedit/pkg/report"
)

// ListEntriesInput is the input of the list_entries tool.
type ListEntriesInput struct {
	Type     profile.Category `json:"type"`
	Profiles []string         `json:"paths,omitempty" jsonschema:"Profile names or paths relative to the project root. Omit to list every profile."`
}

// ListEntriesOutput is the output of the list_entries tool.
type ListEntriesOutput struct {
	Type  profile.Category       `json:"type"`
	Files []report.ListingReport `json:"files"`
}

func (s *Server) handleListEntries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in ListEntriesInput,
) (*mcp.CallToolResult, ListEntriesOutput, error) {
	paths, err := s.resolve(in.Profiles)
	if err != nil {
		return nil, ListEntriesOutput{}, err
	}

	listings := editor.New(s.editorOpts...).List(ctx, paths, in.Type)

	out := ListEntriesOutput{
		Type:  in.Type,
		Files: report.New(io.Discard, report.WithRoot(s.root)).NewListingReports(listings),
	}

	log.WithContext(ctx).DebugContext(ctx, "listed entries",
		slog.String("type", string(in.Type)),
		slog.Int("files", len(out.Files)),
	)

	return nil, out, nil
}
