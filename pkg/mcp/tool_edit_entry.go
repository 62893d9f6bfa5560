package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/log"
	"github.com/macropower/profedit/pkg/profile"
	"github.com/macropower/profedit/pkg/report"
)

// EditEntryInput is the input of the edit_entry tool.
type EditEntryInput struct {
	Rename   *string          `json:"rename,omitempty" jsonschema:"The new name of the entry."`
	Enabled  *bool            `json:"enabled,omitempty" jsonschema:"The new value of the entry's enabled flag."`
	Create   *bool            `json:"create,omitempty" jsonschema:"Whether to create the entry when it is missing. Defaults to the server configuration."`
	Type     profile.Category `json:"type"`
	Name     string           `json:"name" jsonschema:"The exact name of the entry to edit."`
	Profiles []string         `json:"paths,omitempty" jsonschema:"Profile names or paths relative to the project root. Omit to edit every profile."`
	DryRun   bool             `json:"dryRun,omitempty" jsonschema:"Report the changes without writing any file."`
}

// EditEntryOutput is the output of the edit_entry tool.
type EditEntryOutput = report.EditReport

func (s *Server) handleEditEntry(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in EditEntryInput,
) (*mcp.CallToolResult, EditEntryOutput, error) {
	req := profile.EditRequest{
		Category: in.Type,
		Target:   in.Name,
		Rename:   in.Rename,
		Enabled:  in.Enabled,
	}

	err := req.Validate()
	if err != nil {
		return nil, EditEntryOutput{}, fmt.Errorf("edit_entry: %w", err)
	}

	paths, err := s.resolve(in.Profiles)
	if err != nil {
		return nil, EditEntryOutput{}, err
	}

	opts := append(slices.Clone(s.editorOpts), editor.WithDryRun(in.DryRun))
	if in.Create != nil {
		opts = append(opts, editor.WithCreate(*in.Create))
	}

	results := editor.New(opts...).EditAll(ctx, paths, req)

	rep := report.New(io.Discard,
		report.WithRoot(s.root),
		report.WithDiff(true),
		report.WithDryRun(in.DryRun),
	).NewEditReport(results)

	log.WithContext(ctx).InfoContext(ctx, "edited entry",
		slog.String("request", req.String()),
		slog.Bool("dry_run", in.DryRun),
		slog.Int("modified", rep.Summary.Modified),
		slog.Int("failed", rep.Summary.Failed),
	)

	return nil, rep, nil
}
