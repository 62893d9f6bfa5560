package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/files"
	"github.com/macropower/profedit/pkg/version"
)

const shutdownTimeout = 5 * time.Second

// ErrOutsideRoot is returned when a requested profile resolves to a path
// outside of the project root.
var ErrOutsideRoot = errors.New("path is outside of the project root")

// Server implements the MCP server for profedit.
type Server struct {
	server     *mcp.Server
	tracer     trace.Tracer
	rpcLog     io.Writer
	address    string
	root       string
	dirs       []string
	editorOpts []editor.Option
}

// Option configures a [Server].
type Option func(*Server)

// WithAddress serves over streamable HTTP on addr instead of stdio.
func WithAddress(addr string) Option {
	return func(s *Server) {
		s.address = addr
	}
}

// WithEditorOptions sets the options of every [editor.Editor] the server
// creates.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(s *Server) {
		s.editorOpts = append(s.editorOpts, opts...)
	}
}

// WithRPCLog writes JSON-RPC traffic of the stdio transport to w.
func WithRPCLog(w io.Writer) Option {
	return func(s *Server) {
		s.rpcLog = w
	}
}

// NewServer creates a new MCP server for the project at root. Bare profile
// names are looked up in dirs.
func NewServer(root string, dirs []string, opts ...Option) *Server {
	s := &Server{
		root:   root,
		dirs:   dirs,
		tracer: otel.Tracer("mcp"),
	}
	for _, opt := range opts {
		opt(s)
	}

	impl := &mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}

	s.server = mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: instructions,
	})

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "list_entries",
		Description:  "List the permission entries of one type in profiles, with their enabled flag.",
		InputSchema:  schemaFor[ListEntriesInput](),
		OutputSchema: schemaFor[ListEntriesOutput](),
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint: true,
		},
	}, WithTracing(s.tracer, s.handleListEntries))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "edit_entry",
		Description: "Rename, enable, or disable a permission entry in profiles. " +
			"Missing entries are created unless create is false. Use dryRun to preview the diff.",
		InputSchema:  schemaFor[EditEntryInput](),
		OutputSchema: schemaFor[EditEntryOutput](),
	}, WithTracing(s.tracer, s.handleEditEntry))
}

// Server returns the underlying MCP server.
func (s *Server) Server() *mcp.Server {
	return s.server
}

// resolve returns the profile files for profiles, rejecting any path that
// leaves the project root.
func (s *Server) resolve(profiles []string) ([]string, error) {
	paths, err := files.Resolve(s.dirs, profiles, s.root)
	if err != nil {
		return nil, fmt.Errorf("resolve profiles: %w", err)
	}

	for _, p := range paths {
		rel, err := filepath.Rel(s.root, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, p)
		}
	}

	return paths, nil
}

// Serve starts the MCP server and blocks until ctx is done or the transport
// closes.
func (s *Server) Serve(ctx context.Context) error {
	slog.InfoContext(ctx, "starting MCP server",
		slog.String("address", s.address),
		slog.String("root", s.root),
	)

	if s.address == "" {
		err := s.serveStdio(ctx)
		if err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}

		return nil
	}

	err := s.serveHTTP(ctx)
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("MCP server failed: %w", err)
		}

		return nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		return nil
	}
}

func (s *Server) serveStdio(ctx context.Context) error {
	var t mcp.Transport = &mcp.StdioTransport{}
	if s.rpcLog != nil {
		t = &mcp.LoggingTransport{Transport: t, Writer: s.rpcLog}
	}

	err := s.server.Run(ctx, t)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
