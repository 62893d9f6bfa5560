package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/macropower/profedit/pkg/log"
	"github.com/macropower/profedit/pkg/profile"
	"github.com/macropower/profedit/pkg/rule"
	"github.com/macropower/profedit/pkg/xml"
)

// ErrIO is returned when a profile file cannot be read or written.
var ErrIO = errors.New("profile io")

const suggestionLimit = 3

// Editor edits profile files. The zero value is not usable; use [New].
type Editor struct {
	tracer      trace.Tracer
	rules       []*rule.Rule
	encoderOpts []xml.EncoderOpt
	concurrency int
	dryRun      bool
	create      bool
}

// Option configures an [Editor].
type Option func(*Editor)

// WithConcurrency sets the number of files processed in parallel.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(e *Editor) {
		e.concurrency = max(n, 1)
	}
}

// WithDryRun computes results without writing any file.
func WithDryRun(dryRun bool) Option {
	return func(e *Editor) {
		e.dryRun = dryRun
	}
}

// WithCreate sets whether missing entries are created. Defaults to true.
func WithCreate(create bool) Option {
	return func(e *Editor) {
		e.create = create
	}
}

// WithEncoder sets options for encoding written files.
func WithEncoder(opts ...xml.EncoderOpt) Option {
	return func(e *Editor) {
		e.encoderOpts = append(e.encoderOpts, opts...)
	}
}

// WithRules filters files with include/exclude rules. Excluded files are
// reported with [StatusSkipped] and never read.
func WithRules(rules ...*rule.Rule) Option {
	return func(e *Editor) {
		e.rules = append(e.rules, rules...)
	}
}

// New creates a new [Editor].
func New(opts ...Option) *Editor {
	e := &Editor{
		tracer:      otel.Tracer("editor"),
		concurrency: DefaultConcurrency,
		create:      true,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// EditAll applies reqs, in order, to each file in paths. It returns one
// [Result] per path, in the same order as paths.
func (e *Editor) EditAll(ctx context.Context, paths []string, reqs ...profile.EditRequest) []Result {
	return e.each(ctx, "edit", paths, func(ctx context.Context, _ int, path string) Result {
		return e.edit(ctx, path, reqs)
	})
}

// Format rewrites each file in paths in canonical form. Files already in
// canonical form are left untouched and reported as [StatusUnchanged].
func (e *Editor) Format(ctx context.Context, paths []string) []Result {
	return e.each(ctx, "format", paths, func(ctx context.Context, _ int, path string) Result {
		return e.format(ctx, path)
	})
}

func (e *Editor) edit(ctx context.Context, path string, reqs []profile.EditRequest) Result {
	res := Result{Path: path}

	doc, err := e.read(path, &res)
	if err != nil {
		res.Err = err
		return res
	}

	logger := log.WithContext(ctx).With(slog.String("path", path))

	for _, req := range reqs {
		outcome, err := doc.Apply(req, profile.WithCreate(e.create))
		if err != nil {
			res.Status = StatusFailed
			res.Err = fmt.Errorf("%s: %w", req, err)

			return res
		}

		logger.Debug("applied edit",
			slog.String("request", req.String()),
			slog.String("outcome", outcome.String()),
		)

		switch outcome {
		case profile.OutcomeModified:
			res.Status = StatusModified
		case profile.OutcomeNotFound:
			res.Missing = append(res.Missing, Missing{
				Request:     req,
				Suggestions: doc.Suggest(req.Category, req.Target, suggestionLimit),
			})
		case profile.OutcomeUnchanged:
		}
	}

	if res.Status != StatusModified {
		if len(res.Missing) > 0 {
			res.Status = StatusNotFound
		}

		return res
	}

	return e.write(ctx, doc, res)
}

func (e *Editor) format(ctx context.Context, path string) Result {
	res := Result{Path: path}

	doc, err := e.read(path, &res)
	if err != nil {
		res.Err = err
		return res
	}

	updated, err := doc.Encode(e.encoderOpts...)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err

		return res
	}

	if string(updated) == string(res.Original) {
		return res
	}

	res.Status = StatusModified

	return e.write(ctx, doc, res)
}

// read loads and decodes path, recording the original bytes in res.
func (e *Editor) read(path string, res *Result) (*profile.Document, error) {
	res.Status = StatusFailed

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrIO, err)
	}

	res.Original = data

	doc, err := profile.Decode(data)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	res.Status = StatusUnchanged

	return doc, nil
}

func (e *Editor) write(ctx context.Context, doc *profile.Document, res Result) Result {
	updated, err := doc.Encode(e.encoderOpts...)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err

		return res
	}

	res.Updated = updated

	if e.dryRun {
		return res
	}

	err = writeFile(res.Path, updated)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%w: write: %w", ErrIO, err)

		return res
	}

	res.Written = true

	log.WithContext(ctx).Debug("wrote profile",
		slog.String("path", res.Path),
		slog.Int("bytes", len(updated)),
	)

	return res
}

// each runs fn for every path with bounded parallelism, slotting results by
// index. Once ctx is done, paths not yet started report ctx.Err().
func (e *Editor) each(
	ctx context.Context,
	op string,
	paths []string,
	fn func(context.Context, int, string) Result,
) []Result {
	results := make([]Result, len(paths))

	g := &errgroup.Group{}
	g.SetLimit(e.concurrency)

	for i, path := range paths {
		if ctx.Err() != nil {
			results[i] = Result{Path: path, Status: StatusFailed, Err: ctx.Err()}
			continue
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = Result{Path: path, Status: StatusFailed, Err: ctx.Err()}
				return nil
			}

			results[i] = e.process(ctx, op, path, func(ctx context.Context, path string) Result {
				return fn(ctx, i, path)
			})

			return nil
		})
	}

	_ = g.Wait()

	return results
}

func (e *Editor) process(
	ctx context.Context,
	op string,
	path string,
	fn func(context.Context, string) Result,
) Result {
	ctx, span := e.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("path", path),
		attribute.Bool("dry_run", e.dryRun),
	))
	defer span.End()

	var res Result
	if !rule.Included(e.rules, path) {
		res = Result{Path: path, Status: StatusSkipped}
	} else {
		res = fn(ctx, path)
	}

	span.SetAttributes(attribute.String("status", res.Status.String()))

	if res.Err != nil {
		res.Err = fmt.Errorf("%s: %w", path, res.Err)

		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())

		log.WithContext(ctx).Debug("profile failed",
			slog.String("path", path),
			slog.Any("err", res.Err),
		)
	}

	return res
}
