// Package driver resolves batches of independent annotations in parallel and
// collects their diagnostics in one place.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/conf"
	"github.com/tanema/sigtype/src/lerrors"
	"github.com/tanema/sigtype/src/resolver"
	"github.com/tanema/sigtype/src/types"
)

type (
	// Request is one annotation to resolve. Owner decides what self means in
	// the annotation, NoSymbol uses the root.
	Request struct {
		Name  string
		Owner types.Ref
		Expr  ast.Expression
	}
	// Result is the resolution of the Request with the same index. Sig is set
	// for sig chains, Type for everything else.
	Result struct {
		Name string
		Sig  *resolver.ParsedSig
		Type types.Type
	}
	// Option configures a Resolver.
	Option func(*Resolver)
	// Resolver runs batches against one read-only symbol table.
	Resolver struct {
		table   resolver.SymbolTable
		workers int
		logger  *slog.Logger
		diags   *lerrors.Collector
	}
)

// WithWorkers bounds how many annotations resolve at once. Values below one
// are ignored.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger for batch progress. nil means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// New creates a Resolver.
func New(table resolver.SymbolTable, opts ...Option) *Resolver {
	r := &Resolver{
		table:   table,
		workers: conf.DEFAULTWORKERS,
		diags:   &lerrors.Collector{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Diagnostics holds everything reported by every batch so far.
func (r *Resolver) Diagnostics() *lerrors.Collector { return r.diags }

// Resolve resolves every request and returns results in request order.
// Cancelling ctx stops new annotations from starting; one that has started
// always finishes. An internal invariant violation in any annotation fails the
// batch with an error that wraps the *types.InvariantError.
func (r *Resolver) Resolve(ctx context.Context, reqs []Request) ([]Result, error) {
	start := time.Now()
	before := r.diags.Len()
	r.logger.InfoContext(ctx, "resolve started",
		slog.Int("count", len(reqs)),
		slog.Int("workers", r.workers),
	)

	results := make([]Result, len(reqs))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.resolveOne(req)
			if err != nil {
				return err
			}
			results[i] = res
			r.logger.DebugContext(ctx, "resolved annotation",
				slog.String("name", req.Name),
				slog.String("result", Describe(r.table, res)),
			)
			return nil
		})
	}

	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	duration := time.Since(start)
	if err != nil {
		r.logger.ErrorContext(ctx, "resolve failed",
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)
		return nil, err
	}
	r.logger.InfoContext(ctx, "resolve completed",
		slog.Duration("duration", duration),
		slog.Int("diagnostics", r.diags.Len()-before),
	)
	return results, nil
}

func (r *Resolver) resolveOne(req Request) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			invErr, isInvariant := rec.(*types.InvariantError)
			if !isInvariant {
				panic(rec)
			}
			err = fmt.Errorf("resolve %s: %w", req.Name, invErr)
		}
	}()

	rctx := resolver.Context{Table: r.table, Owner: req.Owner, Sink: r.diags}
	res.Name = req.Name
	if send, isSend := req.Expr.(*ast.Send); isSend && resolver.IsSig(send) {
		sig := resolver.ParseSig(rctx, send)
		res.Sig = &sig
	} else {
		res.Type = resolver.GetResultType(rctx, req.Expr)
	}
	return res, nil
}
