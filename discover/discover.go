// Package discover finds REST resource declarations in a type index.
//
// A resource declaration is an interface that embeds one of the marker
// contracts in package restdata:
//
//	type UserResource interface {
//	    restdata.EntityResource[User, int64]
//	}
//
// For every marker, Run queries the index for direct implementors, then
// validates each one, extracts its type arguments and builds a
// resource.Descriptor. A malformed declaration is an authoring defect: it
// fails the whole run and nothing is produced.
package discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/broady/restdata/marker"
	"github.com/broady/restdata/resource"
	"github.com/broady/restdata/typeindex"
)

// Result is the output of a successful run.
type Result struct {
	// Descriptors are ordered by marker, then by declaring interface.
	Descriptors []resource.Descriptor

	// Unremovable lists the repository type of each repository-access
	// descriptor, in descriptor order.
	Unremovable []typeindex.TypeRef

	// Candidates is the number of declarations examined.
	Candidates int
}

// Option configures Run.
type Option func(*options)

type options struct {
	markers    *marker.Table
	workers    int
	logger     *slog.Logger
	collectAll bool
}

// WithMarkers replaces the default marker table.
func WithMarkers(t *marker.Table) Option {
	return func(o *options) { o.markers = t }
}

// WithWorkers bounds the number of candidates processed concurrently.
// Zero or less means no bound.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCollectAll reports every malformed declaration, joined with
// errors.Join, instead of only the first. The run still produces nothing.
func WithCollectAll() Option {
	return func(o *options) { o.collectAll = true }
}

type candidate struct {
	contract marker.Contract
	decl     *typeindex.Decl
}

// Run discovers resources in idx and forwards them to out.
//
// Descriptors reach out only after every candidate has been processed
// successfully, in Result order. For each repository-access descriptor,
// out.Unremovable receives the repository type right after the descriptor.
// out may be nil when only the Result is needed.
//
// On failure the returned error is the first malformed declaration in
// Result order, regardless of which candidate failed first in time.
// Candidates after a known failure are not processed unless WithCollectAll
// is set.
func Run(ctx context.Context, idx typeindex.Index, out Producer, opts ...Option) (*Result, error) {
	o := options{
		markers: marker.Default(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()

	var cands []candidate
	for _, c := range o.markers.Contracts() {
		impls := idx.DirectImplementors(c.ID)
		o.logger.DebugContext(ctx, "marker queried",
			slog.String("marker", c.ID.String()),
			slog.Int("candidates", len(impls)),
		)
		for _, d := range impls {
			cands = append(cands, candidate{contract: c, decl: d})
		}
	}

	descs := make([]resource.Descriptor, len(cands))
	errs := make([]error, len(cands))

	// firstFailed is the lowest candidate index that failed so far. Unless
	// every failure is collected, candidates after it are skipped; those
	// before it still run, so the reported failure does not depend on
	// scheduling.
	var firstFailed atomic.Int64
	firstFailed.Store(int64(len(cands)))
	aborted := func(i int) bool {
		return !o.collectAll && int64(i) > firstFailed.Load()
	}

	g, gctx := errgroup.WithContext(ctx)
	if o.workers > 0 {
		g.SetLimit(o.workers)
	}
	for i, cand := range cands {
		if aborted(i) {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if aborted(i) {
				return nil
			}
			desc, err := Process(idx, cand.decl, cand.contract)
			if err != nil {
				errs[i] = err
				for {
					cur := firstFailed.Load()
					if int64(i) >= cur || firstFailed.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
				return nil
			}
			o.logger.DebugContext(gctx, "resource found",
				slog.String("interface", cand.decl.ID.String()),
				slog.String("kind", desc.Kind().String()),
			)
			descs[i] = desc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var failed []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		failed = append(failed, err)
		if !o.collectAll {
			break
		}
	}
	if len(failed) > 0 {
		o.logger.DebugContext(ctx, "discovery failed",
			slog.Int("candidates", len(cands)),
			slog.Int("failures", len(failed)),
		)
		if o.collectAll {
			return nil, errors.Join(failed...)
		}
		return nil, failed[0]
	}

	res := &Result{
		Descriptors: descs,
		Candidates:  len(cands),
	}
	for _, d := range descs {
		if r, ok := d.(*resource.RepositoryAccess); ok {
			res.Unremovable = append(res.Unremovable, r.Repository)
		}
	}

	if out != nil {
		if err := forward(ctx, out, descs); err != nil {
			return nil, err
		}
	}

	o.logger.InfoContext(ctx, "discovery completed",
		slog.Int("candidates", len(cands)),
		slog.Int("resources", len(res.Descriptors)),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// Process runs the validate, extract and build steps for one candidate
// found under contract c.
func Process(idx typeindex.Index, d *typeindex.Decl, c marker.Contract) (resource.Descriptor, error) {
	if err := Validate(idx, d); err != nil {
		return nil, err
	}
	args, err := Extract(d, c)
	if err != nil {
		return nil, err
	}
	return Build(d, c, args)
}

func forward(ctx context.Context, out Producer, descs []resource.Descriptor) error {
	for _, d := range descs {
		if err := out.Resource(ctx, d); err != nil {
			return fmt.Errorf("produce resource %s: %w", d.DeclaringInterface(), err)
		}
		if r, ok := d.(*resource.RepositoryAccess); ok {
			if err := out.Unremovable(ctx, r.Repository); err != nil {
				return fmt.Errorf("produce unremovable %s: %w", r.Repository, err)
			}
		}
	}
	return nil
}

// Find loads the packages described by cfg and runs discovery over them,
// collecting the output in memory.
func Find(ctx context.Context, cfg typeindex.LoadConfig, opts ...Option) (*Result, error) {
	idx, err := typeindex.Load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load type index: %w", err)
	}
	return Run(ctx, idx, nil, opts...)
}
