// Package runner executes restdata discovery for the command line.
//
// It turns resolved settings into a type index load followed by a
// discovery run, so every command scans packages the same way.
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/broady/restdata/discover"
	"github.com/broady/restdata/internal/config"
	"github.com/broady/restdata/typeindex"
)

// Options configures a discovery run.
type Options struct {
	// Patterns are the go/packages patterns to scan.
	Patterns []string

	// Dir is the directory patterns are resolved in.
	Dir string

	// Tests includes test files in the scan.
	Tests bool

	// Workers bounds concurrent candidate processing. Zero means no bound.
	Workers int

	// CollectAll reports every malformed declaration.
	CollectAll bool

	// Logger receives progress logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// FromConfig returns Options for cfg, resolving patterns in dir.
func FromConfig(cfg *config.Config, dir string, logger *slog.Logger) Options {
	return Options{
		Patterns:   append([]string(nil), cfg.Packages...),
		Dir:        dir,
		Tests:      cfg.Tests,
		Workers:    cfg.Workers,
		CollectAll: cfg.CollectAll,
		Logger:     logger,
	}
}

// Exec loads the packages and runs discovery over them. Resources are
// forwarded to out when it is non-nil.
func Exec(ctx context.Context, opts Options, out discover.Producer) (*discover.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Patterns) == 0 {
		return nil, fmt.Errorf("no package patterns to scan")
	}

	logger.DebugContext(ctx, "loading packages",
		slog.Any("patterns", opts.Patterns),
		slog.String("dir", opts.Dir),
		slog.Bool("tests", opts.Tests),
	)
	idx, err := typeindex.Load(ctx, typeindex.LoadConfig{
		Patterns: opts.Patterns,
		Dir:      opts.Dir,
		Tests:    opts.Tests,
	})
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	logger.DebugContext(ctx, "type index built", slog.Int("declarations", idx.Len()))

	dopts := []discover.Option{
		discover.WithLogger(logger),
		discover.WithWorkers(opts.Workers),
	}
	if opts.CollectAll {
		dopts = append(dopts, discover.WithCollectAll())
	}
	return discover.Run(ctx, idx, out, dopts...)
}
