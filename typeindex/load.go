package typeindex

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadConfig configures Load.
type LoadConfig struct {
	// Patterns are package patterns in go command syntax ("./...",
	// "example.com/app/api"). Defaults to ".".
	Patterns []string

	// Dir is the working directory for pattern resolution. Empty means the
	// current directory.
	Dir string

	// Tests includes test packages in the index.
	Tests bool

	// Env overrides the environment of the underlying go command.
	Env []string
}

// Load type-checks the packages matching cfg.Patterns and indexes their
// declarations. Only the matched packages are indexed; their dependencies
// are loaded for type information but contribute no declarations.
func Load(ctx context.Context, cfg LoadConfig) (*Graph, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pcfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
		Dir:   cfg.Dir,
		Tests: cfg.Tests,
		Env:   cfg.Env,
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %s", strings.Join(patterns, " "))
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors[0])
		}
	}

	g := NewGraph()
	seen := make(map[string]bool, len(pkgs))
	for _, pkg := range pkgs {
		// With Tests, a package is loaded both plain and as its test
		// variant. Shared declarations are identical, so re-adding them is
		// harmless and test-only declarations are kept.
		if seen[pkg.ID] || pkg.Types == nil || strings.HasSuffix(pkg.ID, ".test") {
			continue
		}
		seen[pkg.ID] = true
		g.AddPackage(pkg.Fset, pkg.Types, pkg.Syntax, pkg.TypesInfo)
	}
	return g, nil
}
