// Package restcheck implements a go/analysis analyzer that reports
// malformed REST resource declarations while code is being edited.
//
// It applies the same rules as discovery, one package at a time, and
// reports every malformed declaration at its type name. Because
// a pass sees a single package, the "embedded elsewhere" rule only finds
// embedders declared in the same package as the resource; full-program
// runs through the restdata command catch the rest.
package restcheck

import (
	"errors"
	"go/token"

	"golang.org/x/tools/go/analysis"

	"github.com/broady/restdata/discover"
	"github.com/broady/restdata/marker"
	"github.com/broady/restdata/typeindex"
)

// Analyzer reports declarations that embed a resource marker but cannot
// become a resource.
var Analyzer = &analysis.Analyzer{
	Name: "restcheck",
	Doc:  "reports malformed REST resource declarations",
	URL:  "https://github.com/broady/restdata/analysis/restcheck",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	g := typeindex.NewGraph()
	g.AddPackage(pass.Fset, pass.Pkg, pass.Files, pass.TypesInfo)

	for _, c := range marker.Default().Contracts() {
		for _, d := range g.DirectImplementors(c.ID) {
			_, err := discover.Process(g, d, c)
			if err == nil {
				continue
			}
			var derr *discover.Error
			if !errors.As(err, &derr) {
				return nil, err
			}
			pass.Report(analysis.Diagnostic{
				Pos:      posOf(pass, d.Pos),
				Category: string(derr.Code),
				Message:  d.ID.Name + " " + derr.Message,
			})
		}
	}
	return nil, nil
}

// posOf maps a resolved position back into the pass's file set.
func posOf(pass *analysis.Pass, p token.Position) token.Pos {
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.Pos())
		if tf == nil || tf.Name() != p.Filename {
			continue
		}
		if p.Line < 1 || p.Line > tf.LineCount() {
			return f.Package
		}
		return tf.LineStart(p.Line) + token.Pos(p.Column-1)
	}
	return token.NoPos
}
