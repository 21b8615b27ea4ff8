// restcheck reports malformed REST resource declarations.
//
// Usage:
//
//	restcheck ./...
//	go vet -vettool=$(which restcheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/broady/restdata/analysis/restcheck"
)

func main() {
	singlechecker.Main(restcheck.Analyzer)
}
