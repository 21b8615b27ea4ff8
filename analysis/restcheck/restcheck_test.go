package restcheck_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/broady/restdata/analysis/restcheck"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, restcheck.Analyzer, "a")
}

func TestAnalyzer_Clean(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, restcheck.Analyzer, "clean")
}
