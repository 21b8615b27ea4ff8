package gen

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/broady/restdata/discover"
	"github.com/broady/restdata/internal/config"
	"github.com/broady/restdata/internal/runner"
	"github.com/broady/restdata/manifest"
	"github.com/broady/restdata/sink"
)

type Cmd struct {
	Out    string `arg:"" optional:"" help:"Output directory or sink URL (mem:, file:///dir?overwrite=false&mode=0600)."`
	Format string `help:"Manifest format: json or yaml." short:"f"`
	DryRun bool   `help:"Print the manifest instead of writing it." name:"dry-run" short:"n"`

	stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(ctx context.Context, cfg *config.Config, opts *runner.Options) error {
	format, err := manifest.ParseFormat(firstOf(c.Format, cfg.Format))
	if err != nil {
		return err
	}

	// Open the sink before scanning so a bad URL fails fast.
	var out sink.OutputSink
	if !c.DryRun {
		out, err = sink.Open(firstOf(c.Out, cfg.Output))
		if err != nil {
			return err
		}
	}

	col := discover.NewCollector()
	if _, err := runner.Exec(ctx, *opts, col); err != nil {
		return err
	}
	m := manifest.New(col.Descriptors(), col.UnremovableTypes())

	w := c.stdout
	if w == nil {
		w = os.Stdout
	}
	if c.DryRun {
		data, err := m.Encode(format)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	path, err := m.Write(ctx, out, format)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ wrote %s to %s (%d resources)\n", path, out, len(m.Resources))
	return nil
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
