package list

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/broady/restdata/discover"
	"github.com/broady/restdata/internal/runner"
	"github.com/broady/restdata/resource"
)

type Cmd struct {
	Long bool `help:"Show fully qualified type names." short:"l"`

	stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(ctx context.Context, opts *runner.Options) error {
	col := discover.NewCollector()
	if _, err := runner.Exec(ctx, *opts, col); err != nil {
		return err
	}

	w := c.stdout
	if w == nil {
		w = os.Stdout
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tINTERFACE\tENTITY\tID\tREPOSITORY")
	for _, d := range col.Descriptors() {
		repo := "-"
		if r, ok := d.(*resource.RepositoryAccess); ok {
			repo = c.name(r.RepositoryType().String(), r.RepositoryType().Short())
		}
		fmt.Fprintf(tw, "/%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ResourcePath(),
			d.Kind(),
			c.name(d.DeclaringInterface().String(), d.DeclaringInterface().Short()),
			c.name(d.EntityType().String(), d.EntityType().Short()),
			c.name(d.IDType().String(), d.IDType().Short()),
			repo,
		)
	}
	return tw.Flush()
}

func (c *Cmd) name(long, short string) string {
	if c.Long {
		return long
	}
	return short
}
