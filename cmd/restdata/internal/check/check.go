package check

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/broady/restdata/internal/runner"
)

type Cmd struct {
	stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(ctx context.Context, opts *runner.Options) error {
	res, err := runner.Exec(ctx, *opts, nil)
	if err != nil {
		return err
	}

	w := c.stdout
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "✓ %d declarations checked, %d resources\n", res.Candidates, len(res.Descriptors))
	if n := len(res.Unremovable); n > 0 {
		fmt.Fprintf(w, "✓ %d repository types kept\n", n)
	}
	return nil
}
