package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/broady/restdata/cmd/restdata/internal/check"
	"github.com/broady/restdata/cmd/restdata/internal/gen"
	"github.com/broady/restdata/cmd/restdata/internal/list"
	"github.com/broady/restdata/internal/config"
	"github.com/broady/restdata/internal/runner"
)

type CLI struct {
	Globals

	Version VersionCmd `cmd:"" help:"Print version information."`
	List    list.Cmd   `cmd:"" help:"List discovered REST resources."`
	Check   check.Cmd  `cmd:"" help:"Validate resource declarations without writing files."`
	Gen     gen.Cmd    `cmd:"" help:"Write the resource manifest."`
}

// Globals are flags shared by all commands. Set flags override the
// config file.
type Globals struct {
	Config     string   `help:"Config file (default: restdata.toml in --dir, if present)." type:"path"`
	Dir        string   `help:"Directory to resolve packages in." short:"C" type:"existingdir" default:"."`
	Packages   []string `help:"Package patterns to scan." short:"p" name:"pkg"`
	Workers    int      `help:"Maximum concurrent validations (0 for no limit)." default:"-1"`
	CollectAll bool     `help:"Report every malformed declaration, not just the first." name:"collect-all"`
	Tests      bool     `help:"Include test files."`
	LogLevel   string   `help:"Log level: debug, info, warn or error." name:"log-level"`
}

// settings loads the config file and overlays set flags.
func (g *Globals) settings() (*config.Config, error) {
	path, required := g.Config, true
	if path == "" {
		path, required = filepath.Join(g.Dir, config.DefaultFile), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	if len(g.Packages) > 0 {
		cfg.Packages = g.Packages
	}
	if g.Workers >= 0 {
		cfg.Workers = g.Workers
	}
	if g.CollectAll {
		cfg.CollectAll = true
	}
	if g.Tests {
		cfg.Tests = true
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func newParser(cli *CLI, ctx context.Context) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("restdata"),
		kong.Description("Discover and validate REST data resource declarations."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
}

// run executes the selected command. Settings are only loaded for commands
// that scan packages.
func (cli *CLI) run(kctx *kong.Context) error {
	if kctx.Command() == "version" {
		return kctx.Run()
	}

	cfg, err := cli.settings()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	opts := runner.FromConfig(cfg, cli.Dir, logger)
	return kctx.Run(cfg, &opts)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := &CLI{}
	parser, err := newParser(cli, ctx)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = cli.run(kctx)
	kctx.FatalIfErrorf(err)
}
