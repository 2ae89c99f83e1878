// Command meshset exercises the meshset packages from the command
// line: it draws from the random generator, prints sets in
// deterministic or randomized order, and reports pool statistics.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/vipss/meshset/meshrand"
	"github.com/vipss/meshset/pool"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "read settings from the TOML file `FILE`",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (debug|info|warn|error)",
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "seed for the default random generator",
	}
)

// env holds the state shared by all commands once the
// global flags and the config file have been applied.
type env struct {
	cfg    Config
	logger *slog.Logger
	rand   *meshrand.Rand
}

func (e *env) poolConfig(name string) pool.Config {
	return pool.Config{
		Name:       name,
		FirstChunk: e.cfg.FirstChunk,
		Logger:     e.logger,
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	e := new(env)
	app := &cli.App{
		Name:      "meshset",
		Usage:     "exercise pooled sets and the mesh random generator",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{configFlag, logLevelFlag, seedFlag},
		Before: func(ctx *cli.Context) error {
			return e.setup(ctx, stderr)
		},
		Commands: []*cli.Command{
			randCommand(e),
			shuffleCommand(e),
			poolCommand(e),
		},
	}
	return app
}

// setup resolves the configuration. Flags override the config
// file, which overrides the defaults.
func (e *env) setup(ctx *cli.Context, stderr io.Writer) error {
	cfg := defaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = loadConfig(path); err != nil {
			return err
		}
	}
	if ctx.IsSet(seedFlag.Name) {
		seed := ctx.Int64(seedFlag.Name)
		if seed < math.MinInt32 || seed > math.MaxInt32 {
			return errors.Newf("seed %d out of range", seed)
		}
		cfg.Seed = int32(seed)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = ctx.String(logLevelFlag.Name)
	}
	level, err := cfg.validate()
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	e.rand = meshrand.New(cfg.Seed)
	e.logger.Debug("configured", "seed", cfg.Seed, "first_chunk", cfg.FirstChunk)
	return nil
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "meshset: %v\n", err)
		os.Exit(1)
	}
}
