package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/plus3/tetris/config"
	"github.com/plus3/tetris/logx"
	"github.com/plus3/tetris/tetris"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "seed for the piece generator, 0 picks one at random",
		},
		&cli.StringFlag{
			Name:  "lockdown",
			Usage: "lockdown mode: extended, classic or infinite",
		},
		&cli.IntFlag{
			Name:  "preview",
			Usage: "number of upcoming pieces to keep",
		},
		&cli.IntFlag{
			Name:  "level",
			Usage: "starting level",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
	}
}

// settings loads the config file and environment, then applies any flags
// given on the command line.
func settings(c *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("lockdown") {
		cfg.Lockdown = c.String("lockdown")
	}
	if c.IsSet("preview") {
		cfg.Preview = int(c.Int("preview"))
	}
	if c.IsSet("level") {
		cfg.Level = int(c.Int("level"))
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func gameOptions(cfg *config.Config, log *zap.Logger) []tetris.Option {
	opts := []tetris.Option{
		tetris.WithLockdownMode(cfg.LockdownMode()),
		tetris.WithPreview(cfg.Preview),
		tetris.WithInitialLines(cfg.InitialLines()),
		tetris.WithWeights(cfg.Weights()),
		tetris.WithLogger(log),
	}
	if cfg.Seed != 0 {
		opts = append(opts, tetris.WithSeed(cfg.Seed))
	}
	return opts
}

func main() {
	if err := (&cli.Command{
		Name:  "tetris",
		Usage: "guideline tetris",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "open a window and play",
				Flags: sharedFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := settings(c)
					if err != nil {
						return err
					}
					log := logx.New(logx.Options{Level: cfg.LogLevel, Dev: true, Console: true})
					defer log.Sync()

					return play(cfg, log)
				},
			},
			{
				Name:  "sim",
				Usage: "let the hint engine play headless and print a report",
				Flags: append(sharedFlags(),
					&cli.DurationFlag{
						Name:  "duration",
						Value: 10 * time.Second,
						Usage: "wall clock limit for the run",
					},
					&cli.IntFlag{
						Name:  "max-pieces",
						Usage: "stop after this many locked pieces, 0 for no limit",
					},
					&cli.IntFlag{
						Name:  "drop-every",
						Usage: "ticks the autopilot waits before placing a piece",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := settings(c)
					if err != nil {
						return err
					}
					if c.IsSet("max-pieces") {
						cfg.Autoplay.MaxPieces = int(c.Int("max-pieces"))
					}
					if c.IsSet("drop-every") {
						cfg.Autoplay.DropEvery = int(c.Int("drop-every"))
					}
					if err := cfg.Validate(); err != nil {
						return err
					}

					log := logx.New(logx.Options{Level: cfg.LogLevel})
					defer log.Sync()

					ctx, cancel := context.WithTimeout(ctx, c.Duration("duration"))
					defer cancel()

					report := simulate(ctx, cfg, log)
					return report.Generate(os.Stdout)
				},
			},
		},
	}).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
