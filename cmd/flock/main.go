// Command flock opens a window on a live flocking simulation.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/app"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/render"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	var opts app.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "JSON configuration file")
	flag.StringVar(&opts.TelemetryPath, "telemetry", "", "sqlite file receiving per-tick statistics")
	flag.Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 picks one")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stdout)
	if err := run(opts, logger); err != nil {
		logger.Errorf("flock: %v", err)
		os.Exit(1)
	}
}

func run(opts app.Options, logger golog.Logger) error {
	ctx := context.Background()

	env, err := app.Setup(opts, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	system, err := actor.NewActorSystem("FlockWorld", actor.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := system.Start(ctx); err != nil {
		return err
	}
	defer system.Stop(ctx)

	game, err := render.NewGame(ctx, system, env.Sim, env.Recorder())
	if err != nil {
		return err
	}
	return render.Run(game, "Flock")
}
