// Command flocksim runs a flocking simulation without a window and prints a
// summary of the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/app"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pb"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	var opts app.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "JSON configuration file")
	flag.StringVar(&opts.TelemetryPath, "telemetry", "", "sqlite file receiving per-tick statistics")
	flag.Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 picks one")
	ticks := flag.Int("ticks", 600, "number of ticks to run")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stdout)
	if *ticks <= 0 {
		logger.Errorf("flocksim: -ticks must be positive, got %d", *ticks)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, opts, *ticks, logger); err != nil {
		logger.Errorf("flocksim: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts app.Options, ticks int, logger golog.Logger) error {
	env, err := app.Setup(opts, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	system, err := actor.NewActorSystem("FlockSim", actor.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := system.Start(ctx); err != nil {
		return err
	}
	defer system.Stop(context.Background())

	world, err := system.Spawn(ctx, "world", simulation.NewWorldActor(env.Sim, nil, env.Recorder()))
	if err != nil {
		return fmt.Errorf("failed to spawn world: %w", err)
	}

	start := time.Now()
	// the mailbox is FIFO so the snapshot request is answered after the last tick
	for i := 0; i < ticks; i++ {
		if err := actor.Tell(ctx, world, &pb.Tick{}); err != nil {
			return fmt.Errorf("tick %d: %w", i+1, err)
		}
	}
	reply, err := actor.Ask(ctx, world, &pb.GetSnapshot{}, time.Minute+time.Duration(ticks)*100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("final snapshot: %w", err)
	}
	snap, ok := reply.(*pb.WorldSnapshot)
	if !ok {
		return fmt.Errorf("unexpected reply %T", reply)
	}
	elapsed := time.Since(start)

	logger.Infof("run %s finished: %s ticks in %s (%.1f ticks/s), %s/%s boids",
		snap.GetRunId(), humanize.Comma(int64(snap.GetTick())), elapsed.Round(time.Millisecond),
		float64(snap.GetTick())/elapsed.Seconds(),
		humanize.Comma(int64(snap.GetPopulation())), humanize.Comma(int64(snap.GetTargetPopulation())))

	if env.Telemetry == nil {
		return nil
	}
	sum, err := env.Telemetry.Summarize(snap.GetRunId())
	if err != nil {
		return fmt.Errorf("telemetry summary: %w", err)
	}
	logger.Infof("telemetry: %d ticks, peak %s boids, %s dropped spawns, %s re-home failures, avg tick %.0fµs",
		sum.Ticks, humanize.Comma(int64(sum.MaxPopulation)), humanize.Comma(int64(sum.CapacityExceeded)),
		humanize.Comma(int64(sum.RehomeFailures)), sum.AvgDurationUS)
	return nil
}
