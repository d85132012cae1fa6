// Command raycar plays a scripted drive through the raycast vehicle and
// prints a speed chart with slide statistics
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/raycar/config"
	"github.com/lixenwraith/raycar/sim"
	"github.com/lixenwraith/raycar/telemetry"
)

var (
	configFlag   = flag.String("config", "", "Config file (toml, json or yaml)")
	debugFlag    = flag.Bool("debug", false, "Log per-wheel state every tick")
	durationFlag = flag.Duration("duration", 0, "Override run length")
	backendFlag  = flag.String("telemetry", "", "Override telemetry backend: none, memory, sqlite, postgres, influx")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "raycar: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *debugFlag {
		cfg.Sim.Debug = true
		cfg.LogLevel = "debug"
	}
	if *durationFlag > 0 {
		cfg.Sim.Duration = *durationFlag
	}
	if *backendFlag != "" {
		cfg.Telemetry.Backend = *backendFlag
	}

	log, logFile, err := setupLogging(cfg.LogLevel, cfg.LogsDir, cfg.GraylogAddress, os.Stdout)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rig, err := cfg.Assemble(log)
	if err != nil {
		return fmt.Errorf("assemble vehicle: %w", err)
	}

	runID := cfg.Telemetry.RunName
	if runID == "" {
		runID = time.Now().UTC().Format("20060102T150405")
	}

	backend, err := telemetry.Open(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("open telemetry: %w", err)
	}
	mem := telemetry.NewMemory()
	rec := telemetry.Multi(mem, backend)
	defer func() {
		if err := rec.Close(); err != nil {
			log.Error().Err(err).Msg("telemetry close failed")
		}
	}()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	runner := sim.NewRunner(rig.Vehicle, rig.Body,
		sim.WithStep(cfg.Sim.Step),
		sim.WithMaxSubSteps(cfg.Sim.MaxSubSteps),
		sim.WithRunnerLogger(log),
	)
	tap := telemetry.NewTap(ctx, rec, metrics, rig.Body, runID, cfg.Telemetry.EveryTicks, log)
	stats := &runStats{}
	runner.OnStep(tap.Observe)
	runner.OnStep(stats.Observe)

	log.Info().
		Str("run", runID).
		Int("wheels", rig.Vehicle.WheelCount()).
		Str("backend", cfg.Telemetry.Backend).
		Dur("duration", cfg.Sim.Duration).
		Msg("starting run")

	if err := runner.Run(ctx, rig.Script, cfg.Sim.Duration); err != nil {
		log.Warn().Err(err).Msg("run interrupted")
	}

	track := telemetry.Track(mem.Samples())
	stats.distance = track.Length()
	log.Debug().Str("wkt", track.AsText()).Msg("ground track")

	fmt.Print(stats.render(runID, mem.Len(), tap.Failures()))
	return nil
}
