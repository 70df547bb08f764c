package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/avtools/airfieldsim/internal/config"
	"github.com/avtools/airfieldsim/internal/simulation"
	"github.com/avtools/airfieldsim/internal/telemetry"
	"github.com/avtools/airfieldsim/internal/topology"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file (optional; built-in defaults are used otherwise)")
	nodesFile := flag.String("nodes", "", "override the nodes CSV file path")
	edgesFile := flag.String("edges", "", "override the edges CSV file path")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("loading config", slog.Any("err", err))
			os.Exit(1)
		}
		cfg = loaded
	}
	if *nodesFile != "" || *edgesFile != "" {
		cfg = cfg.WithTopology(*nodesFile, *edgesFile)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	logger := telemetry.New(telemetry.Options{Level: cfg.Log.Level, FilePath: cfg.Log.FilePath})

	graph, err := topology.Load(cfg.NodesFile, cfg.EdgesFile)
	if err != nil {
		logger.Error("loading topology", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("topology loaded",
		slog.Int("nodes", graph.NodeCount()),
		slog.Int("edges", graph.EdgeCount()))

	model, err := simulation.NewAirfieldModel(
		graph,
		cfg.WindDirection,
		cfg.NumArrivingAirplanes,
		cfg.ArrivalRate,
		cfg.Durations(),
		cfg.PathCacheSize,
		cfg.Seed,
		logger,
	)
	if err != nil {
		logger.Error("constructing model", slog.Any("err", err))
		os.Exit(1)
	}

	maxTicks := cfg.MaxTicks
	if maxTicks <= 0 {
		maxTicks = simulation.DefaultMaxTicks
	}

	ticks, err := model.Run(context.Background(), maxTicks)
	if err != nil {
		logger.Error("run ended with error", slog.Any("err", err), slog.Int("ticks", ticks))
		os.Exit(1)
	}

	snap := model.Observe()
	logger.Info("simulation finished",
		slog.Int("ticks_run", ticks),
		slog.Int("aircraft_remaining", len(snap.Aircraft)),
		slog.Bool("runway_busy", snap.Runway.IsBusy))
}
