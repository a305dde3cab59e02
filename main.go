package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/paddocklabs/paddock/config"
	"github.com/paddocklabs/paddock/sim"
	"github.com/paddocklabs/paddock/species"
	"github.com/paddocklabs/paddock/telemetry"
	"github.com/paddocklabs/paddock/terrain"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	ticks := flag.Int("ticks", 3600, "Number of simulation ticks to run")
	dt := flag.Float64("dt", 1.0, "Seconds of simulated time per tick")
	herd := flag.Int("herd", 12, "Herbivores per herbivore species at start")
	packSize := flag.Int("pack", 3, "Predators per predator species at start")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (empty = use config)")
	flatTerrain := flag.Bool("flat", false, "Disable terrain height sampling")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Use config values if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}
	outDir := cfg.Telemetry.OutputDir
	if *outputDir != "" {
		outDir = *outputDir
	}

	var height sim.HeightSampler
	if !*flatTerrain {
		height = terrain.New(terrain.Params{
			Seed:       cfg.Terrain.Seed,
			Scale:      cfg.Terrain.Scale,
			Octaves:    cfg.Terrain.Octaves,
			Lacunarity: cfg.Terrain.Lacunarity,
			Gain:       cfg.Terrain.Gain,
			Amplitude:  cfg.Terrain.Amplitude,
		})
	}

	m := sim.NewManager(cfg, height)

	out, err := telemetry.NewOutputManager(outDir)
	if err != nil {
		slog.Error("failed to open output directory", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	collector := telemetry.NewCollector(statsWindowSec, float32(*dt))
	m.SetTelemetry(collector, out)

	// Seed the park.
	for id := species.ID(0); id < species.Count; id++ {
		n := *herd
		if species.Get(id).IsPredator {
			n = *packSize
		}
		for i := 0; i < n; i++ {
			m.SpawnDinosaur(id)
		}
	}

	slog.Info("starting simulation",
		"entities", m.EntityCount(),
		"ticks", *ticks,
		"dt", *dt,
		"stats_window", statsWindowSec,
		"output_dir", out.Dir(),
	)

	for i := 0; i < *ticks; i++ {
		m.Tick(float32(*dt))
	}

	slog.Info("simulation finished",
		"sim_time", m.SimTime(),
		"time_of_day", m.TimeOfDay(),
		"entities", m.EntityCount(),
		"births", m.Births(),
		"deaths", m.Deaths(),
		"predator_kills", m.PredatorKills(),
	)
}
