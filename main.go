package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/turbstir/config"
	"github.com/pthm-cable/turbstir/stir"
	"github.com/pthm-cable/turbstir/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed override (0 = use config seed)")
	outputDir := flag.String("output-dir", "", "Output directory override for CSV logs and config snapshot")
	spectrum := flag.String("spectrum", "", "Spectral form override: band, parabolic, or powerlaw")

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

	if *seed != 0 {
		cfg.Stirring.Seed = *seed
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *spectrum != "" {
		form, err := stir.ParseSpectralForm(*spectrum)
		if err != nil {
			slog.Error("invalid spectrum override", "error", err)
			os.Exit(1)
		}
		cfg.Spectrum.Form = *spectrum
		cfg.Derived.Form = form
	}

	params := cfg.StirParams()
	if err := params.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("generating driving modes",
		"spectrum", params.SpectralForm.String(),
		"ndim", params.NDim,
		"stir_min", params.StirMin,
		"stir_max", params.StirMax,
		"max_modes", cfg.Stirring.MaxModes,
		"seed", cfg.Stirring.Seed,
	)

	table := stir.NewModeTable(params.NDim, cfg.Stirring.MaxModes)
	rng := stir.NewSequentialRNG(cfg.Stirring.Seed)

	rep, err := stir.Generate(table, params, rng)
	if err != nil {
		slog.Error("mode generation failed", "error", err)
		os.Exit(1)
	}
	table.InitPhases(rng)

	if rep.Truncated {
		slog.Warn("mode table truncated",
			"written", rep.Written,
			"total_candidates", rep.TotalCandidates,
			"capacity", table.Capacity(),
		)
	}

	stats := telemetry.Summarize(table, rep)
	slog.Info("mode generation complete",
		"written", rep.Written,
		"total_candidates", rep.TotalCandidates,
		"truncated", rep.Truncated,
		"variance", stats.Variance,
		"sol_weight", stats.SolWeight,
		"k_min", stats.KMin,
		"k_max", stats.KMax,
		"amp_mean", stats.AmpMean,
		"rng_state", rng.State(),
	)

	om, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if om == nil {
		return
	}

	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}
	if err := om.WriteModes(telemetry.ModeRecords(table)); err != nil {
		slog.Error("failed to write modes", "error", err)
		os.Exit(1)
	}
	if err := om.WriteSummary(stats); err != nil {
		slog.Error("failed to write summary", "error", err)
		os.Exit(1)
	}
	slog.Info("output written", "dir", cfg.Output.Dir)
}
