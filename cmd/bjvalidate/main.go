package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-solver/internal/export"
	"github.com/lox/blackjack-solver/internal/validator"
)

type CLI struct {
	Binary        string        `arg:"" help:"Path to the Monte Carlo simulator binary"`
	Strategies    string        `short:"s" default:"strategies" help:"Directory of exported strategy JSON files"`
	HandsBillions int           `short:"n" default:"1" help:"Hands to simulate per config, in billions"`
	Tolerance     float64       `short:"t" default:"0.02" help:"Extra disagreement allowance beyond the simulator CI, in percentage points"`
	Timeout       time.Duration `default:"5m" help:"Per-config simulator timeout"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bjvalidate"),
		kong.Description("Cross-check exported house edges against the external Monte Carlo simulator."))

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	files, err := strategyFiles(cli.Strategies)
	if err != nil {
		logger.Fatal("Failed to list strategy files", "error", err)
	}
	if len(files) == 0 {
		logger.Fatal("No strategy files found", "dir", cli.Strategies)
	}

	runner := &validator.Runner{
		Binary:  cli.Binary,
		Timeout: cli.Timeout,
		Logger:  logger,
	}

	failures := 0
	for _, file := range files {
		exactEdge, err := exportedEdge(file)
		if err != nil {
			logger.Error("Skipping unreadable export", "file", file, "error", err)
			failures++
			continue
		}

		res, err := runner.Run(context.Background(), file, cli.HandsBillions)
		if err != nil {
			logger.Error("Simulation failed", "file", file, "error", err)
			failures++
			continue
		}

		if res.Agrees(exactEdge, cli.Tolerance) {
			logger.Info("OK", "file", filepath.Base(file),
				"exact_pct", fmt.Sprintf("%.4f", exactEdge),
				"simulated_pct", fmt.Sprintf("%.4f±%.4f", res.HouseEdge, res.CI))
		} else {
			logger.Error("MISMATCH", "file", filepath.Base(file),
				"exact_pct", fmt.Sprintf("%.4f", exactEdge),
				"simulated_pct", fmt.Sprintf("%.4f±%.4f", res.HouseEdge, res.CI))
			failures++
		}
	}

	if failures > 0 {
		logger.Error("Validation finished with failures", "failures", failures, "total", len(files))
		ctx.Exit(1)
	}
	logger.Info("All configs agree with simulation", "total", len(files))
	ctx.Exit(0)
}

// strategyFiles lists the per-config exports, skipping the index manifest.
func strategyFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, m := range matches {
		if filepath.Base(m) == "index.json" {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// exportedEdge reads the exact house edge recorded in a strategy export.
func exportedEdge(file string) (float64, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, err
	}
	var rec export.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("decode %s: %w", file, err)
	}
	return rec.HouseEdge, nil
}
