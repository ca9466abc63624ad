package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-solver/internal/batch"
	"github.com/lox/blackjack-solver/internal/export"
	"github.com/lox/blackjack-solver/internal/rulesfile"
)

type CLI struct {
	Out     string `short:"o" default:"strategies" help:"Output directory for JSON strategy files"`
	Config  string `short:"c" help:"HCL rules file; the full rule grid is exported when omitted"`
	Workers int    `short:"w" default:"0" help:"Parallel workers (0 for one per CPU)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bjbatch"),
		kong.Description("Export strategy tables and house edges for many rule sets as JSON."))

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	jobs, err := loadJobs(cli.Config)
	if err != nil {
		logger.Fatal("Failed to load jobs", "error", err)
	}
	if err := os.MkdirAll(cli.Out, 0o755); err != nil {
		logger.Fatal("Failed to create output directory", "dir", cli.Out, "error", err)
	}

	start := time.Now()
	results, err := batch.Run(context.Background(), jobs, cli.Workers, logger)
	if err != nil {
		logger.Fatal("Batch failed", "error", err)
	}

	entries := make([]export.IndexEntry, 0, len(results))
	for _, res := range results {
		rec := export.NewRecord(res.Tables, res.HouseEdge)
		name, err := export.Write(cli.Out, rec, res.Job.Rules)
		if err != nil {
			logger.Fatal("Failed to write export", "job", res.Job.Name, "error", err)
		}
		entries = append(entries, export.IndexEntry{Filename: name, Config: rec.Config})
	}
	if err := export.WriteIndex(cli.Out, entries); err != nil {
		logger.Fatal("Failed to write index", "error", err)
	}

	logger.Info("Batch complete",
		"configs", len(results),
		"dir", cli.Out,
		"elapsed", time.Since(start).Truncate(time.Millisecond))
	ctx.Exit(0)
}

func loadJobs(configPath string) ([]batch.Job, error) {
	if configPath == "" {
		return batch.GridJobs(), nil
	}
	named, err := rulesfile.Load(configPath)
	if err != nil {
		return nil, err
	}
	jobs := make([]batch.Job, 0, len(named))
	for _, n := range named {
		jobs = append(jobs, batch.Job{Name: n.Name, Rules: n.Rules})
	}
	return jobs, nil
}
