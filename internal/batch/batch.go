// Package batch runs strategy-table and house-edge computations for many
// rule configurations in parallel. Each job owns a fresh engine with its
// own caches, so jobs share nothing and need no locking.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-solver/blackjack"
)

// Job names one rule configuration to analyze.
type Job struct {
	Name  string
	Rules blackjack.Rules
}

// Result is the completed analysis for one job.
type Result struct {
	Job       Job
	Tables    *blackjack.Tables
	HouseEdge float64
}

// GridJobs enumerates the full export grid: deck counts crossed with the
// H17, DAS, RSA, peek and surrender flags, at the standard 3:2 payout.
func GridJobs() []Job {
	deckOptions := []int{1, 2, 4, 6, 8, 0}
	boolOptions := []bool{false, true}

	var jobs []Job
	for _, decks := range deckOptions {
		for _, h17 := range boolOptions {
			for _, das := range boolOptions {
				for _, rsa := range boolOptions {
					for _, peek := range boolOptions {
						for _, sur := range boolOptions {
							rules := blackjack.DefaultRules()
							rules.Decks = decks
							rules.DealerHitsSoft17 = h17
							rules.DoubleAfterSplit = das
							rules.ResplitAces = rsa
							rules.DealerPeeks = peek
							rules.LateSurrender = sur
							jobs = append(jobs, Job{Name: rules.String(), Rules: rules})
						}
					}
				}
			}
		}
	}
	return jobs
}

// Run analyzes every job using up to workers goroutines (0 means one per
// CPU) and returns results in job order. The first failing job cancels the
// rest.
func Run(ctx context.Context, jobs []Job, workers int, logger *log.Logger) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.Debug("analyzing rules", "name", job.Name)

			tables, err := blackjack.BuildTables(job.Rules)
			if err != nil {
				return fmt.Errorf("job %q: build tables: %w", job.Name, err)
			}
			edge, err := blackjack.HouseEdge(job.Rules)
			if err != nil {
				return fmt.Errorf("job %q: house edge: %w", job.Name, err)
			}

			results[i] = Result{Job: job, Tables: tables, HouseEdge: edge}
			logger.Info("analyzed rules", "name", job.Name, "house_edge_pct", fmt.Sprintf("%.4f", edge))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
