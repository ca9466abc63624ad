// Package validator invokes the external Monte Carlo simulator and parses
// its house-edge estimate, so exact-engine results can be cross-checked
// offline. Nothing from the simulator ever feeds back into the engine.
package validator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// edgeLine matches the simulator's summary, e.g.
// "House edge: 0.4507% +/- 0.0035%".
var edgeLine = regexp.MustCompile(`House edge: ([\d.]+)% \+/- ([\d.]+)%`)

// ErrNoEdgeLine is returned when the simulator output carries no parsable
// house-edge line.
var ErrNoEdgeLine = errors.New("validator: no house edge line in simulator output")

// Result is one parsed simulator run.
type Result struct {
	HouseEdge     float64
	CI            float64
	HandsBillions int
	Elapsed       time.Duration
}

// Agrees reports whether an exact house edge lies within the simulator's
// confidence interval widened by tolerance percentage points.
func (r Result) Agrees(exactEdge, tolerance float64) bool {
	return math.Abs(r.HouseEdge-exactEdge) <= r.CI+tolerance
}

// Runner executes the simulator binary once per strategy file.
type Runner struct {
	Binary  string
	Timeout time.Duration
	Logger  *log.Logger

	// Clock is injectable for tests; the real clock is used when nil.
	Clock quartz.Clock
}

func (r *Runner) clock() quartz.Clock {
	if r.Clock == nil {
		return quartz.NewReal()
	}
	return r.Clock
}

// Run invokes the simulator against a strategy export for the given number
// of hands (in billions) and parses its stdout.
func (r *Runner) Run(ctx context.Context, strategyFile string, handsBillions int) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := r.clock().Now()
	r.Logger.Info("running monte carlo simulator",
		"binary", r.Binary, "strategy", strategyFile, "hands_billions", handsBillions)

	cmd := exec.CommandContext(ctx, r.Binary, strategyFile, strconv.Itoa(handsBillions))
	out, err := cmd.Output()
	elapsed := r.clock().Since(start)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("simulator failed: %w: %s", err, exitErr.Stderr)
		}
		return Result{}, fmt.Errorf("simulator failed: %w", err)
	}

	res, err := ParseOutput(string(out))
	if err != nil {
		return Result{}, err
	}
	res.HandsBillions = handsBillions
	res.Elapsed = elapsed

	r.Logger.Info("simulator finished",
		"house_edge_pct", res.HouseEdge, "ci_pct", res.CI, "elapsed", elapsed)
	return res, nil
}

// ParseOutput extracts the house edge and confidence interval from the
// simulator's free-text output.
func ParseOutput(output string) (Result, error) {
	m := edgeLine.FindStringSubmatch(output)
	if m == nil {
		return Result{}, ErrNoEdgeLine
	}
	edge, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Result{}, fmt.Errorf("validator: parse edge %q: %w", m[1], err)
	}
	ci, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Result{}, fmt.Errorf("validator: parse interval %q: %w", m[2], err)
	}
	return Result{HouseEdge: edge, CI: ci}, nil
}
