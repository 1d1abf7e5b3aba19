// Package gradcheck verifies autodiff gradients against centered finite
// differences.
//
// Each case is evaluated on a deterministic grid of sample points. For every
// sample the case is built on fresh leaves and differentiated with
// Backward, then each input is perturbed by ±Epsilon and the forward values
// give the numeric estimate. Samples run concurrently, one graph per
// sample, so no graph is ever shared between goroutines.
package gradcheck

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/born-ml/gradval/internal/parallel"
)

// Result is the outcome for one input of one sample.
type Result struct {
	Case     string
	Input    string
	Point    []float32 // all inputs of the sample, in case order
	Analytic float32   // from Backward; 0 when the input got no gradient
	Numeric  float64   // centered finite difference
	Pass     bool
}

// Err returns |Analytic - Numeric|.
func (r Result) Err() float64 {
	return math.Abs(float64(r.Analytic) - r.Numeric)
}

func (r Result) String() string {
	parts := make([]string, len(r.Point))
	for i, v := range r.Point {
		parts[i] = fmt.Sprintf("%g", v)
	}
	status := "ok"
	if !r.Pass {
		status = "FAIL"
	}
	return fmt.Sprintf("%s %s d/d%s at (%s): analytic=%g numeric=%g err=%.3g",
		status, r.Case, r.Input, strings.Join(parts, ", "), r.Analytic, r.Numeric, r.Err())
}

// Report collects the results of a run.
type Report struct {
	Results  []Result
	Failed   int
	Duration time.Duration
}

// Passed reports whether every sample passed.
func (r *Report) Passed() bool {
	return r.Failed == 0
}

// Failures returns the failing results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Pass {
			out = append(out, res)
		}
	}
	return out
}

// Run checks the built-in cases selected by cfg.Ops.
// A nil logger uses slog.Default().
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cases, err := selectCases(cfg.Ops)
	if err != nil {
		return nil, err
	}
	return RunCases(ctx, cfg, cases, logger)
}

// RunCases checks the given cases. cfg.Ops is ignored.
//
// The returned error is non-nil only for invalid configuration or a done
// context; gradient mismatches are reported in the Report.
func RunCases(ctx context.Context, cfg Config, cases []Case, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Ops = nil
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	jobs := len(cases) * cfg.Samples
	results := make([][]Result, jobs)

	pcfg := parallel.DefaultConfig()
	if cfg.Workers > 0 {
		pcfg = parallel.WithWorkers(cfg.Workers)
	}

	err := parallel.ForEach(ctx, jobs, func(_ context.Context, i int) error {
		c := cases[i/cfg.Samples]
		results[i] = checkSample(c, c.point(i%cfg.Samples, cfg.Samples), cfg)
		return nil
	}, pcfg)
	if err != nil {
		return nil, fmt.Errorf("gradient check: %w", err)
	}

	report := &Report{}
	for _, rs := range results {
		for _, r := range rs {
			if !r.Pass {
				report.Failed++
				logger.Warn("gradient mismatch",
					slog.String("case", r.Case),
					slog.String("input", r.Input),
					slog.Any("point", r.Point),
					slog.Float64("analytic", float64(r.Analytic)),
					slog.Float64("numeric", r.Numeric))
			}
			report.Results = append(report.Results, r)
		}
	}
	report.Duration = time.Since(start)

	logger.Info("gradient check finished",
		slog.Int("cases", len(cases)),
		slog.Int("checks", len(report.Results)),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", report.Duration))

	return report, nil
}

// checkSample differentiates c at p and compares every input's gradient
// with its finite-difference estimate.
func checkSample(c Case, p []float32, cfg Config) []Result {
	root, leaves := c.eval(p)
	root.Backward()

	out := make([]Result, len(leaves))
	for j, leaf := range leaves {
		analytic, _ := leaf.Grad()
		numeric := numericGradient(c, p, j, cfg.Epsilon)
		out[j] = Result{
			Case:     c.Name,
			Input:    c.Inputs[j].Name,
			Point:    p,
			Analytic: analytic,
			Numeric:  numeric,
			Pass:     within(analytic, numeric, cfg.Tolerance),
		}
	}
	return out
}

// numericGradient estimates ∂f/∂p[j] by a centered difference. The divisor
// is the step actually taken after float32 rounding of p[j]±eps.
func numericGradient(c Case, p []float32, j int, eps float32) float64 {
	plus := append([]float32(nil), p...)
	minus := append([]float32(nil), p...)
	plus[j] = p[j] + eps
	minus[j] = p[j] - eps

	fPlus, _ := c.eval(plus)
	fMinus, _ := c.eval(minus)
	step := float64(plus[j]) - float64(minus[j])
	return (float64(fPlus.Data()) - float64(fMinus.Data())) / step
}

// within reports whether analytic and numeric agree. NaN never agrees.
func within(analytic float32, numeric, tol float64) bool {
	a := float64(analytic)
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(numeric)))
	return math.Abs(a-numeric) <= tol*scale
}
