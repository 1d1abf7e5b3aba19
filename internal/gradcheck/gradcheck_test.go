package gradcheck_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/born-ml/gradval/internal/autodiff"
	"github.com/born-ml/gradval/internal/gradcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_DefaultsPass(t *testing.T) {
	report, err := gradcheck.Run(context.Background(), gradcheck.DefaultConfig(), quietLogger())
	require.NoError(t, err)

	for _, f := range report.Failures() {
		t.Errorf("unexpected failure: %v", f)
	}
	assert.True(t, report.Passed())

	// One result per input per sample.
	want := 0
	for _, c := range gradcheck.Cases() {
		want += len(c.Inputs) * gradcheck.DefaultConfig().Samples
	}
	assert.Len(t, report.Results, want)
}

func TestRun_SequentialMatchesParallel(t *testing.T) {
	cfg := gradcheck.DefaultConfig()
	cfg.Ops = []string{"pow", "div", "square"}

	cfg.Workers = 1
	seq, err := gradcheck.Run(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	cfg.Workers = 4
	par, err := gradcheck.Run(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	require.Len(t, par.Results, len(seq.Results))
	for i := range seq.Results {
		assert.Equal(t, seq.Results[i].Case, par.Results[i].Case)
		assert.Equal(t, seq.Results[i].Point, par.Results[i].Point)
		assert.Equal(t, seq.Results[i].Analytic, par.Results[i].Analytic)
		assert.Equal(t, seq.Results[i].Numeric, par.Results[i].Numeric)
	}
}

func TestRun_SelectedOps(t *testing.T) {
	cfg := gradcheck.DefaultConfig()
	cfg.Ops = []string{"mul"}
	cfg.Samples = 3

	report, err := gradcheck.Run(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	require.Len(t, report.Results, 6)

	for _, r := range report.Results {
		assert.Equal(t, "mul", r.Case)
	}
	// First sample pairs the low end of a with the high end of b.
	assert.Equal(t, []float32{-3, 3}, report.Results[0].Point)
	assert.Equal(t, "a", report.Results[0].Input)
	assert.Equal(t, "b", report.Results[1].Input)
	assert.InDelta(t, 3, report.Results[0].Analytic, 1e-6)
	assert.InDelta(t, -3, report.Results[1].Analytic, 1e-6)
}

func TestRun_SingleSampleUsesMidpoint(t *testing.T) {
	cfg := gradcheck.DefaultConfig()
	cfg.Ops = []string{"log"}
	cfg.Samples = 1

	report, err := gradcheck.Run(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, []float32{2.25}, report.Results[0].Point)
}

func TestRun_UnknownOp(t *testing.T) {
	cfg := gradcheck.DefaultConfig()
	cfg.Ops = []string{"tanh"}

	_, err := gradcheck.Run(context.Background(), cfg, quietLogger())
	assert.ErrorIs(t, err, gradcheck.ErrInvalidConfig)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gradcheck.Run(ctx, gradcheck.DefaultConfig(), quietLogger())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCases_DetachedInputFails(t *testing.T) {
	// Rebuilding x² from raw data cuts x out of the graph, so x receives
	// no gradient while the forward value still depends on it.
	detached := gradcheck.Case{
		Name:   "detached",
		Inputs: []gradcheck.Input{{Name: "x", Min: 1, Max: 2}},
		Build: func(in []autodiff.Value) autodiff.Value {
			return autodiff.New(in[0].Data() * in[0].Data())
		},
	}

	cfg := gradcheck.DefaultConfig()
	cfg.Samples = 4

	report, err := gradcheck.RunCases(context.Background(), cfg, []gradcheck.Case{detached}, quietLogger())
	require.NoError(t, err)

	assert.False(t, report.Passed())
	assert.Equal(t, 4, report.Failed)
	require.Len(t, report.Failures(), 4)

	f := report.Failures()[0]
	assert.Zero(t, f.Analytic)
	assert.InDelta(t, 2, f.Numeric, 1e-2)
	assert.Contains(t, f.String(), "FAIL detached d/dx at (1)")
}

func TestRunCases_NonFiniteFails(t *testing.T) {
	// ln of a negative base makes the exponent gradient NaN.
	negBase := gradcheck.Case{
		Name:   "negpow",
		Inputs: []gradcheck.Input{{Name: "base", Min: -3, Max: -2}, {Name: "exponent", Min: 2, Max: 2}},
		Build: func(in []autodiff.Value) autodiff.Value {
			return in[0].Pow(in[1])
		},
	}

	cfg := gradcheck.DefaultConfig()
	cfg.Samples = 2

	report, err := gradcheck.RunCases(context.Background(), cfg, []gradcheck.Case{negBase}, quietLogger())
	require.NoError(t, err)

	for _, r := range report.Results {
		switch r.Input {
		case "base":
			assert.True(t, r.Pass, "%v", r)
		case "exponent":
			assert.False(t, r.Pass, "%v", r)
		}
	}
}
