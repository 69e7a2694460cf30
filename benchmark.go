package main

import (
	"github.com/rs/zerolog"
)

// VariantResult holds everything produced for one scheduling variant of the
// ansatz: the circuit as built, its compiled form, raw outcome counts, and
// the reduced metrics.
type VariantResult struct {
	Schedule   Schedule
	Circuit    *Circuit
	Compiled   *Circuit
	Counts     Counts
	Metrics    Metrics
	PreCounts  GateCounts
	PostCounts GateCounts
}

// Report is the paired comparison for one (qubits, layers) configuration.
// Derived, read-only, produced once per run.
type Report struct {
	NumQubits int
	NumLayers int
	Standard  VariantResult
	EGS       VariantResult
}

// ImprovementPct is the percentage fidelity improvement of EGS over the
// standard schedule.
func (r *Report) ImprovementPct() float64 {
	return (r.EGS.Metrics.Fidelity/r.Standard.Metrics.Fidelity - 1) * 100
}

// Runner orchestrates one benchmark: it generates a reproducible parameter
// vector, builds both scheduling variants from the identical vector, and
// compiles and executes them under byte-identical noise and shot
// configuration. Any failure in either variant aborts the comparison; there
// are no partial reports.
type Runner struct {
	cfg Config
	log zerolog.Logger
}

// NewRunner builds a Runner from an explicit configuration.
func NewRunner(cfg Config, log zerolog.Logger) *Runner {
	return &Runner{
		cfg: cfg,
		log: log.With().Str("component", "benchmark").Logger(),
	}
}

// Run executes the full comparison for one configuration.
func (r *Runner) Run(nQubits, nLayers int) (*Report, error) {
	nParams := ParamCount(nQubits, nLayers)
	params := RandomParameters(nParams, r.cfg.Seed)
	r.log.Info().
		Int("qubits", nQubits).
		Int("layers", nLayers).
		Int("params", nParams).
		Uint64("seed", r.cfg.Seed).
		Msg("starting benchmark")

	noise := BuildNoiseModel(r.cfg.Noise)
	backend := NewLinearBackend(nQubits)
	sim := NewSimulator(noise, r.cfg.Seed, r.log)

	report := &Report{NumQubits: nQubits, NumLayers: nLayers}
	for _, schedule := range []Schedule{ScheduleInterleaved, ScheduleLayeredDeferred} {
		circuit, err := BuildAnsatz(nQubits, nLayers, params, schedule)
		if err != nil {
			return nil, err
		}
		result, err := r.runVariant(circuit, schedule, backend, sim)
		if err != nil {
			return nil, err
		}
		switch schedule {
		case ScheduleInterleaved:
			report.Standard = result
		case ScheduleLayeredDeferred:
			report.EGS = result
		}
	}

	r.log.Info().
		Float64("fid_std", report.Standard.Metrics.Fidelity).
		Float64("fid_egs", report.EGS.Metrics.Fidelity).
		Int("depth_std", report.Standard.Metrics.Depth).
		Int("depth_egs", report.EGS.Metrics.Depth).
		Msg("benchmark complete")
	return report, nil
}

// runVariant compiles one variant against the backend and executes it for
// the configured shot count. Compilation and execution failures are kept
// distinct; neither is retried.
func (r *Runner) runVariant(circuit *Circuit, schedule Schedule, backend *Backend, sim *Simulator) (VariantResult, error) {
	compiled, err := Transpile(circuit, backend, r.cfg.OptimizationLevel)
	if err != nil {
		return VariantResult{}, err
	}
	r.log.Debug().
		Stringer("schedule", schedule).
		Int("depth", CompiledDepth(compiled)).
		Msg("transpiled circuit")

	counts, err := sim.Run(compiled, r.cfg.Shots)
	if err != nil {
		return VariantResult{}, err
	}

	metrics, err := ComputeMetrics(counts, compiled)
	if err != nil {
		return VariantResult{}, err
	}

	return VariantResult{
		Schedule:   schedule,
		Circuit:    circuit,
		Compiled:   compiled,
		Counts:     counts,
		Metrics:    metrics,
		PreCounts:  circuit.Tally(),
		PostCounts: compiled.Tally(),
	}, nil
}
