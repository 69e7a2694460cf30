package main

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Metrics are the scalar comparison values reduced from one execution.
//
// Fidelity is the dominant-outcome frequency divided by the shot count: a
// proxy for how concentrated the output distribution is on the expected
// dominant bitstring. It stands in for true process fidelity without needing
// the ideal state, and is a single-sample point estimate with no confidence
// interval. Changing this metric would break comparability with prior
// results, so it is kept as is.
type Metrics struct {
	Fidelity float64
	Depth    int
	Entropy  float64 // Shannon entropy of the outcome distribution, nats
}

// ComputeMetrics reduces raw outcome counts and the compiled circuit to the
// comparison metrics. Depth is read from the compiled circuit's critical
// path.
func ComputeMetrics(counts Counts, compiled *Circuit) (Metrics, error) {
	total := counts.TotalShots()
	if len(counts) == 0 || total == 0 {
		return Metrics{}, &DegenerateResultError{Outcomes: len(counts), Shots: total}
	}

	// Sum in a fixed outcome order so the entropy is bit-identical for
	// identical counts.
	outcomes := make([]string, 0, len(counts))
	for outcome := range counts {
		outcomes = append(outcomes, outcome)
	}
	slices.Sort(outcomes)

	maxCount := 0
	probs := make([]float64, 0, len(outcomes))
	for _, outcome := range outcomes {
		n := counts[outcome]
		if n > maxCount {
			maxCount = n
		}
		probs = append(probs, float64(n)/float64(total))
	}

	return Metrics{
		Fidelity: float64(maxCount) / float64(total),
		Depth:    CompiledDepth(compiled),
		Entropy:  stat.Entropy(probs),
	}, nil
}
