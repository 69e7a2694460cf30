package main

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measuredCircuit() *Circuit {
	c := NewCircuit(2)
	c.AddGate("H", 0)
	c.AddGate("CX", 1, 0)
	c.AddMeasure(0)
	c.AddMeasure(1)
	return c
}

func TestComputeMetrics(t *testing.T) {
	counts := Counts{"00": 6144, "11": 2048}

	m, err := ComputeMetrics(counts, measuredCircuit())
	require.NoError(t, err)

	assert.InDelta(t, 0.75, m.Fidelity, 1e-12)
	assert.Equal(t, 3, m.Depth, "H -> CX -> measure critical path")

	wantEntropy := -(0.75*math.Log(0.75) + 0.25*math.Log(0.25))
	assert.InDelta(t, wantEntropy, m.Entropy, 1e-12)
}

func TestComputeMetricsSingleOutcome(t *testing.T) {
	m, err := ComputeMetrics(Counts{"00": 1024}, measuredCircuit())
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Fidelity)
	assert.InDelta(t, 0.0, m.Entropy, 1e-12)
}

func TestComputeMetricsDegenerateCounts(t *testing.T) {
	var dre *DegenerateResultError

	_, err := ComputeMetrics(Counts{}, measuredCircuit())
	assert.ErrorAs(t, err, &dre)

	_, err = ComputeMetrics(Counts{"00": 0}, measuredCircuit())
	assert.ErrorAs(t, err, &dre)
}

func TestFidelityStaysInUnitInterval(t *testing.T) {
	countSets := []Counts{
		{"0": 1},
		{"00": 1, "01": 1, "10": 1, "11": 1},
		{"000": 8191, "111": 1},
	}
	for _, counts := range countSets {
		m, err := ComputeMetrics(counts, measuredCircuit())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.Fidelity, 0.0)
		assert.LessOrEqual(t, m.Fidelity, 1.0)
	}
}

func TestMetricsAreStableAcrossRepeatedComputation(t *testing.T) {
	// A wide outcome map exercises summation order; identical counts must
	// reduce to bit-identical metrics every time.
	counts := make(Counts)
	for i := range 64 {
		counts[fmt.Sprintf("%06b", i)] = i + 1
	}

	first, err := ComputeMetrics(counts, measuredCircuit())
	require.NoError(t, err)
	for range 50 {
		m, err := ComputeMetrics(counts, measuredCircuit())
		require.NoError(t, err)
		require.Equal(t, first, m)
	}
}

func TestEntropyBounds(t *testing.T) {
	// Uniform over 2^n outcomes maximizes entropy at n*ln(2).
	uniform := Counts{"00": 256, "01": 256, "10": 256, "11": 256}
	m, err := ComputeMetrics(uniform, measuredCircuit())
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Log(2), m.Entropy, 1e-12)
}
