package main

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoiseModelRegistersGateClasses(t *testing.T) {
	nm := BuildNoiseModel(DefaultNoiseProfile())

	oneQ := nm.ChannelFor("H")
	require.NotNil(t, oneQ)
	for _, gt := range []string{"RX", "RZ", "X", "Z"} {
		assert.Same(t, oneQ, nm.ChannelFor(gt), "one channel per gate class")
	}

	twoQ := nm.ChannelFor("CX")
	require.NotNil(t, twoQ)
	assert.Same(t, twoQ, nm.ChannelFor("CZ"))
	assert.NotSame(t, oneQ, twoQ)

	assert.Nil(t, nm.ChannelFor("MEASURE"))
	assert.Nil(t, nm.ChannelFor("BARRIER"))
}

func TestThermalRelaxationProbabilities(t *testing.T) {
	p := DefaultNoiseProfile()
	ch, ok := ThermalRelaxationChannel(p.T1, p.T2, p.Time1Q).(*relaxationChannel)
	require.True(t, ok)

	wantReset := 1 - math.Exp(-p.Time1Q/p.T1)
	assert.InDelta(t, wantReset, ch.PReset, 1e-15)

	phiRate := 1/p.T2 - 1/(2*p.T1)
	wantDephase := (1 - math.Exp(-p.Time1Q*phiRate)) / 2
	assert.InDelta(t, wantDephase, ch.PDephase, 1e-15)
	assert.Greater(t, ch.PDephase, 0.0, "T2 < 2*T1 implies pure dephasing")
}

func TestCompositionOrderIsRelaxationThenDepolarizing(t *testing.T) {
	nm := BuildNoiseModel(DefaultNoiseProfile())

	oneQ, ok := nm.ChannelFor("H").(*composedChannel)
	require.True(t, ok)
	_, ok = oneQ.First.(*relaxationChannel)
	assert.True(t, ok, "relaxation applies first")
	_, ok = oneQ.Second.(*depolarizingChannel)
	assert.True(t, ok, "operational error applies second")

	twoQ, ok := nm.ChannelFor("CX").(*composedChannel)
	require.True(t, ok)
	tensor, ok := twoQ.First.(*tensorChannel)
	require.True(t, ok, "two-qubit relaxation is a tensor of per-qubit relaxation")
	assert.Len(t, tensor.factors, 2)
	assert.Equal(t, 2, twoQ.NumQubits())
}

func TestNoiseModelConstructionIsPure(t *testing.T) {
	profile := DefaultNoiseProfile()
	a := BuildNoiseModel(profile)
	b := BuildNoiseModel(profile)

	// Equivalent channels produce identical event streams from identical
	// random sources.
	rngA := rand.New(rand.NewPCG(7, 7))
	rngB := rand.New(rand.NewPCG(7, 7))
	chA := a.ChannelFor("CX")
	chB := b.ChannelFor("CX")
	for range 500 {
		assert.Equal(t, chA.Sample(rngA), chB.Sample(rngB))
	}
}

func TestDepolarizingChannelZeroRateIsClean(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ch := DepolarizingChannel(0, 2)
	for range 200 {
		assert.Empty(t, ch.Sample(rng))
	}
}

func TestDepolarizingChannelSamplesValidPaulis(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	ch := DepolarizingChannel(1.0, 2)
	sawError := false
	for range 500 {
		ops := ch.Sample(rng)
		if len(ops) > 0 {
			sawError = true
		}
		require.LessOrEqual(t, len(ops), 2)
		for _, op := range ops {
			assert.Contains(t, []string{"X", "Y", "Z"}, op.Kind)
			assert.Less(t, op.Slot, 2)
		}
	}
	assert.True(t, sawError)
}

func TestRelaxationResetPreemptsDephasing(t *testing.T) {
	// With PReset forced to 1, every sample is exactly one reset.
	ch := &relaxationChannel{PReset: 1, PDephase: 1}
	rng := rand.New(rand.NewPCG(5, 6))
	for range 50 {
		ops := ch.Sample(rng)
		require.Len(t, ops, 1)
		assert.Equal(t, "RESET", ops[0].Kind)
	}
}
