package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateKey identifies a gate up to ordering: kind, qubits, and bound angle.
type gateKey struct {
	Type    string
	Control int
	Target  int
	Angle   float64
}

// gateMultiset collects the circuit's gates (ignoring barriers, which are
// scheduling markers rather than operations) as a multiset.
func gateMultiset(c *Circuit) map[gateKey]int {
	ms := make(map[gateKey]int)
	for _, g := range c.Gates {
		if g.Type == "BARRIER" {
			continue
		}
		key := gateKey{Type: g.Type, Control: g.Control, Target: g.Target}
		if len(g.Params) > 0 {
			key.Angle = g.Params[0]
		}
		ms[key]++
	}
	return ms
}

func TestSchedulesAreLogicallyEquivalent(t *testing.T) {
	configs := []struct{ qubits, layers int }{
		{2, 1}, {3, 2}, {5, 1}, {10, 2}, {4, 3},
	}
	for _, tc := range configs {
		t.Run(fmt.Sprintf("%dq_%dl", tc.qubits, tc.layers), func(t *testing.T) {
			params := RandomParameters(ParamCount(tc.qubits, tc.layers), 42)

			std, err := BuildStandard(tc.qubits, tc.layers, params)
			require.NoError(t, err)
			egs, err := BuildEGS(tc.qubits, tc.layers, params)
			require.NoError(t, err)

			assert.Equal(t, gateMultiset(std), gateMultiset(egs),
				"variants must contain the same gates bound to the same angles")
		})
	}
}

func TestParameterVectorDeterminism(t *testing.T) {
	a := RandomParameters(38, 42)
	b := RandomParameters(38, 42)
	assert.Equal(t, a, b, "same seed must yield a byte-identical vector")

	c := RandomParameters(38, 43)
	assert.NotEqual(t, a, c, "different seed should yield a different vector")

	for _, v := range a {
		assert.GreaterOrEqual(t, v, -3.1416)
		assert.Less(t, v, 3.1416)
	}
}

func TestParamCount(t *testing.T) {
	tests := []struct {
		qubits, layers, want int
	}{
		{10, 2, 38},
		{2, 1, 3},
		{1, 3, 3},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := ParamCount(tt.qubits, tt.layers); got != tt.want {
			t.Errorf("ParamCount(%d, %d) = %d, want %d", tt.qubits, tt.layers, got, tt.want)
		}
	}
}

func TestInsufficientParameters(t *testing.T) {
	params := RandomParameters(5, 42) // needs 38 for 10q x 2l

	for _, schedule := range []Schedule{ScheduleInterleaved, ScheduleLayeredDeferred} {
		_, err := BuildAnsatz(10, 2, params, schedule)
		require.Error(t, err)

		var ipe *InsufficientParametersError
		require.ErrorAs(t, err, &ipe)
		assert.Equal(t, 5, ipe.Got)
		assert.Equal(t, 38, ipe.Want)
	}
}

func TestOversizedParameterVectorRejected(t *testing.T) {
	params := RandomParameters(ParamCount(3, 1)+1, 42)

	for _, schedule := range []Schedule{ScheduleInterleaved, ScheduleLayeredDeferred} {
		_, err := BuildAnsatz(3, 1, params, schedule)
		require.Error(t, err)

		var ipe *InsufficientParametersError
		require.ErrorAs(t, err, &ipe)
		assert.Equal(t, 6, ipe.Got)
		assert.Equal(t, 5, ipe.Want)
	}
}

func TestEntanglerMultiplicityMatchesAcrossSchedules(t *testing.T) {
	const qubits, layers = 5, 2
	params := RandomParameters(ParamCount(qubits, layers), 42)

	std, err := BuildStandard(qubits, layers, params)
	require.NoError(t, err)
	egs, err := BuildEGS(qubits, layers, params)
	require.NoError(t, err)

	// Two CX per coupling per layer in both variants.
	pairTally := func(c *Circuit) map[[2]int]int {
		out := make(map[[2]int]int)
		for _, g := range c.Gates {
			if g.Type == "CX" {
				out[[2]int{g.Control, g.Target}]++
			}
		}
		return out
	}
	want := make(map[[2]int]int)
	for i := range qubits - 1 {
		want[[2]int{i, i + 1}] = 2 * layers
	}
	assert.Equal(t, want, pairTally(std))
	assert.Equal(t, want, pairTally(egs))
}

func TestSingleQubitDegeneratesToRotationsOnly(t *testing.T) {
	params := RandomParameters(ParamCount(1, 2), 42)

	for _, schedule := range []Schedule{ScheduleInterleaved, ScheduleLayeredDeferred} {
		c, err := BuildAnsatz(1, 2, params, schedule)
		require.NoError(t, err)
		assert.Zero(t, c.CountGates("CX"), "single qubit emits no entanglers")
		assert.Zero(t, c.CountGates("RZ"), "no pairwise angles with one qubit")
		assert.Equal(t, 2, c.CountGates("RX"))
	}
}

func TestZeroLayersIsPrepAndMeasureOnly(t *testing.T) {
	for _, schedule := range []Schedule{ScheduleInterleaved, ScheduleLayeredDeferred} {
		c, err := BuildAnsatz(4, 0, nil, schedule)
		require.NoError(t, err)
		assert.Equal(t, 4, c.CountGates("H"))
		assert.Equal(t, 4, c.CountGates("MEASURE"))
		assert.Zero(t, c.CountGates("CX"))
		assert.Zero(t, c.CountGates("RX"))
		assert.Zero(t, c.CountGates("RZ"))
	}
}

func TestStandardOrderInterleavesEntanglers(t *testing.T) {
	params := RandomParameters(ParamCount(3, 1), 42)
	c, err := BuildStandard(3, 1, params)
	require.NoError(t, err)

	// After the 3 H gates: CX, RZ, CX per pair, then the RX row.
	types := make([]string, 0, len(c.Gates))
	for _, g := range c.Gates {
		if g.Type != "BARRIER" {
			types = append(types, g.Type)
		}
	}
	want := []string{
		"H", "H", "H",
		"CX", "RZ", "CX",
		"CX", "RZ", "CX",
		"RX", "RX", "RX",
		"MEASURE", "MEASURE", "MEASURE",
	}
	assert.Equal(t, want, types)
}

func TestEGSOrderDefersEntanglers(t *testing.T) {
	params := RandomParameters(ParamCount(3, 2), 42)
	c, err := BuildEGS(3, 2, params)
	require.NoError(t, err)

	lastRotation, firstEntangler := -1, -1
	for i, g := range c.Gates {
		switch g.Type {
		case "RZ", "RX":
			lastRotation = i
		case "CX":
			if firstEntangler < 0 {
				firstEntangler = i
			}
		}
	}
	require.GreaterOrEqual(t, firstEntangler, 0)
	assert.Greater(t, firstEntangler, lastRotation,
		"every entangler must come after every rotation")
	assert.Greater(t, c.CountGates("BARRIER"), 0, "stages are barrier-delimited")
}

func TestParameterMappingMatchesAcrossSchedules(t *testing.T) {
	params := RandomParameters(ParamCount(4, 2), 42)

	std, err := BuildStandard(4, 2, params)
	require.NoError(t, err)
	egs, err := BuildEGS(4, 2, params)
	require.NoError(t, err)

	// The Nth RZ (by emission order) must carry the same angle and target in
	// both variants, and likewise for RX.
	collect := func(c *Circuit, gateType string) [][2]float64 {
		var out [][2]float64
		for _, g := range c.Gates {
			if g.Type == gateType {
				out = append(out, [2]float64{float64(g.Target), g.Params[0]})
			}
		}
		return out
	}
	assert.Equal(t, collect(std, "RZ"), collect(egs, "RZ"))
	assert.Equal(t, collect(std, "RX"), collect(egs, "RX"))
}
