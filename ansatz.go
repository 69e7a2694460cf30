package main

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Schedule selects the emission order for the ansatz instruction set. Both
// schedules produce the same multiset of gates bound to the same angles; they
// differ only in how the instructions are grouped on the timeline.
type Schedule int

const (
	// ScheduleInterleaved is the standard VQA ordering: each entangling pair
	// is emitted as a tight [CX, RZ, CX] unit, with the mixing rotations
	// following inside the same layer.
	ScheduleInterleaved Schedule = iota

	// ScheduleLayeredDeferred is the EGS ordering: rotations are batched into
	// barrier-delimited stages per layer, and every entangling operation is
	// deferred to a single consolidated stage at the end of the circuit.
	ScheduleLayeredDeferred
)

func (s Schedule) String() string {
	switch s {
	case ScheduleInterleaved:
		return "standard"
	case ScheduleLayeredDeferred:
		return "egs"
	}
	return "unknown"
}

// ParamCount returns the number of rotation angles the ansatz consumes:
// one per nearest-neighbor pair plus one per qubit, per layer.
func ParamCount(nQubits, nLayers int) int {
	return nLayers * (nQubits + nQubits - 1)
}

// RandomParameters generates a reproducible parameter vector of rotation
// angles drawn uniformly from [-pi, pi). The same seed always yields the
// same vector.
func RandomParameters(n int, seed uint64) []float64 {
	u := distuv.Uniform{
		Min: -math.Pi,
		Max: math.Pi,
		Src: rand.NewPCG(seed, seed),
	}
	params := make([]float64, n)
	for i := range params {
		params[i] = u.Rand()
	}
	return params
}

// BuildAnsatz constructs the variational ansatz over nQubits and nLayers,
// binding the given parameter vector in a fixed per-layer order: nQubits-1
// pairwise angles first, then nQubits mixing angles. The vector length must
// equal ParamCount(nQubits, nLayers) exactly. The schedule determines
// only the emission order of that instruction set, so any two schedules given
// the same parameters describe the same pre-noise computation.
func BuildAnsatz(nQubits, nLayers int, params []float64, schedule Schedule) (*Circuit, error) {
	want := ParamCount(nQubits, nLayers)
	if len(params) != want {
		return nil, &InsufficientParametersError{
			Got:    len(params),
			Want:   want,
			Qubits: nQubits,
			Layers: nLayers,
		}
	}

	c := NewCircuit(nQubits)
	for i := range nQubits {
		c.AddGate("H", i)
	}

	switch schedule {
	case ScheduleInterleaved:
		idx := 0
		for range nLayers {
			// Entanglement mixed with rotations.
			for i := range nQubits - 1 {
				c.AddGate("CX", i+1, i)
				c.AddParameterizedGate("RZ", i+1, []float64{params[idx]})
				c.AddGate("CX", i+1, i)
				idx++
			}
			for i := range nQubits {
				c.AddParameterizedGate("RX", i, []float64{params[idx]})
				idx++
			}
		}

	case ScheduleLayeredDeferred:
		c.AddBarrier()
		idx := 0
		for range nLayers {
			// Pairwise angles as one batch, no entanglers interleaved.
			for i := range nQubits - 1 {
				c.AddParameterizedGate("RZ", i+1, []float64{params[idx]})
				idx++
			}
			c.AddBarrier()
			for i := range nQubits {
				c.AddParameterizedGate("RX", i, []float64{params[idx]})
				idx++
			}
			c.AddBarrier()
		}
		// Deferred entanglement at the end of the coherence window: the
		// same two CX per pair per layer as the interleaved ordering,
		// batched into one consolidated stage.
		for range nLayers {
			for i := range nQubits - 1 {
				c.AddGate("CX", i+1, i)
				c.AddGate("CX", i+1, i)
			}
		}
	}

	c.AddBarrier()
	for i := range nQubits {
		c.AddMeasure(i)
	}
	return c, nil
}

// BuildStandard constructs the interleaved variant of the ansatz.
func BuildStandard(nQubits, nLayers int, params []float64) (*Circuit, error) {
	return BuildAnsatz(nQubits, nLayers, params, ScheduleInterleaved)
}

// BuildEGS constructs the layered, entanglement-deferred variant.
func BuildEGS(nQubits, nLayers int, params []float64) (*Circuit, error) {
	return BuildAnsatz(nQubits, nLayers, params, ScheduleLayeredDeferred)
}
