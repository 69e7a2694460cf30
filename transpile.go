package main

import (
	"fmt"
	"math"
)

// Backend describes the simulated target device: register size, native gate
// set, and which qubit pairs the coupling map allows two-qubit gates on.
type Backend struct {
	NumQubits  int
	BasisGates map[string]bool
	coupling   map[[2]int]bool
}

// NewLinearBackend returns a backend with a linear nearest-neighbor coupling
// map, the topology of the superconducting devices the noise profile mimics.
func NewLinearBackend(numQubits int) *Backend {
	b := &Backend{
		NumQubits: numQubits,
		BasisGates: map[string]bool{
			"H": true, "RX": true, "RZ": true,
			"CX": true, "CZ": true,
			"MEASURE": true, "BARRIER": true,
		},
		coupling: make(map[[2]int]bool),
	}
	for i := 0; i < numQubits-1; i++ {
		b.coupling[[2]int{i, i + 1}] = true
		b.coupling[[2]int{i + 1, i}] = true
	}
	return b
}

// Allows reports whether the coupling map permits a two-qubit gate on the
// given pair.
func (b *Backend) Allows(control, target int) bool {
	return b.coupling[[2]int{control, target}]
}

// validate checks a circuit against the backend's register size, basis gate
// set, and coupling constraints.
func (b *Backend) validate(c *Circuit) error {
	if c.NumQubits > b.NumQubits {
		return &CompilationError{
			Reason: fmt.Sprintf("circuit uses %d qubits, backend has %d", c.NumQubits, b.NumQubits),
		}
	}
	for _, g := range c.Gates {
		if !b.BasisGates[g.Type] {
			return &CompilationError{Reason: fmt.Sprintf("gate %s is not in the backend basis set", g.Type)}
		}
		if g.IsTwoQubit() && !b.Allows(g.Control, g.Target) {
			return &CompilationError{
				Reason: fmt.Sprintf("coupling map does not connect q[%d] and q[%d]", g.Control, g.Target),
			}
		}
	}
	return nil
}

// Transpile compiles a circuit for the backend at the given optimization
// level, best effort:
//
//	0: validate only, schedule left as written
//	1: + ASAP rescheduling to the shortest barrier-respecting timeline
//	2: + merging of back-to-back same-axis rotations on a qubit wire
//	3: + cancellation of adjacent self-inverse pairs (CX-CX, H-H)
//
// Barriers are respected at every level. The returned circuit is a new
// value; the input is never mutated.
func Transpile(c *Circuit, backend *Backend, level int) (*Circuit, error) {
	if level < 0 || level > 3 {
		return nil, &CompilationError{Reason: fmt.Sprintf("invalid optimization level %d", level)}
	}
	if err := backend.validate(c); err != nil {
		return nil, err
	}

	if level == 0 {
		out := NewCircuit(c.NumQubits)
		out.Gates = append(out.Gates, c.sortedGates()...)
		out.MaxSteps = c.MaxSteps
		return out, nil
	}

	gates := c.sortedGates()
	if level >= 2 {
		gates = optimizeGates(gates, c.NumQubits, level)
	}

	pruned := NewCircuit(c.NumQubits)
	for _, g := range gates {
		pruned.Gates = append(pruned.Gates, g)
		pruned.bumpSteps(g.Step)
	}
	return FromCircuit(pruned).ToCircuit(), nil
}

// CompiledDepth returns the critical path length of a compiled circuit.
func CompiledDepth(c *Circuit) int {
	return FromCircuit(c).Depth()
}

// optimizeGates runs peephole passes over a timeline-ordered gate slice until
// a fixpoint: rotation merging at level >= 2, self-inverse pair cancellation
// at level >= 3.
func optimizeGates(gates []Gate, numQubits, level int) []Gate {
	for {
		next, changed := optimizePass(gates, numQubits, level)
		gates = next
		if !changed {
			return gates
		}
	}
}

func optimizePass(gates []Gate, numQubits, level int) ([]Gate, bool) {
	removed := make([]bool, len(gates))
	changed := false

	// successorOnWire finds the next live gate after index i that touches
	// qubit q. Barriers fence every wire.
	successorOnWire := func(i, q int) int {
		for j := i + 1; j < len(gates); j++ {
			if removed[j] {
				continue
			}
			if gates[j].Type == "BARRIER" {
				return j
			}
			for _, gq := range gates[j].Qubits() {
				if gq == q {
					return j
				}
			}
		}
		return -1
	}

	for i := range gates {
		if removed[i] {
			continue
		}
		g := gates[i]

		switch g.Type {
		case "RX", "RZ":
			j := successorOnWire(i, g.Target)
			if j < 0 || removed[j] {
				continue
			}
			h := gates[j]
			if h.Type != g.Type || h.Target != g.Target {
				continue
			}
			sum := normalizeAngle(g.Params[0] + h.Params[0])
			removed[j] = true
			if math.Abs(sum) < 1e-12 {
				removed[i] = true
			} else {
				gates[i].Params = []float64{sum}
			}
			changed = true

		case "CX":
			if level < 3 {
				continue
			}
			jc := successorOnWire(i, g.Control)
			jt := successorOnWire(i, g.Target)
			if jc < 0 || jc != jt || removed[jc] {
				continue
			}
			h := gates[jc]
			if h.Type == "CX" && h.Control == g.Control && h.Target == g.Target {
				removed[i] = true
				removed[jc] = true
				changed = true
			}

		case "H":
			if level < 3 {
				continue
			}
			j := successorOnWire(i, g.Target)
			if j < 0 || removed[j] {
				continue
			}
			h := gates[j]
			if h.Type == "H" && h.Target == g.Target {
				removed[i] = true
				removed[j] = true
				changed = true
			}
		}
	}

	if !changed {
		return gates, false
	}
	out := make([]Gate, 0, len(gates))
	for i, g := range gates {
		if !removed[i] {
			out = append(out, g)
		}
	}
	return out, true
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(theta float64) float64 {
	for theta > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}
