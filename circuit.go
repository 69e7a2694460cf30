package main

import (
	"fmt"
	"math"
	"strings"
)

// Gate represents a single instruction placed on the circuit timeline.
type Gate struct {
	Type    string    // "H", "RX", "RZ", "CX", "CZ", "MEASURE", "BARRIER"
	Target  int       // target qubit (-1 for barriers, which span all qubits)
	Control int       // control qubit for two-qubit gates, -1 otherwise
	Step    int       // position in circuit timeline
	Params  []float64 // rotation angles for parameterized gates
	Cbit    int       // classical bit receiving a measurement, -1 otherwise
}

// IsTwoQubit reports whether the gate acts on a control/target pair.
func (g Gate) IsTwoQubit() bool { return g.Control >= 0 }

// Qubits returns the qubit indices the gate touches. Barriers return nil.
func (g Gate) Qubits() []int {
	if g.Type == "BARRIER" {
		return nil
	}
	if g.Control >= 0 {
		return []int{g.Control, g.Target}
	}
	return []int{g.Target}
}

// Circuit holds an ordered gate sequence over a fixed qubit register.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// NewCircuit returns an empty circuit over the given register size.
func NewCircuit(numQubits int) *Circuit {
	return &Circuit{NumQubits: numQubits}
}

func (c *Circuit) bumpSteps(step int) {
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// nextStep returns the step index after everything appended so far.
func (c *Circuit) nextStep() int { return c.MaxSteps }

// AddGate appends a plain gate at the end of the timeline.
func (c *Circuit) AddGate(gateType string, target int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	step := c.nextStep()
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
		Cbit:    -1,
	})
	c.bumpSteps(step)
}

// AddParameterizedGate appends a rotation gate bound to the given angles.
func (c *Circuit) AddParameterizedGate(gateType string, target int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	step := c.nextStep()
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
		Params:  params,
		Cbit:    -1,
	})
	c.bumpSteps(step)
}

// AddMeasure appends a measurement of the qubit into the like-indexed
// classical bit.
func (c *Circuit) AddMeasure(target int) {
	step := c.nextStep()
	c.Gates = append(c.Gates, Gate{
		Type:    "MEASURE",
		Target:  target,
		Control: -1,
		Step:    step,
		Cbit:    target,
	})
	c.bumpSteps(step)
}

// AddBarrier appends an ordering fence spanning all qubits.
func (c *Circuit) AddBarrier() {
	step := c.nextStep()
	c.Gates = append(c.Gates, Gate{
		Type:    "BARRIER",
		Target:  -1,
		Control: -1,
		Step:    step,
		Cbit:    -1,
	})
	c.bumpSteps(step)
}

// NumCbits returns the number of classical bits needed, derived from
// measurements. Returns 0 when no measurements exist.
func (c *Circuit) NumCbits() int {
	maxCbit := -1
	for _, g := range c.Gates {
		if g.Type == "MEASURE" && g.Cbit > maxCbit {
			maxCbit = g.Cbit
		}
	}
	return maxCbit + 1
}

// CountGates returns how many gates of the given type the circuit contains.
func (c *Circuit) CountGates(gateType string) int {
	n := 0
	for _, g := range c.Gates {
		if g.Type == gateType {
			n++
		}
	}
	return n
}

// GateCounts summarizes a circuit by operation class.
type GateCounts struct {
	OneQubit int
	TwoQubit int
	Measure  int
	Barrier  int
}

// Tally counts the circuit's gates by class.
func (c *Circuit) Tally() GateCounts {
	var gc GateCounts
	for _, g := range c.Gates {
		switch {
		case g.Type == "BARRIER":
			gc.Barrier++
		case g.Type == "MEASURE":
			gc.Measure++
		case g.IsTwoQubit():
			gc.TwoQubit++
		default:
			gc.OneQubit++
		}
	}
	return gc
}

// sortedGates returns the gates ordered by step, preserving insertion order
// within a step.
func (c *Circuit) sortedGates() []Gate {
	gates := make([]Gate, len(c.Gates))
	copy(gates, c.Gates)
	for i := 1; i < len(gates); i++ {
		for j := i; j > 0 && gates[j-1].Step > gates[j].Step; j-- {
			gates[j-1], gates[j] = gates[j], gates[j-1]
		}
	}
	return gates
}

// ToQASM generates QASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	numQubits := max(c.NumQubits, 1)
	numCbits := max(c.NumCbits(), 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	for _, gate := range c.sortedGates() {
		switch {
		case gate.Type == "BARRIER":
			qubits := make([]string, numQubits)
			for q := range numQubits {
				qubits[q] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(qubits, ", "))
		case gate.Type == "MEASURE":
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", gate.Target, gate.Cbit)
		case gate.Control >= 0:
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", strings.ToLower(gate.Type), gate.Control, gate.Target)
		case len(gate.Params) > 0:
			fmt.Fprintf(&sb, "%s(%s) q[%d];\n", strings.ToLower(gate.Type), formatParam(gate.Params[0]), gate.Target)
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", strings.ToLower(gate.Type), gate.Target)
		}
	}

	return sb.String()
}

// formatParam formats a rotation angle, using pi notation when possible.
func formatParam(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{2 * math.Pi / 3, "2*pi/3"},
	}

	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}

	return fmt.Sprintf("%g", val)
}
