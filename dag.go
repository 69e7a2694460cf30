package main

// dagNode is one gate of a circuit viewed as a node in a dependency graph.
// Dependencies are ordering constraints: a gate cannot execute before gates
// that touch the same qubits earlier in the timeline, and barriers fence the
// whole register.
type dagNode struct {
	Gate Gate
	Deps []int // indices into CircuitDAG.Nodes
}

// CircuitDAG represents a circuit as a DAG of gate dependencies. The
// scheduler and the depth metric both derive from it.
type CircuitDAG struct {
	Nodes     []dagNode
	NumQubits int
}

// FromCircuit builds the dependency DAG for a circuit. Gates are visited in
// timeline order; each gate depends on the previous gate on every qubit it
// touches. A barrier depends on the current frontier of all qubits and
// becomes the frontier for all of them.
func FromCircuit(c *Circuit) *CircuitDAG {
	dag := &CircuitDAG{NumQubits: c.NumQubits}
	lastOnQubit := make([]int, c.NumQubits)
	for q := range lastOnQubit {
		lastOnQubit[q] = -1
	}

	for _, gate := range c.sortedGates() {
		id := len(dag.Nodes)
		node := dagNode{Gate: gate}

		qubits := gate.Qubits()
		if gate.Type == "BARRIER" {
			qubits = make([]int, c.NumQubits)
			for q := range qubits {
				qubits[q] = q
			}
		}

		seen := make(map[int]bool)
		for _, q := range qubits {
			if prev := lastOnQubit[q]; prev >= 0 && !seen[prev] {
				node.Deps = append(node.Deps, prev)
				seen[prev] = true
			}
		}
		dag.Nodes = append(dag.Nodes, node)
		for _, q := range qubits {
			lastOnQubit[q] = id
		}
	}

	return dag
}

// Levels returns the earliest (ASAP) timeline level of every node. Nodes are
// already stored in a topological order, so a single forward pass suffices.
func (dag *CircuitDAG) Levels() []int {
	levels := make([]int, len(dag.Nodes))
	for i, node := range dag.Nodes {
		level := 0
		for _, dep := range node.Deps {
			if levels[dep]+1 > level {
				level = levels[dep] + 1
			}
		}
		levels[i] = level
	}
	return levels
}

// Depth returns the critical path length of the circuit: the longest
// dependency chain counting gates and measurements, with barriers excluded
// from the count (they constrain ordering but take no hardware time).
func (dag *CircuitDAG) Depth() int {
	depths := make([]int, len(dag.Nodes))
	maxDepth := 0
	for i, node := range dag.Nodes {
		d := 0
		for _, dep := range node.Deps {
			if depths[dep] > d {
				d = depths[dep]
			}
		}
		if node.Gate.Type != "BARRIER" {
			d++
		}
		depths[i] = d
		if d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// ToCircuit rebuilds a circuit from the DAG with every gate placed at its
// ASAP level, compacting the timeline to the shortest schedule the
// dependencies allow.
func (dag *CircuitDAG) ToCircuit() *Circuit {
	levels := dag.Levels()
	c := NewCircuit(dag.NumQubits)
	for i, node := range dag.Nodes {
		gate := node.Gate
		gate.Step = levels[i]
		c.Gates = append(c.Gates, gate)
		c.bumpSteps(gate.Step)
	}
	return c
}
