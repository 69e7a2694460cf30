package main

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/rs/zerolog"
)

type Complex = complex128

// StateVector holds the amplitudes of an n-qubit register. Qubit q maps to
// bit q of the basis-state index.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// ApplyGate dispatches a gate onto the state.
func (s *StateVector) ApplyGate(gateType string, target, control int, params []float64) {
	theta := 0.0
	if len(params) > 0 {
		theta = params[0]
	}
	switch gateType {
	case "H":
		s.applyH(target)
	case "X":
		s.applyX(target)
	case "Y":
		s.applyY(target)
	case "Z":
		s.applyZ(target)
	case "RX":
		s.applyRX(target, theta)
	case "RY":
		s.applyRY(target, theta)
	case "RZ":
		s.applyRZ(target, theta)
	case "CX":
		if control >= 0 {
			s.applyCX(control, target)
		}
	case "CZ":
		if control >= 0 {
			s.applyCZ(control, target)
		}
	case "RESET":
		s.applyReset(target)
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = 1i*s.Amplitudes[j], -1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] + js*s.Amplitudes[j]
			newAmps[j] = js*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRY(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	s_ := complex(math.Sin(theta/2), 0)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] - s_*s.Amplitudes[j]
			newAmps[j] = s_*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRZ(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyReset(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q

	prob0 := 0.0
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			prob0 += real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		}
	}

	norm := 1.0
	if prob0 > 0 {
		norm = math.Sqrt(prob0)
	}

	for i := 0; i < n; i++ {
		if i&bit == 0 {
			s.Amplitudes[i] = s.Amplitudes[i] / complex(norm, 0)
		} else {
			s.Amplitudes[i] = 0
		}
	}
}

// QubitProbability is the marginal outcome distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// GetQubitProbabilities returns each qubit's marginal probabilities.
func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, amp := range s.Amplitudes {
		prob := real(amp * cmplx.Conj(amp))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}

// sampleOutcome draws one basis-state index from the state's distribution.
func (s *StateVector) sampleOutcome(rng *rand.Rand) int {
	r := rng.Float64()
	cum := 0.0
	for i, amp := range s.Amplitudes {
		cum += real(amp * cmplx.Conj(amp))
		if r < cum {
			return i
		}
	}
	return len(s.Amplitudes) - 1
}

// Counts maps measured bitstring outcomes to observed frequencies.
type Counts map[string]int

// TotalShots sums the recorded frequencies.
func (c Counts) TotalShots() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// maxStateQubits caps the statevector size; beyond this the register does
// not fit in memory at 16 bytes per amplitude.
const maxStateQubits = 24

// Simulator is the noisy execution backend. Each shot runs one stochastic
// trajectory: gates are applied in timeline order, and after every gate the
// channel registered for its type samples error events onto the qubits the
// gate touched. The sampling RNG is re-seeded per Run, so a fixed seed gives
// reproducible counts.
type Simulator struct {
	noise *NoiseModel
	seed  uint64
	log   zerolog.Logger
}

// NewSimulator builds a backend with the given noise model. A nil model
// yields ideal execution.
func NewSimulator(noise *NoiseModel, seed uint64, log zerolog.Logger) *Simulator {
	return &Simulator{
		noise: noise,
		seed:  seed,
		log:   log.With().Str("component", "simulator").Logger(),
	}
}

// Run executes the circuit for the given shot count and returns outcome
// frequencies. Bitstrings are rendered most-significant-qubit first, one
// character per classical bit.
func (s *Simulator) Run(c *Circuit, shots int) (Counts, error) {
	if shots <= 0 {
		return nil, &ExecutionError{Reason: "shot count must be positive"}
	}
	if c.NumQubits > maxStateQubits {
		return nil, &ExecutionError{Reason: "register too large for statevector simulation"}
	}
	numCbits := c.NumCbits()
	if numCbits == 0 {
		return nil, &ExecutionError{Reason: "circuit has no measurements"}
	}

	gates := c.sortedGates()
	s.log.Debug().
		Int("qubits", c.NumQubits).
		Int("gates", len(gates)).
		Int("shots", shots).
		Msg("executing circuit")

	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	counts := make(Counts)

	for range shots {
		state := NewStateVector(c.NumQubits)
		// Qubit index -> classical bit, filled as measurements occur.
		measured := make([]int, c.NumQubits)
		for q := range measured {
			measured[q] = -1
		}

		for _, g := range gates {
			switch g.Type {
			case "BARRIER":
				continue
			case "MEASURE":
				measured[g.Target] = g.Cbit
				continue
			}
			state.ApplyGate(g.Type, g.Target, g.Control, g.Params)
			s.applyNoise(state, g, rng)
		}

		outcome := state.sampleOutcome(rng)
		counts[formatOutcome(outcome, measured, numCbits)]++
	}

	return counts, nil
}

// applyNoise samples the error channel registered for the gate's type and
// applies the drawn events to the qubits the gate touched.
func (s *Simulator) applyNoise(state *StateVector, g Gate, rng *rand.Rand) {
	ch := s.noise.ChannelFor(g.Type)
	if ch == nil {
		return
	}
	slots := g.Qubits()
	for _, op := range ch.Sample(rng) {
		if op.Slot >= len(slots) {
			continue
		}
		state.ApplyGate(op.Kind, slots[op.Slot], -1, nil)
	}
}

// formatOutcome renders a sampled basis-state index as a classical
// bitstring, most-significant bit first.
func formatOutcome(outcome int, measured []int, numCbits int) string {
	bits := make([]byte, numCbits)
	for i := range bits {
		bits[i] = '0'
	}
	for q, cbit := range measured {
		if cbit < 0 {
			continue
		}
		if outcome&(1<<q) != 0 {
			bits[numCbits-1-cbit] = '1'
		}
	}
	return string(bits)
}
