package main

import (
	"math"
	"math/rand/v2"
)

// NoiseProfile holds the device constants the noise model is built from:
// coherence times, per-class gate durations, and per-class depolarizing
// rates. Constructed once per benchmark run and immutable afterwards.
type NoiseProfile struct {
	T1 float64 // energy relaxation time, seconds
	T2 float64 // phase coherence time, seconds

	Time1Q float64 // single-qubit gate duration, seconds
	Time2Q float64 // two-qubit gate duration, seconds

	Depol1Q float64 // single-qubit depolarizing parameter
	Depol2Q float64 // two-qubit depolarizing parameter
}

// DefaultNoiseProfile returns constants mimicking a superconducting
// processor of the IBM Eagle class.
func DefaultNoiseProfile() NoiseProfile {
	return NoiseProfile{
		T1:      120e-6,
		T2:      80e-6,
		Time1Q:  60e-9,
		Time2Q:  300e-9,
		Depol1Q: 0.001,
		Depol2Q: 0.01,
	}
}

// noiseOp is a single sampled error event: a Pauli flip or a reset applied
// to one of the qubits a gate touches. Slot indexes into the gate's qubit
// list (0 = control for two-qubit gates, 0 = target otherwise).
type noiseOp struct {
	Kind string // "X", "Y", "Z", "RESET"
	Slot int
}

// Channel is a stochastic error channel attached to a gate class. Sample
// draws the error events for one application of the channel; an empty
// result means the gate executed cleanly this trajectory.
type Channel interface {
	Sample(rng *rand.Rand) []noiseOp
	NumQubits() int
}

// relaxationChannel models duration-dependent thermal relaxation of a single
// qubit: reset-to-ground with probability 1-exp(-t/T1), and a phase flip
// with probability (1-exp(-t/Tphi))/2 on the surviving population, where
// 1/Tphi = 1/T2 - 1/(2*T1) is the pure dephasing rate. Requires T2 <= 2*T1.
type relaxationChannel struct {
	PReset   float64
	PDephase float64
	Slot     int
}

// ThermalRelaxationChannel builds the relaxation channel for one qubit busy
// for the given duration.
func ThermalRelaxationChannel(t1, t2, duration float64) Channel {
	pReset := 1 - math.Exp(-duration/t1)
	phiRate := 1/t2 - 1/(2*t1)
	pDephase := 0.0
	if phiRate > 0 {
		pDephase = (1 - math.Exp(-duration*phiRate)) / 2
	}
	return &relaxationChannel{PReset: pReset, PDephase: pDephase}
}

func (ch *relaxationChannel) NumQubits() int { return 1 }

func (ch *relaxationChannel) Sample(rng *rand.Rand) []noiseOp {
	var ops []noiseOp
	if rng.Float64() < ch.PReset {
		ops = append(ops, noiseOp{Kind: "RESET", Slot: ch.Slot})
		return ops
	}
	if rng.Float64() < ch.PDephase {
		ops = append(ops, noiseOp{Kind: "Z", Slot: ch.Slot})
	}
	return ops
}

// tensorChannel is the independent combination of per-qubit channels, one
// per slot of a multi-qubit gate.
type tensorChannel struct {
	factors []Channel
}

// Tensor combines single-qubit channels into one channel acting
// independently on consecutive slots.
func Tensor(factors ...Channel) Channel {
	slotted := make([]Channel, len(factors))
	for i, f := range factors {
		if r, ok := f.(*relaxationChannel); ok {
			c := *r
			c.Slot = i
			slotted[i] = &c
		} else {
			slotted[i] = f
		}
	}
	return &tensorChannel{factors: slotted}
}

func (ch *tensorChannel) NumQubits() int { return len(ch.factors) }

func (ch *tensorChannel) Sample(rng *rand.Rand) []noiseOp {
	var ops []noiseOp
	for _, f := range ch.factors {
		ops = append(ops, f.Sample(rng)...)
	}
	return ops
}

// depolarizingChannel applies a uniformly random non-identity Pauli with the
// probability implied by the depolarizing parameter: each single-qubit Pauli
// carries weight p/4; each of the 15 two-qubit Paulis carries weight p/16.
type depolarizingChannel struct {
	P      float64
	Qubits int
}

var pauliKinds = []string{"X", "Y", "Z"}

// DepolarizingChannel builds a duration-independent operational error of the
// given depolarizing parameter over 1 or 2 qubits.
func DepolarizingChannel(p float64, qubits int) Channel {
	return &depolarizingChannel{P: p, Qubits: qubits}
}

func (ch *depolarizingChannel) NumQubits() int { return ch.Qubits }

func (ch *depolarizingChannel) Sample(rng *rand.Rand) []noiseOp {
	if ch.Qubits == 1 {
		if rng.Float64() >= 3*ch.P/4 {
			return nil
		}
		return []noiseOp{{Kind: pauliKinds[rng.IntN(3)], Slot: 0}}
	}

	if rng.Float64() >= 15*ch.P/16 {
		return nil
	}
	// Uniform over the 15 non-identity two-qubit Paulis: draw from the 16
	// pairs of {I,X,Y,Z} x {I,X,Y,Z} and reject II.
	for {
		a, b := rng.IntN(4), rng.IntN(4)
		if a == 0 && b == 0 {
			continue
		}
		var ops []noiseOp
		if a > 0 {
			ops = append(ops, noiseOp{Kind: pauliKinds[a-1], Slot: 0})
		}
		if b > 0 {
			ops = append(ops, noiseOp{Kind: pauliKinds[b-1], Slot: 1})
		}
		return ops
	}
}

// composedChannel applies First then Second. Composition order is
// significant: the reference behavior composes thermal relaxation first and
// the operational error second, and that order is preserved here.
type composedChannel struct {
	First  Channel
	Second Channel
}

// Compose chains two channels applied in sequence.
func Compose(first, second Channel) Channel {
	return &composedChannel{First: first, Second: second}
}

func (ch *composedChannel) NumQubits() int {
	return max(ch.First.NumQubits(), ch.Second.NumQubits())
}

func (ch *composedChannel) Sample(rng *rand.Rand) []noiseOp {
	ops := ch.First.Sample(rng)
	return append(ops, ch.Second.Sample(rng)...)
}

// NoiseModel maps gate types to the error channel applied after every
// occurrence of that gate, uniformly across all qubits.
type NoiseModel struct {
	channels map[string]Channel
}

// ChannelFor returns the error channel registered for a gate type, or nil.
func (nm *NoiseModel) ChannelFor(gateType string) Channel {
	if nm == nil {
		return nil
	}
	return nm.channels[gateType]
}

// AddAllQubitError registers a channel for every gate type in the class.
func (nm *NoiseModel) AddAllQubitError(ch Channel, gateTypes []string) {
	for _, gt := range gateTypes {
		nm.channels[gt] = ch
	}
}

// Gate classes the noise model distinguishes.
var (
	oneQubitGateClass = []string{"H", "X", "Z", "RX", "RY", "RZ", "S", "T"}
	twoQubitGateClass = []string{"CX", "CZ"}
)

// BuildNoiseModel constructs the full device noise model from a profile.
// Each gate class gets the ordered composition of its duration-dependent
// relaxation error and its duration-independent depolarizing error; the
// two-qubit relaxation term is the independent tensor combination of
// single-qubit relaxation on each participant over the two-qubit duration.
// Deterministic construction; two calls with the same profile yield
// equivalent models.
func BuildNoiseModel(profile NoiseProfile) *NoiseModel {
	nm := &NoiseModel{channels: make(map[string]Channel)}

	relax1Q := ThermalRelaxationChannel(profile.T1, profile.T2, profile.Time1Q)
	relax2Q := Tensor(
		ThermalRelaxationChannel(profile.T1, profile.T2, profile.Time2Q),
		ThermalRelaxationChannel(profile.T1, profile.T2, profile.Time2Q),
	)

	nm.AddAllQubitError(Compose(relax1Q, DepolarizingChannel(profile.Depol1Q, 1)), oneQubitGateClass)
	nm.AddAllQubitError(Compose(relax2Q, DepolarizingChannel(profile.Depol2Q, 2)), twoQubitGateClass)
	return nm
}
