package qsim

import (
	"fmt"
	"math"
)

// Superposition puts every qubit into |+⟩ and measures, producing a uniform
// histogram over all 2^n bitstrings.
func Superposition(n int) (*Circuit, error) {
	c, err := NewCircuit("superposition", n, n)
	if err != nil {
		return nil, err
	}
	for q := 0; q < n; q++ {
		c.H(q)
	}
	c.Barrier().MeasureAll()
	return c, c.Err()
}

// Bell prepares the |Φ+⟩ pair and measures both qubits; only "00" and "11"
// show up in the counts.
func Bell() (*Circuit, error) {
	return BellPairs(1)
}

// BellPairs prepares the given number of independent |Φ+⟩ pairs on qubits
// (2i, 2i+1) and measures everything.
func BellPairs(pairs int) (*Circuit, error) {
	if pairs < 1 {
		return nil, fmt.Errorf("%w: %d pairs", ErrInvalidQubitCount, pairs)
	}
	name := "bell"
	if pairs > 1 {
		name = fmt.Sprintf("bell-x%d", pairs)
	}
	c, err := NewCircuit(name, 2*pairs, 2*pairs)
	if err != nil {
		return nil, err
	}
	for i := 0; i < pairs; i++ {
		c.H(2 * i).CX(2*i, 2*i+1)
	}
	c.Barrier().MeasureAll()
	return c, c.Err()
}

// GHZ prepares the n-qubit GHZ state (|0...0⟩ + |1...1⟩)/√2 and measures it.
func GHZ(n int) (*Circuit, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: GHZ needs at least 2 qubits", ErrInvalidQubitCount)
	}
	c, err := NewCircuit("ghz", n, n)
	if err != nil {
		return nil, err
	}
	c.H(0)
	for q := 1; q < n; q++ {
		c.CX(0, q)
	}
	c.Barrier().MeasureAll()
	return c, c.Err()
}

/*
Teleportation moves the state RY(theta)|0⟩ from qubit 0 to qubit 2 over a
shared Bell pair. The Bell measurement on qubits 0 and 1 happens mid-circuit,
and the corrections on qubit 2 are applied as controlled gates on the
collapsed qubits, so this circuit exercises the per-shot trajectory path.
Classical slot 2 ends up distributed exactly like a direct measurement of
RY(theta)|0⟩: P(1) = sin²(θ/2).
*/
func Teleportation(theta float64) (*Circuit, error) {
	c, err := NewCircuit("teleportation", 3, 3)
	if err != nil {
		return nil, err
	}
	c.RY(theta, 0).Barrier().
		H(1).CX(1, 2).Barrier().
		CX(0, 1).H(0).Barrier().
		Measure(0, 0).Measure(1, 1).Barrier().
		CX(1, 2).CZ(0, 2).
		Measure(2, 2)
	return c, c.Err()
}

// VQEAnsatz builds a two-layer hardware-efficient ansatz: an RY rotation on
// every qubit, a linear CX entangling chain, and a second RY layer. params
// must hold 2n angles, first layer then second.
func VQEAnsatz(n int, params []float64) (*Circuit, error) {
	if len(params) != 2*n {
		return nil, fmt.Errorf("%w: ansatz over %d qubits needs %d params, got %d",
			ErrMalformedCircuit, n, 2*n, len(params))
	}
	c, err := NewCircuit("vqe-ansatz", n, n)
	if err != nil {
		return nil, err
	}
	for q := 0; q < n; q++ {
		c.RY(params[q], q)
	}
	c.Barrier()
	for q := 0; q < n-1; q++ {
		c.CX(q, q+1)
	}
	c.Barrier()
	for q := 0; q < n; q++ {
		c.RY(params[n+q], q)
	}
	c.Barrier().MeasureAll()
	return c, c.Err()
}

// VQE builds the demo ansatz with fixed angles π/4 and π/3, the trial point
// the suite plots.
func VQE(n int) (*Circuit, error) {
	params := make([]float64, 2*n)
	for q := 0; q < n; q++ {
		params[q] = math.Pi / 4
		params[n+q] = math.Pi / 3
	}
	c, err := VQEAnsatz(n, params)
	if err != nil {
		return nil, err
	}
	c.Name = "vqe"
	return c, nil
}

/*
QuantumWalk runs a discrete-time coined walk: qubit 0 is the coin, qubits
1..3 encode the walker position. Each step tosses the coin and shifts the
position one way or the other depending on the toss. Only the position
register is measured.
*/
func QuantumWalk(steps int) (*Circuit, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: %d steps", ErrMalformedCircuit, steps)
	}
	c, err := NewCircuit("quantum-walk", 4, 3)
	if err != nil {
		return nil, err
	}
	c.X(1)
	for s := 0; s < steps; s++ {
		c.H(0).Barrier().
			CX(0, 1).X(0).CX(0, 2).X(0).
			Barrier()
	}
	c.Measure(1, 0).Measure(2, 1).Measure(3, 2)
	return c, c.Err()
}

/*
BitFlipCode demonstrates the three-qubit repetition code. Qubit 0 is encoded
across qubits 0..2, a deliberate X error hits qubit 1, the two syndrome
qubits 3 and 4 pick up the parities q0⊕q1 and q1⊕q2, and the matching
Toffoli corrections undo the flip. The data register always reads 000.
*/
func BitFlipCode() (*Circuit, error) {
	c, err := NewCircuit("bit-flip-code", 5, 3)
	if err != nil {
		return nil, err
	}
	// Encode.
	c.CX(0, 1).CX(0, 2).Barrier()
	// Channel error.
	c.X(1).Barrier()
	// Syndrome extraction.
	c.CX(0, 3).CX(1, 3).CX(1, 4).CX(2, 4).Barrier()
	// Syndrome 10 flips q0, 11 flips q1, 01 flips q2.
	c.X(4).CCX(3, 4, 0).X(4)
	c.CCX(3, 4, 1)
	c.X(3).CCX(3, 4, 2).X(3)
	c.Barrier()
	c.Measure(0, 0).Measure(1, 1).Measure(2, 2)
	return c, c.Err()
}
