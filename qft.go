package qsim

import (
	"fmt"
	"math"
)

// ApplyQFT appends the quantum Fourier transform over qubits 0..n-1: a
// Hadamard on each qubit followed by controlled phase rotations of angle
// π/2^k from every lower qubit, working from the top down. Qubit order is
// left as-is; append swaps separately when the reversed convention is wanted.
func ApplyQFT(c *Circuit, n int) *Circuit {
	for q := n - 1; q >= 0; q-- {
		c.H(q)
		for k := q - 1; k >= 0; k-- {
			c.CP(math.Pi/math.Pow(2, float64(q-k)), k, q)
		}
	}
	return c
}

// ApplyInverseQFT appends the adjoint transform, the exact gate-by-gate
// reverse of ApplyQFT with negated angles.
func ApplyInverseQFT(c *Circuit, n int) *Circuit {
	for q := 0; q < n; q++ {
		for k := 0; k < q; k++ {
			c.CP(-math.Pi/math.Pow(2, float64(q-k)), k, q)
		}
		c.H(q)
	}
	return c
}

// applyReversal swaps qubit order so the transform matches the textbook
// big-endian reading.
func applyReversal(c *Circuit, n int) {
	for q := 0; q < n/2; q++ {
		c.Swap(q, n-1-q)
	}
}

// QFTDemo Fourier-transforms the basis state |0...01⟩ and measures. Every
// bitstring comes out equally likely, which is the point of the demo: the
// transform spreads a basis state over the whole register.
func QFTDemo(n int) (*Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQubitCount, n)
	}
	c, err := NewCircuit("qft", n, n)
	if err != nil {
		return nil, err
	}
	c.X(0).Barrier()
	ApplyQFT(c, n)
	applyReversal(c, n)
	c.Barrier().MeasureAll()
	return c, c.Err()
}

/*
PhaseEstimation estimates the eigenphase of a P(2πφ) gate using the given
number of counting qubits. The eigenstate |1⟩ sits on the extra top qubit,
each counting qubit picks up the phase 2πφ·2^i through a controlled phase,
and the inverse transform concentrates the register on round(φ·2^m). With
φ = k/2^m the histogram is a single spike on the binary expansion of φ.
*/
func PhaseEstimation(counting int, phase float64) (*Circuit, error) {
	if counting < 1 || counting >= MaxQubits {
		return nil, fmt.Errorf("%w: %d counting qubits", ErrInvalidQubitCount, counting)
	}
	c, err := NewCircuit("phase-estimation", counting+1, counting)
	if err != nil {
		return nil, err
	}
	eigen := counting
	c.X(eigen)
	for q := 0; q < counting; q++ {
		c.H(q)
	}
	c.Barrier()
	for q := 0; q < counting; q++ {
		c.CP(2*math.Pi*phase*math.Pow(2, float64(q)), q, eigen)
	}
	c.Barrier()
	applyReversal(c, counting)
	ApplyInverseQFT(c, counting)
	c.Barrier()
	for q := 0; q < counting; q++ {
		c.Measure(q, q)
	}
	return c, c.Err()
}
