package qsim

import (
	"fmt"
	"math"
)

// GroverIterations returns the optimal repetition count ⌊π/4·√(2^n)⌋ for a
// single marked state in an n-qubit search space, never less than one.
func GroverIterations(n int) int {
	iters := int(math.Floor(math.Pi / 4 * math.Sqrt(float64(int(1)<<n))))
	if iters < 1 {
		iters = 1
	}
	return iters
}

/*
Grover builds the full search circuit for a single marked bitstring. The
target is written in measurement order, leftmost character is the highest
qubit, so the returned histogram peaks on exactly that key. The oracle marks
the target with a phase flip (X-conjugated multi-controlled Z), and the
diffusion operator reflects about the mean; after ⌊π/4·√N⌋ rounds the marked
amplitude dominates.
*/
func Grover(n int, target string) (*Circuit, error) {
	if n < 2 || n > MaxQubits {
		return nil, fmt.Errorf("%w: %d (want 2..%d)", ErrInvalidQubitCount, n, MaxQubits)
	}
	if len(target) != n {
		return nil, fmt.Errorf("%w: %q is not %d bits", ErrInvalidTarget, target, n)
	}
	zeros := make([]bool, n)
	for i, ch := range target {
		switch ch {
		case '0':
			// Qubit q reads character n-1-q, counts-key convention.
			zeros[n-1-i] = true
		case '1':
		default:
			return nil, fmt.Errorf("%w: %q contains %q", ErrInvalidTarget, target, ch)
		}
	}

	c, err := NewCircuit(fmt.Sprintf("grover-%s", target), n, n)
	if err != nil {
		return nil, err
	}
	for q := 0; q < n; q++ {
		c.H(q)
	}
	c.Barrier()

	controls := make([]int, n-1)
	for q := 0; q < n-1; q++ {
		controls[q] = q
	}
	for it := 0; it < GroverIterations(n); it++ {
		groverOracle(c, zeros, controls)
		c.Barrier()
		groverDiffusion(c, controls)
		c.Barrier()
	}
	c.MeasureAll()
	return c, c.Err()
}

// groverOracle phase-flips the marked state: X on every 0-position maps the
// target onto |1...1⟩, a multi-controlled Z flips it, and the X frame is
// undone.
func groverOracle(c *Circuit, zeros []bool, controls []int) {
	n := len(zeros)
	for q := 0; q < n; q++ {
		if zeros[q] {
			c.X(q)
		}
	}
	c.H(n - 1).MCX(controls, n-1).H(n - 1)
	for q := 0; q < n; q++ {
		if zeros[q] {
			c.X(q)
		}
	}
}

// groverDiffusion reflects the state about the uniform superposition.
func groverDiffusion(c *Circuit, controls []int) {
	n := c.NumQubits
	for q := 0; q < n; q++ {
		c.H(q)
	}
	for q := 0; q < n; q++ {
		c.X(q)
	}
	c.H(n - 1).MCX(controls, n-1).H(n - 1)
	for q := 0; q < n; q++ {
		c.X(q)
	}
	for q := 0; q < n; q++ {
		c.H(q)
	}
}
