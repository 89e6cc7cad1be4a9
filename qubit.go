package qsim

import (
	"math"
	"math/cmplx"
)

// Qubit is a single-qubit pure state.
type Qubit struct {
	Alpha complex128 // |0⟩ amplitude
	Beta  complex128 // |1⟩ amplitude
}

func NewQubit(alpha, beta complex128) Qubit {
	return Qubit{Alpha: alpha, Beta: beta}
}

// Zero returns |0⟩.
func Zero() Qubit { return Qubit{Alpha: 1} }

// Plus returns |+⟩ = (|0⟩+|1⟩)/√2.
func Plus() Qubit {
	inv := complex(1/math.Sqrt2, 0)
	return Qubit{Alpha: inv, Beta: inv}
}

func (q Qubit) ApplyHadamard() Qubit {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	inv := complex(1/math.Sqrt2, 0)
	return Qubit{
		Alpha: inv * (q.Alpha + q.Beta),
		Beta:  inv * (q.Alpha - q.Beta),
	}
}

func (q Qubit) Prob0() float64 {
	return real(q.Alpha)*real(q.Alpha) + imag(q.Alpha)*imag(q.Alpha)
}

func (q Qubit) Prob1() float64 {
	return real(q.Beta)*real(q.Beta) + imag(q.Beta)*imag(q.Beta)
}

/*
Bloch maps the state onto the Bloch sphere:

	x = 2·Re(ᾱβ), y = 2·Im(ᾱβ), z = |α|² − |β|²

The vector has unit length for any normalized pure state.
*/
func (q Qubit) Bloch() (x, y, z float64) {
	cross := cmplx.Conj(q.Alpha) * q.Beta
	return 2 * real(cross), 2 * imag(cross), q.Prob0() - q.Prob1()
}

/*
QubitAt extracts the single-qubit state of qubit q from an n-qubit
statevector. This only exists when the qubit is unentangled from the rest of
the register; otherwise ErrEntangledQubit is returned and the caller should
fall back to a counts-based presentation.
*/
func QubitAt(s *StateVector, q int) (Qubit, error) {
	if q < 0 || q >= s.NumQubits {
		return Qubit{}, ErrQubitOutOfRange
	}

	entropy, err := EntanglementEntropy(s, q)
	if err != nil {
		return Qubit{}, err
	}
	if entropy > 1e-6 {
		return Qubit{}, ErrEntangledQubit
	}

	// Unentangled: the conditional state of the rest of the register is the
	// same for both branches, so any basis index with non-zero amplitude
	// fixes α and β up to global phase.
	bit := 1 << q
	best, bestP := 0, 0.0
	for i := range s.Amplitudes {
		if p := s.Probability(i &^ bit) + s.Probability(i|bit); p > bestP {
			best, bestP = i, p
		}
	}
	alpha := s.Amplitudes[best&^bit]
	beta := s.Amplitudes[best|bit]
	norm := complex(math.Hypot(cmplx.Abs(alpha), cmplx.Abs(beta)), 0)
	if real(norm) == 0 {
		return Qubit{}, ErrEntangledQubit
	}
	return Qubit{Alpha: alpha / norm, Beta: beta / norm}, nil
}
