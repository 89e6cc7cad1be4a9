package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// NormTolerance bounds how far a statevector norm may drift from 1 before it
// is treated as malformed. Probability comparisons use the same epsilon.
const NormTolerance = 1e-9

/*
StateVector holds the complex amplitudes of a pure n-qubit state, indexed by
computational basis state. Qubit 0 is the least significant bit of the index,
so basis state |q2 q1 q0⟩ lives at index q2*4 + q1*2 + q0.
*/
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector prepares |0...0⟩ over n qubits.
func NewStateVector(n int) (*StateVector, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQubitCount, n)
	}
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: n}, nil
}

// Clone returns an independent copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Norm returns the Euclidean norm of the amplitude vector.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for _, a := range s.Amplitudes {
		total += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(total)
}

// Probability returns |amplitude|² of a single basis state.
func (s *StateVector) Probability(basis int) float64 {
	if basis < 0 || basis >= len(s.Amplitudes) {
		return 0
	}
	a := s.Amplitudes[basis]
	return real(a)*real(a) + imag(a)*imag(a)
}

// Probabilities returns |amplitude|² for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// ProbabilityOfBit returns the probability that qubit q reads 1.
func (s *StateVector) ProbabilityOfBit(q int) float64 {
	bit := 1 << q
	p := 0.0
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p
}

// Apply dispatches a gate onto the state. Measurements and barriers are
// rejected here; they belong to the execution layer.
func (s *StateVector) Apply(g Gate) error {
	t := g.Target()
	switch g.Name {
	case OpH:
		s.applyH(t)
	case OpX:
		s.applyX(t)
	case OpY:
		s.applyY(t)
	case OpZ:
		s.applyPhaseFlip(1<<t, -1)
	case OpS:
		s.applyPhase(t, 1i)
	case OpSdg:
		s.applyPhase(t, -1i)
	case OpT:
		s.applyPhase(t, cmplx.Exp(complex(0, math.Pi/4)))
	case OpTdg:
		s.applyPhase(t, cmplx.Exp(complex(0, -math.Pi/4)))
	case OpRX:
		s.applyRX(t, g.Params[0])
	case OpRY:
		s.applyRY(t, g.Params[0])
	case OpRZ:
		s.applyRZ(t, g.Params[0])
	case OpP:
		s.applyPhase(t, cmplx.Exp(complex(0, g.Params[0])))
	case OpCX:
		s.applyControlledX(maskOf(g.Controls()), t)
	case OpCCX, OpMCX:
		s.applyControlledX(maskOf(g.Controls()), t)
	case OpCZ:
		s.applyPhaseFlip(maskOf(g.Qubits), -1)
	case OpCP:
		s.applyPhaseFlip(maskOf(g.Qubits), cmplx.Exp(complex(0, g.Params[0])))
	case OpSwap:
		s.applySwap(g.Qubits[0], g.Qubits[1])
	default:
		return fmt.Errorf("%w: cannot apply %s to a statevector", ErrMalformedCircuit, g.Name)
	}
	return nil
}

func maskOf(qubits []int) int {
	mask := 0
	for _, q := range qubits {
		mask |= 1 << q
	}
	return mask
}

func (s *StateVector) applyH(q int) {
	factor := complex(1/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = factor * (a + b)
			s.Amplitudes[j] = factor * (a - b)
		}
	}
}

func (s *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

// applyPhase multiplies amplitudes with qubit q set by the given factor.
func (s *StateVector) applyPhase(q int, factor complex128) {
	s.applyPhaseFlip(1<<q, factor)
}

// applyPhaseFlip multiplies every amplitude whose index has all mask bits set.
// With factor -1 this is Z / CZ, with e^{iθ} it is P / CP.
func (s *StateVector) applyPhaseFlip(mask int, factor complex128) {
	for i := range s.Amplitudes {
		if i&mask == mask {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	bit := 1 << q
	cos := complex(math.Cos(theta/2), 0)
	isin := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = cos*a + isin*b
			s.Amplitudes[j] = isin*a + cos*b
		}
	}
}

func (s *StateVector) applyRY(q int, theta float64) {
	bit := 1 << q
	cos := complex(math.Cos(theta/2), 0)
	sin := complex(math.Sin(theta/2), 0)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = cos*a - sin*b
			s.Amplitudes[j] = sin*a + cos*b
		}
	}
}

func (s *StateVector) applyRZ(q int, theta float64) {
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

// applyControlledX flips the target bit wherever every control bit is set.
// An empty control mask degenerates to a plain X.
func (s *StateVector) applyControlledX(controls int, target int) {
	bit := 1 << target
	for i := range s.Amplitudes {
		if i&controls == controls && i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applySwap(a, b int) {
	bitA := 1 << a
	bitB := 1 << b
	for i := range s.Amplitudes {
		if i&bitA != 0 && i&bitB == 0 {
			j := (i &^ bitA) | bitB
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// FormatBasisState renders a basis index as a bitstring with qubit 0 as the
// rightmost character, matching the usual counts-key convention.
func FormatBasisState(basis, bits int) string {
	if bits <= 0 {
		return ""
	}
	var sb strings.Builder
	for b := bits - 1; b >= 0; b-- {
		if basis&(1<<b) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// String lists the non-negligible amplitudes in ket notation.
func (s *StateVector) String() string {
	var parts []string
	for i, a := range s.Amplitudes {
		if cmplx.Abs(a) < 1e-9 {
			continue
		}
		parts = append(parts, fmt.Sprintf("(%.4f%+.4fi)|%s⟩", real(a), imag(a),
			FormatBasisState(i, s.NumQubits)))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}
