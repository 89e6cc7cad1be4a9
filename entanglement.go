package qsim

import (
	"math"
	"math/cmplx"
)

/*
EntanglementEntropy measures how entangled qubit q is with the rest of the
register: the von Neumann entropy (base 2) of the reduced single-qubit
density matrix. A product state yields 0, a maximally entangled pair yields 1.

The reduced matrix is obtained by tracing out every other qubit:

	ρ00 = Σ |a_i|²  over i with bit q clear
	ρ11 = Σ |a_i|²  over i with bit q set
	ρ01 = Σ a_i · conj(a_{i|bit})

and the entropy is −Σ λ log₂ λ over its two eigenvalues.
*/
func EntanglementEntropy(s *StateVector, q int) (float64, error) {
	if q < 0 || q >= s.NumQubits {
		return 0, ErrQubitOutOfRange
	}

	bit := 1 << q
	var rho00, rho11 float64
	var rho01 complex128
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			rho11 += real(a)*real(a) + imag(a)*imag(a)
			continue
		}
		rho00 += real(a)*real(a) + imag(a)*imag(a)
		rho01 += a * cmplx.Conj(s.Amplitudes[i|bit])
	}

	// Eigenvalues of a 2x2 hermitian matrix with trace ~1.
	diff := rho00 - rho11
	root := math.Sqrt(diff*diff + 4*real(rho01*cmplx.Conj(rho01)))
	l1 := (rho00 + rho11 + root) / 2
	l2 := (rho00 + rho11 - root) / 2

	entropy := 0.0
	for _, l := range []float64{l1, l2} {
		if l > NormTolerance {
			entropy -= l * math.Log2(l)
		}
	}
	// Numerical noise can push the result a hair below zero.
	if entropy < 0 {
		entropy = 0
	}
	return entropy, nil
}
