package qsim

import (
	"math"
	"math/rand/v2"
)

/*
WaveFunction couples a statevector with a seeded source of randomness so that
measurement can collapse the state into a definite outcome. Shot execution
owns one WaveFunction per trajectory; observation of a qubit projects the
amplitudes and renormalizes, exactly once per measurement.
*/
type WaveFunction struct {
	state *StateVector
	rng   *rand.Rand
}

// NewWaveFunction wraps a state with a deterministic PCG stream.
func NewWaveFunction(state *StateVector, seed uint64) *WaveFunction {
	return &WaveFunction{
		state: state,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// State exposes the underlying (possibly collapsed) statevector.
func (wf *WaveFunction) State() *StateVector {
	return wf.state
}

/*
Measure observes qubit q, collapsing the wave function. The outcome is drawn
from the Born probability of the qubit reading 1; amplitudes inconsistent
with the outcome are zeroed and the remainder renormalized.
*/
func (wf *WaveFunction) Measure(q int) int {
	p1 := wf.state.ProbabilityOfBit(q)

	outcome := 0
	if wf.rng.Float64() < p1 {
		outcome = 1
	}

	wf.collapse(q, outcome, p1)
	return outcome
}

func (wf *WaveFunction) collapse(q, outcome int, p1 float64) {
	keep := p1
	if outcome == 0 {
		keep = 1 - p1
	}
	if keep <= 0 {
		// Degenerate draw against a zero-probability branch; keep the state.
		return
	}

	bit := 1 << q
	norm := complex(1/math.Sqrt(keep), 0)
	for i, a := range wf.state.Amplitudes {
		set := i&bit != 0
		if (outcome == 1) == set {
			wf.state.Amplitudes[i] = a * norm
		} else {
			wf.state.Amplitudes[i] = 0
		}
	}
}

/*
SampleBasis draws a basis state from the current amplitude distribution
without collapsing the state. Used by the fast sampling path where every
measurement is terminal and the final distribution is sampled repeatedly.
*/
func (wf *WaveFunction) SampleBasis() int {
	r := wf.rng.Float64()
	cumulative := 0.0
	last := 0
	for i, a := range wf.state.Amplitudes {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p == 0 {
			continue
		}
		cumulative += p
		last = i
		if r < cumulative {
			return i
		}
	}
	// Norm rounding can leave cumulative fractionally below 1.
	return last
}
