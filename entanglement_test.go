package qsim

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEntanglementEntropy(t *testing.T) {
	Convey("Given a Bell pair", t, func(c C) {
		s, _ := NewStateVector(2)
		circuit, _ := NewCircuit("bell", 2, 0)
		circuit.H(0).CX(0, 1)
		applyAll(c, s, circuit)

		Convey("Then each qubit is maximally entangled", func(c C) {
			for q := 0; q < 2; q++ {
				entropy, err := EntanglementEntropy(s, q)
				c.So(err, ShouldBeNil)
				c.So(entropy, ShouldAlmostEqual, 1, 1e-9)
			}
		})

		Convey("Then extracting a single qubit fails", func(c C) {
			_, err := QubitAt(s, 0)
			c.So(err, ShouldWrap, ErrEntangledQubit)
		})
	})

	Convey("Given a product state", t, func(c C) {
		s, _ := NewStateVector(2)
		circuit, _ := NewCircuit("product", 2, 0)
		circuit.H(0).X(1)
		applyAll(c, s, circuit)

		Convey("Then the entropy of each qubit is zero", func(c C) {
			for q := 0; q < 2; q++ {
				entropy, err := EntanglementEntropy(s, q)
				c.So(err, ShouldBeNil)
				c.So(entropy, ShouldAlmostEqual, 0, 1e-9)
			}
		})

		Convey("Then qubit 0 extracts as |+⟩", func(c C) {
			q, err := QubitAt(s, 0)
			c.So(err, ShouldBeNil)
			c.So(q.Prob0(), ShouldAlmostEqual, 0.5, 1e-9)
			c.So(q.Prob1(), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Then qubit 1 extracts as |1⟩", func(c C) {
			q, err := QubitAt(s, 1)
			c.So(err, ShouldBeNil)
			c.So(q.Prob1(), ShouldAlmostEqual, 1, 1e-9)
		})
	})

	Convey("Given a partially entangling rotation", t, func(c C) {
		s, _ := NewStateVector(2)
		circuit, _ := NewCircuit("partial", 2, 0)
		circuit.RY(math.Pi/4, 0).CX(0, 1)
		applyAll(c, s, circuit)

		entropy, err := EntanglementEntropy(s, 0)
		c.So(err, ShouldBeNil)

		Convey("Then the entropy sits strictly between 0 and 1", func(c C) {
			c.So(entropy, ShouldBeGreaterThan, 0.01)
			c.So(entropy, ShouldBeLessThan, 0.99)
		})
	})
}

func TestBlochVector(t *testing.T) {
	Convey("Given canonical single-qubit states", t, func(c C) {
		Convey("Then |0⟩ points to the north pole", func(c C) {
			x, y, z := Zero().Bloch()
			c.So(x, ShouldAlmostEqual, 0, 1e-9)
			c.So(y, ShouldAlmostEqual, 0, 1e-9)
			c.So(z, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("Then |+⟩ points along +X", func(c C) {
			x, y, z := Plus().Bloch()
			c.So(x, ShouldAlmostEqual, 1, 1e-9)
			c.So(y, ShouldAlmostEqual, 0, 1e-9)
			c.So(z, ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Then Hadamard moves |0⟩ onto |+⟩", func(c C) {
			h := Zero().ApplyHadamard()
			c.So(h.Prob0(), ShouldAlmostEqual, 0.5, 1e-9)

			x, _, _ := h.Bloch()
			c.So(x, ShouldAlmostEqual, 1, 1e-9)
		})
	})
}
