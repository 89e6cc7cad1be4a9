package qsim

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSaveHistogram(t *testing.T) {
	Convey("Given a sampled result", t, func(c C) {
		res := &Result{
			Circuit: "bell",
			Shots:   100,
			Counts:  map[string]int{"00": 55, "11": 45},
		}
		path := filepath.Join(t.TempDir(), "figure_01_bell.png")

		Convey("When saving the histogram", func(c C) {
			c.So(SaveHistogram(res, path), ShouldBeNil)

			info, err := os.Stat(path)
			c.So(err, ShouldBeNil)
			c.So(info.Size(), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given an empty result", t, func(c C) {
		err := SaveHistogram(&Result{}, "unused.png")
		c.So(err, ShouldWrap, ErrEmptyResult)
	})
}

func TestSaveProbabilities(t *testing.T) {
	Convey("Given an exact result", t, func(c C) {
		s, _ := NewStateVector(2)
		circuit, _ := NewCircuit("bell", 2, 0)
		circuit.H(0).CX(0, 1)
		applyAll(c, s, circuit)

		res := &Result{Circuit: "bell", State: s}
		path := filepath.Join(t.TempDir(), "figure_01_bell_exact.png")

		c.So(SaveProbabilities(res, path), ShouldBeNil)

		_, err := os.Stat(path)
		c.So(err, ShouldBeNil)
	})

	Convey("Given a result without a statevector", t, func(c C) {
		err := SaveProbabilities(&Result{}, "unused.png")
		c.So(err, ShouldWrap, ErrEmptyResult)
	})
}

func TestSaveBloch(t *testing.T) {
	Convey("Given the |+⟩ state", t, func(c C) {
		path := filepath.Join(t.TempDir(), "bloch_plus.png")

		c.So(SaveBloch(Plus(), "plus", path), ShouldBeNil)

		info, err := os.Stat(path)
		c.So(err, ShouldBeNil)
		c.So(info.Size(), ShouldBeGreaterThan, 0)
	})
}
