package qsim

import (
	"context"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTeleportation(t *testing.T) {
	Convey("Given a sampler backend", t, func(c C) {
		ctx := context.Background()
		backend := NewSamplerBackend(ctx, nil)
		Reset(backend.Close)

		Convey("When teleporting RY(θ)|0⟩", func(c C) {
			theta := math.Pi / 3
			circuit, err := Teleportation(theta)
			c.So(err, ShouldBeNil)
			c.So(circuit.requiresTrajectory(), ShouldBeTrue)

			res, err := backend.Run(ctx, circuit, WithShots(4096), WithSeed(42))
			c.So(err, ShouldBeNil)
			c.So(res.TotalCounts(), ShouldEqual, 4096)

			Convey("Then qubit 2 carries the teleported distribution", func(c C) {
				ones := 0
				for label, count := range res.Counts {
					if label[0] == '1' {
						ones += count
					}
				}
				sin := math.Sin(theta / 2)
				c.So(float64(ones)/4096, ShouldAlmostEqual, sin*sin, 0.05)
			})
		})

		Convey("When teleporting |0⟩ itself", func(c C) {
			circuit, _ := Teleportation(0)

			res, err := backend.Run(ctx, circuit, WithShots(1024), WithSeed(42))
			c.So(err, ShouldBeNil)

			Convey("Then qubit 2 always reads 0", func(c C) {
				for label := range res.Counts {
					c.So(label[0], ShouldEqual, uint8('0'))
				}
			})
		})
	})
}

func TestBitFlipCode(t *testing.T) {
	Convey("Given the repetition code with an injected X error", t, func(c C) {
		ctx := context.Background()
		backend := NewSamplerBackend(ctx, nil)
		Reset(backend.Close)

		circuit, err := BitFlipCode()
		c.So(err, ShouldBeNil)

		res, err := backend.Run(ctx, circuit, WithShots(1024), WithSeed(42))
		c.So(err, ShouldBeNil)

		Convey("Then the data register always decodes to 000", func(c C) {
			c.So(res.Counts, ShouldResemble, map[string]int{"000": 1024})
		})
	})
}

func TestGHZAndSuperposition(t *testing.T) {
	Convey("Given a sampler backend", t, func(c C) {
		ctx := context.Background()
		backend := NewSamplerBackend(ctx, nil)
		Reset(backend.Close)

		Convey("When measuring a 4-qubit GHZ state", func(c C) {
			circuit, err := GHZ(4)
			c.So(err, ShouldBeNil)

			res, err := backend.Run(ctx, circuit, WithShots(2048), WithSeed(42))
			c.So(err, ShouldBeNil)

			Convey("Then only the two fully correlated outcomes appear", func(c C) {
				for label := range res.Counts {
					c.So(label == "0000" || label == "1111", ShouldBeTrue)
				}
				c.So(float64(res.Counts["0000"])/2048, ShouldAlmostEqual, 0.5, 0.05)
			})
		})

		Convey("When measuring a uniform superposition", func(c C) {
			circuit, err := Superposition(3)
			c.So(err, ShouldBeNil)

			res, err := backend.Run(ctx, circuit, WithShots(4096), WithSeed(42))
			c.So(err, ShouldBeNil)

			Convey("Then all 8 outcomes appear at roughly equal frequency", func(c C) {
				c.So(res.Counts, ShouldHaveLength, 8)
				for _, count := range res.Counts {
					c.So(float64(count)/4096, ShouldAlmostEqual, 0.125, 0.05)
				}
			})
		})

		Convey("When preparing two Bell pairs", func(c C) {
			circuit, err := BellPairs(2)
			c.So(err, ShouldBeNil)

			res, err := backend.Run(ctx, circuit, WithShots(2048), WithSeed(42))
			c.So(err, ShouldBeNil)

			Convey("Then each pair is independently correlated", func(c C) {
				for label := range res.Counts {
					// label reads q3 q2 q1 q0.
					c.So(label[2], ShouldEqual, label[3])
					c.So(label[0], ShouldEqual, label[1])
				}
			})
		})
	})

	Convey("Given invalid constructor arguments", t, func(c C) {
		_, err := GHZ(1)
		c.So(err, ShouldWrap, ErrInvalidQubitCount)

		_, err = BellPairs(0)
		c.So(err, ShouldWrap, ErrInvalidQubitCount)

		_, err = QuantumWalk(0)
		c.So(err, ShouldWrap, ErrMalformedCircuit)
	})
}

func TestVQEAnsatz(t *testing.T) {
	Convey("Given the fixed-angle ansatz", t, func(c C) {
		circuit, err := VQE(3)
		c.So(err, ShouldBeNil)
		c.So(circuit.Name, ShouldEqual, "vqe")

		Convey("Then the circuit validates and measures every qubit", func(c C) {
			c.So(circuit.Validate(), ShouldBeNil)
			c.So(circuit.MeasuredClbits(), ShouldEqual, 3)
		})

		Convey("Then sampling produces a normalized histogram", func(c C) {
			ctx := context.Background()
			backend := NewSamplerBackend(ctx, nil)
			Reset(backend.Close)

			res, err := backend.Run(ctx, circuit, WithShots(1024), WithSeed(42))
			c.So(err, ShouldBeNil)
			c.So(res.TotalCounts(), ShouldEqual, 1024)
		})
	})

	Convey("Given a parameter count mismatch", t, func(c C) {
		_, err := VQEAnsatz(3, []float64{1, 2, 3})
		c.So(err, ShouldWrap, ErrMalformedCircuit)
	})
}

func TestQuantumWalk(t *testing.T) {
	Convey("Given a 3-step coined walk", t, func(c C) {
		ctx := context.Background()
		backend := NewSamplerBackend(ctx, nil)
		Reset(backend.Close)

		circuit, err := QuantumWalk(3)
		c.So(err, ShouldBeNil)

		res, err := backend.Run(ctx, circuit, WithShots(2048), WithSeed(42))
		c.So(err, ShouldBeNil)

		Convey("Then only the position register is reported", func(c C) {
			c.So(res.TotalCounts(), ShouldEqual, 2048)
			for label := range res.Counts {
				c.So(label, ShouldHaveLength, 3)
			}
		})
	})
}
