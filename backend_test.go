package qsim

import (
	"context"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStatevectorBackend(t *testing.T) {
	Convey("Given a statevector backend", t, func(c C) {
		backend := NewStatevectorBackend(nil)
		ctx := context.Background()

		c.So(backend.Name(), ShouldEqual, "statevector")
		c.So(backend.IsSimulator(), ShouldBeTrue)

		Convey("When running a Bell circuit", func(c C) {
			circuit, err := Bell()
			c.So(err, ShouldBeNil)

			res, err := backend.Run(ctx, circuit)
			c.So(err, ShouldBeNil)
			c.So(res.State, ShouldNotBeNil)
			c.So(res.ID, ShouldNotBeEmpty)

			Convey("Then the amplitudes are the exact Bell state", func(c C) {
				c.So(res.State.Probability(0), ShouldAlmostEqual, 0.5, probEpsilon)
				c.So(res.State.Probability(3), ShouldAlmostEqual, 0.5, probEpsilon)
				c.So(res.State.Norm(), ShouldAlmostEqual, 1, NormTolerance)
			})

			Convey("Then the run is recorded", func(c C) {
				c.So(backend.Metrics().History(), ShouldHaveLength, 1)
			})
		})

		Convey("When the circuit exceeds backend capacity", func(c C) {
			config := NewConfig()
			config.MaxQubits = 2
			small := NewStatevectorBackend(config)

			circuit, _ := GHZ(3)
			_, err := small.Run(ctx, circuit)
			c.So(err, ShouldWrap, ErrCapacityExceeded)
		})

		Convey("When the circuit measures mid-stream", func(c C) {
			circuit, err := Teleportation(math.Pi / 4)
			c.So(err, ShouldBeNil)

			_, err = backend.Run(ctx, circuit)
			c.So(err, ShouldWrap, ErrMalformedCircuit)
		})
	})
}

func TestSamplerBackend(t *testing.T) {
	Convey("Given a sampler backend", t, func(c C) {
		ctx := context.Background()
		backend := NewSamplerBackend(ctx, nil)
		Reset(backend.Close)

		Convey("When running Bell with a fixed seed", func(c C) {
			circuit, _ := Bell()
			res, err := backend.Run(ctx, circuit, WithShots(2048), WithSeed(42))
			c.So(err, ShouldBeNil)

			Convey("Then counts sum to the requested shots", func(c C) {
				c.So(res.TotalCounts(), ShouldEqual, 2048)
				c.So(res.Shots, ShouldEqual, 2048)
			})

			Convey("Then only the correlated outcomes appear", func(c C) {
				for label := range res.Counts {
					c.So(label == "00" || label == "11", ShouldBeTrue)
				}
			})

			Convey("Then a rerun with the same seed is identical", func(c C) {
				again, err := backend.Run(ctx, circuit, WithShots(2048), WithSeed(42))
				c.So(err, ShouldBeNil)
				c.So(again.Counts, ShouldResemble, res.Counts)
			})

			Convey("Then a different seed shifts the histogram", func(c C) {
				other, err := backend.Run(ctx, circuit, WithShots(2048), WithSeed(43))
				c.So(err, ShouldBeNil)
				c.So(other.TotalCounts(), ShouldEqual, 2048)
			})
		})

		Convey("When running a trajectory circuit with a fixed seed", func(c C) {
			circuit, _ := Teleportation(math.Pi / 3)

			first, err := backend.Run(ctx, circuit, WithShots(1024), WithSeed(7))
			c.So(err, ShouldBeNil)
			second, err := backend.Run(ctx, circuit, WithShots(1024), WithSeed(7))
			c.So(err, ShouldBeNil)

			c.So(first.Counts, ShouldResemble, second.Counts)
			c.So(first.TotalCounts(), ShouldEqual, 1024)
		})

		Convey("When sampled frequencies are compared to the exact state", func(c C) {
			circuit, _ := GHZ(3)
			exact := NewStatevectorBackend(nil)

			ideal, err := exact.Run(ctx, circuit)
			c.So(err, ShouldBeNil)
			sampled, err := backend.Run(ctx, circuit, WithShots(4096), WithSeed(42))
			c.So(err, ShouldBeNil)

			Convey("Then every frequency is close to its probability", func(c C) {
				for label, freq := range sampled.Probabilities() {
					basis := 0
					for i := 0; i < len(label); i++ {
						if label[len(label)-1-i] == '1' {
							basis |= 1 << i
						}
					}
					c.So(freq, ShouldAlmostEqual, ideal.State.Probability(basis), 0.05)
				}
			})
		})

		Convey("When the shot count is invalid", func(c C) {
			circuit, _ := Bell()
			_, err := backend.Run(ctx, circuit, WithShots(0))
			c.So(err, ShouldWrap, ErrInvalidShots)
		})

		Convey("When the circuit never measures", func(c C) {
			circuit, _ := NewCircuit("silent", 2, 2)
			circuit.H(0).CX(0, 1)

			_, err := backend.Run(ctx, circuit)
			c.So(err, ShouldWrap, ErrMalformedCircuit)
		})

		Convey("When the context is already cancelled", func(c C) {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			circuit, _ := Bell()
			_, err := backend.Run(cancelled, circuit, WithShots(64))
			c.So(err, ShouldNotBeNil)
		})
	})
}
