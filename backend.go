package qsim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// RunOptions configures a single backend execution.
type RunOptions struct {
	Shots   int
	Seed    uint64
	HasSeed bool
}

type RunOption func(*RunOptions)

// WithShots sets the sample count for shot-based backends.
func WithShots(n int) RunOption {
	return func(o *RunOptions) { o.Shots = n }
}

// WithSeed pins the random stream; runs with the same seed and shot count
// produce identical histograms. Seed 0 explicitly requests a
// non-deterministic run.
func WithSeed(seed uint64) RunOption {
	return func(o *RunOptions) { o.Seed = seed; o.HasSeed = true }
}

// Backend executes circuits. Both implementations here are simulators; the
// interface mirrors what a hardware-backed client would offer.
type Backend interface {
	Name() string
	MaxQubits() int
	IsSimulator() bool
	Run(ctx context.Context, c *Circuit, opts ...RunOption) (*Result, error)
}

func checkRunnable(c *Circuit, capacity int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.NumQubits > capacity {
		return fmt.Errorf("%w: %d qubits, capacity %d", ErrCapacityExceeded, c.NumQubits, capacity)
	}
	return nil
}

/*
StatevectorBackend runs circuits in exact mode: every unitary gate is applied
to the full amplitude vector and the final state is returned. Terminal
measurements are skipped (the amplitudes already carry the distribution), but
a circuit that keeps computing after a measurement has no single final
statevector and is rejected.
*/
type StatevectorBackend struct {
	config  *Config
	metrics *Metrics
}

func NewStatevectorBackend(config *Config) *StatevectorBackend {
	if config == nil {
		config = NewConfig()
	}
	return &StatevectorBackend{config: config, metrics: NewMetrics()}
}

func (b *StatevectorBackend) Name() string      { return "statevector" }
func (b *StatevectorBackend) MaxQubits() int    { return b.config.MaxQubits }
func (b *StatevectorBackend) IsSimulator() bool { return true }

// Metrics exposes run bookkeeping for this backend.
func (b *StatevectorBackend) Metrics() *Metrics { return b.metrics }

func (b *StatevectorBackend) Run(ctx context.Context, c *Circuit, opts ...RunOption) (*Result, error) {
	if err := checkRunnable(c, b.config.MaxQubits); err != nil {
		return nil, err
	}
	if c.requiresTrajectory() {
		return nil, fmt.Errorf("%w: mid-circuit measurement has no exact statevector", ErrMalformedCircuit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	state, err := NewStateVector(c.NumQubits)
	if err != nil {
		return nil, err
	}
	for _, g := range c.Gates {
		if !g.IsUnitary() {
			continue
		}
		if err := state.Apply(g); err != nil {
			return nil, err
		}
	}

	res := &Result{
		ID:       uuid.NewString(),
		Circuit:  c.Name,
		Backend:  b.Name(),
		State:    state,
		Duration: time.Since(start),
	}
	b.metrics.recordRun(RunRecord{
		ID: res.ID, Circuit: c.Name, Backend: b.Name(), Duration: res.Duration, When: start,
	}, nil)
	return res, nil
}

/*
SamplerBackend runs circuits in shot mode and returns a histogram of
measurement outcomes.

Two execution paths exist. When every measurement is terminal, the final
statevector is computed once and shots are drawn from its distribution.
When unitary gates follow a measurement (teleportation-style circuits), each
shot replays the whole circuit as a trajectory, collapsing the wave function
at every measurement. Either way the shots are sharded across the sampling
pool and merged in shard order, keeping seeded runs deterministic.
*/
type SamplerBackend struct {
	config  *Config
	pool    *SamplerPool
	metrics *Metrics
}

// NewSamplerBackend spins up the backend's sampling pool; callers own the
// backend's lifetime and should Close it when done.
func NewSamplerBackend(ctx context.Context, config *Config) *SamplerBackend {
	if config == nil {
		config = NewConfig()
	}
	return &SamplerBackend{
		config:  config,
		pool:    NewSamplerPool(ctx, config.Workers),
		metrics: NewMetrics(),
	}
}

func (b *SamplerBackend) Name() string      { return "sampler" }
func (b *SamplerBackend) MaxQubits() int    { return b.config.MaxQubits }
func (b *SamplerBackend) IsSimulator() bool { return true }

// Metrics exposes run bookkeeping for this backend.
func (b *SamplerBackend) Metrics() *Metrics { return b.metrics }

// Close shuts down the sampling pool.
func (b *SamplerBackend) Close() {
	b.pool.Close()
}

type measureMap struct {
	qubit int
	clbit int
}

// terminalMeasurements returns the qubit-to-classical-slot wiring; a later
// measurement into the same slot wins, as it would on hardware.
func terminalMeasurements(c *Circuit) []measureMap {
	byClbit := make(map[int]int)
	for _, g := range c.Gates {
		if g.Name == OpMeasure {
			byClbit[g.Clbit] = g.Qubits[0]
		}
	}
	pairs := make([]measureMap, 0, len(byClbit))
	for cl, q := range byClbit {
		pairs = append(pairs, measureMap{qubit: q, clbit: cl})
	}
	return pairs
}

func countsKey(basis int, pairs []measureMap, clbits int) string {
	value := 0
	for _, p := range pairs {
		if basis&(1<<p.qubit) != 0 {
			value |= 1 << p.clbit
		}
	}
	return FormatBasisState(value, clbits)
}

func (b *SamplerBackend) Run(ctx context.Context, c *Circuit, opts ...RunOption) (*Result, error) {
	if err := checkRunnable(c, b.config.MaxQubits); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := RunOptions{Shots: b.config.Shots, Seed: b.config.Seed}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, options.Shots)
	}
	clbits := c.MeasuredClbits()
	if clbits == 0 {
		return nil, fmt.Errorf("%w: sampled run needs at least one measurement", ErrMalformedCircuit)
	}

	seed := options.Seed
	if seed == 0 {
		// Non-deterministic by request.
		seed = rand.Uint64() | 1
	}

	errnie.Info(
		"sampling %q - qubits %d, shots %d, seed %d",
		c.Name, c.NumQubits, options.Shots, seed,
	)

	start := time.Now()
	var (
		parts []map[string]int
		err   error
	)
	if c.requiresTrajectory() {
		parts, err = b.runTrajectories(ctx, c, options.Shots, seed, clbits)
	} else {
		parts, err = b.runTerminal(ctx, c, options.Shots, seed, clbits)
	}
	if err != nil {
		b.metrics.recordRun(RunRecord{Circuit: c.Name}, err)
		return nil, err
	}

	res := &Result{
		ID:       uuid.NewString(),
		Circuit:  c.Name,
		Backend:  b.Name(),
		Shots:    options.Shots,
		Counts:   mergeCounts(parts),
		Duration: time.Since(start),
	}
	b.metrics.recordRun(RunRecord{
		ID: res.ID, Circuit: c.Name, Backend: b.Name(), Shots: res.Shots,
		Duration: res.Duration, When: start,
	}, nil)
	return res, nil
}

// runTerminal is the fast path: one statevector pass, then multinomial
// sampling of the final distribution across the pool.
func (b *SamplerBackend) runTerminal(ctx context.Context, c *Circuit, shots int, seed uint64, clbits int) ([]map[string]int, error) {
	final, err := NewStateVector(c.NumQubits)
	if err != nil {
		return nil, err
	}
	for _, g := range c.Gates {
		if !g.IsUnitary() {
			continue
		}
		if err := final.Apply(g); err != nil {
			return nil, err
		}
	}
	pairs := terminalMeasurements(c)

	jobs := make([]ShardJob, 0, b.pool.Size())
	for i, size := range splitShots(shots, b.pool.Size()) {
		jobs = append(jobs, ShardJob{
			Index: i,
			Shots: size,
			Seed:  shardSeed(seed, i),
			Run: func(shots int, seed uint64) (map[string]int, error) {
				// SampleBasis only reads amplitudes, so shards share the
				// final state without copying.
				wf := NewWaveFunction(final, seed)
				counts := make(map[string]int)
				for s := 0; s < shots; s++ {
					counts[countsKey(wf.SampleBasis(), pairs, clbits)]++
				}
				return counts, nil
			},
		})
	}
	return b.pool.Execute(ctx, jobs)
}

// runTrajectories replays the circuit per shot, collapsing at measurements,
// so that gates after a measurement see the projected state.
func (b *SamplerBackend) runTrajectories(ctx context.Context, c *Circuit, shots int, seed uint64, clbits int) ([]map[string]int, error) {
	jobs := make([]ShardJob, 0, b.pool.Size())
	for i, size := range splitShots(shots, b.pool.Size()) {
		jobs = append(jobs, ShardJob{
			Index: i,
			Shots: size,
			Seed:  shardSeed(seed, i),
			Run: func(shots int, seed uint64) (map[string]int, error) {
				return runTrajectoryShard(c, shots, seed, clbits)
			},
		})
	}
	return b.pool.Execute(ctx, jobs)
}

func runTrajectoryShard(c *Circuit, shots int, seed uint64, clbits int) (map[string]int, error) {
	counts := make(map[string]int)
	wf := NewWaveFunction(nil, seed)

	for s := 0; s < shots; s++ {
		state, err := NewStateVector(c.NumQubits)
		if err != nil {
			return nil, err
		}
		// Fresh state per trajectory, continuous random stream per shard.
		wf.state = state

		creg := 0
		for _, g := range c.Gates {
			switch g.Name {
			case OpBarrier:
			case OpMeasure:
				if wf.Measure(g.Qubits[0]) == 1 {
					creg |= 1 << g.Clbit
				} else {
					creg &^= 1 << g.Clbit
				}
			default:
				if err := state.Apply(g); err != nil {
					return nil, err
				}
			}
		}
		counts[FormatBasisState(creg, clbits)]++
	}
	return counts, nil
}
