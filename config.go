package qsim

import "runtime"

// DefaultSeed is the canonical seed demos run with so that published figures
// are reproducible. A seed of 0 asks for a time-derived, non-repeatable run.
const DefaultSeed uint64 = 42

type Config struct {
	// MaxQubits caps backend capacity; circuits above it are rejected.
	MaxQubits int
	// Shots is the default sample count when a run does not specify one.
	Shots int
	// Seed is the default random seed; 0 means non-deterministic.
	Seed uint64
	// Workers sizes the sampling pool.
	Workers int
}

func NewConfig() *Config {
	return &Config{
		MaxQubits: 20,
		Shots:     1024,
		Seed:      DefaultSeed,
		Workers:   runtime.NumCPU(),
	}
}
