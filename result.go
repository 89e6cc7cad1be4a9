package qsim

import (
	"sort"
	"time"
)

// Outcome is one measurement bitstring with its observed count.
type Outcome struct {
	Label string
	Count int
}

/*
Result is what a backend run produces: a histogram of measurement outcomes
in shot mode, a statevector in exact mode, or both for exact runs of
measured circuits. Counts keys follow the usual convention of qubit 0 as the
rightmost character.
*/
type Result struct {
	ID       string
	Circuit  string
	Backend  string
	Shots    int
	Counts   map[string]int
	State    *StateVector
	Duration time.Duration
}

// TotalCounts sums every outcome count.
func (r *Result) TotalCounts() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}

// Probabilities converts counts into relative frequencies.
func (r *Result) Probabilities() map[string]float64 {
	total := r.TotalCounts()
	if total == 0 {
		return nil
	}
	probs := make(map[string]float64, len(r.Counts))
	for label, count := range r.Counts {
		probs[label] = float64(count) / float64(total)
	}
	return probs
}

// Top returns the k most frequent outcomes, ties broken by label so the
// ordering is stable across runs.
func (r *Result) Top(k int) []Outcome {
	outcomes := make([]Outcome, 0, len(r.Counts))
	for label, count := range r.Counts {
		outcomes = append(outcomes, Outcome{Label: label, Count: count})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].Count != outcomes[j].Count {
			return outcomes[i].Count > outcomes[j].Count
		}
		return outcomes[i].Label < outcomes[j].Label
	})
	if k > 0 && k < len(outcomes) {
		outcomes = outcomes[:k]
	}
	return outcomes
}

// mergeCounts folds partial histograms from sampling shards into one.
func mergeCounts(parts []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, part := range parts {
		for label, count := range part {
			merged[label] += count
		}
	}
	return merged
}
