package qsim

import (
	"sync"
	"time"
)

// RunRecord is one entry in a backend's execution history.
type RunRecord struct {
	ID       string
	Circuit  string
	Backend  string
	Shots    int
	Duration time.Duration
	When     time.Time
}

const defaultHistoryLimit = 100

/*
Metrics tracks backend executions and keeps a bounded history of runs,
mirroring the kind of per-session bookkeeping a demo driver wants to report
at the end (run count, total simulation time, what ran when).
*/
type Metrics struct {
	mu sync.RWMutex

	RunCount     int64
	TotalRunTime time.Duration
	Failures     int64

	history []RunRecord
	limit   int
}

func NewMetrics() *Metrics {
	return &Metrics{limit: defaultHistoryLimit}
}

func (m *Metrics) recordRun(rec RunRecord, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.Failures++
		return
	}
	m.RunCount++
	m.TotalRunTime += rec.Duration
	m.history = append(m.history, rec)
	if len(m.history) > m.limit {
		m.history = m.history[len(m.history)-m.limit:]
	}
}

// History returns a copy of the recorded runs, oldest first.
func (m *Metrics) History() []RunRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]RunRecord, len(m.history))
	copy(out, m.history)
	return out
}

// AverageRunTime is the mean duration across successful runs.
func (m *Metrics) AverageRunTime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.RunCount == 0 {
		return 0
	}
	return m.TotalRunTime / time.Duration(m.RunCount)
}

// Export flattens the metrics into a loggable map.
func (m *Metrics) Export() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg := time.Duration(0)
	if m.RunCount > 0 {
		avg = m.TotalRunTime / time.Duration(m.RunCount)
	}
	return map[string]any{
		"run_count":      m.RunCount,
		"failures":       m.Failures,
		"total_run_time": m.TotalRunTime.String(),
		"avg_run_time":   avg.String(),
	}
}
