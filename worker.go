package qsim

import (
	"fmt"
	"log"
	"time"
)

// worker drains shard jobs from the pool until the pool shuts down.
type worker struct {
	pool *SamplerPool
}

func (w *worker) run() {
	for {
		select {
		case <-w.pool.ctx.Done():
			return
		case job, ok := <-w.pool.jobs:
			if !ok {
				return
			}
			w.process(job)
		}
	}
}

func (w *worker) process(job ShardJob) {
	start := time.Now()

	counts, err := w.execute(job)
	if err != nil {
		log.Printf("sampling shard %d failed: %v", job.Index, err)
	}
	w.pool.metrics.recordRun(RunRecord{
		ID:       fmt.Sprintf("shard-%d", job.Index),
		Shots:    job.Shots,
		Duration: time.Since(start),
		When:     start,
	}, err)

	select {
	case job.reply <- shardResult{index: job.Index, counts: counts, err: err}:
	case <-w.pool.ctx.Done():
	}
}

func (w *worker) execute(job ShardJob) (counts map[string]int, err error) {
	// A panicking kernel must not take the whole pool down; surface it as a
	// backend error on this shard instead.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: shard %d panicked: %v", ErrMalformedCircuit, job.Index, r)
		}
	}()
	return job.Run(job.Shots, job.Seed)
}
