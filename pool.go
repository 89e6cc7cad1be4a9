package qsim

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/theapemachine/errnie"
)

/*
SamplerPool fans shot shards out to a fixed set of workers and merges their
partial histograms. The pool is the only concurrent piece of the module:
workers share nothing, every shard owns its own seed, and results are
reassembled in shard order, so a seeded run is deterministic regardless of
how the scheduler interleaves the workers.
*/
type SamplerPool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	jobs    chan ShardJob
	metrics *Metrics
	size    int

	closeOnce sync.Once
}

// NewSamplerPool starts size workers; size <= 0 means one per CPU.
func NewSamplerPool(ctx context.Context, size int) *SamplerPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &SamplerPool{
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan ShardJob, size*2),
		metrics: NewMetrics(),
		size:    size,
	}

	for i := 0; i < size; i++ {
		w := &worker{pool: p}
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.run()
		}()
	}
	errnie.Info("sampler pool started with %d workers", size)

	return p
}

// Size returns the worker count.
func (p *SamplerPool) Size() int {
	return p.size
}

// Metrics exposes the pool's shard execution metrics.
func (p *SamplerPool) Metrics() *Metrics {
	return p.metrics
}

/*
Execute submits every shard, waits for all of them, and returns the partial
histograms ordered by shard index. The first shard error aborts the run,
after draining outstanding replies so no worker blocks on a dead channel.
*/
func (p *SamplerPool) Execute(ctx context.Context, jobs []ShardJob) ([]map[string]int, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	reply := make(chan shardResult, len(jobs))
	for i := range jobs {
		jobs[i].reply = reply
		select {
		case p.jobs <- jobs[i]:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.ctx.Done():
			return nil, fmt.Errorf("sampler pool closed: %w", p.ctx.Err())
		}
	}

	parts := make([]map[string]int, len(jobs))
	var firstErr error
	for received := 0; received < len(jobs); received++ {
		select {
		case res := <-reply:
			if res.err != nil && firstErr == nil {
				firstErr = res.err
			}
			parts[res.index] = res.counts
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.ctx.Done():
			return nil, fmt.Errorf("sampler pool closed: %w", p.ctx.Err())
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return parts, nil
}

// Close stops the workers and waits for them to drain. The jobs channel is
// left open so a straggling Execute fails on the cancelled context instead of
// panicking on a closed channel.
func (p *SamplerPool) Close() {
	p.closeOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}
