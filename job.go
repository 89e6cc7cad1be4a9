package qsim

// ShardJob is one slice of a sampling run: a number of shots to draw with a
// shard-specific seed. Shards are merged in index order, so the combined
// histogram is independent of goroutine scheduling.
type ShardJob struct {
	Index int
	Shots int
	Seed  uint64
	Run   func(shots int, seed uint64) (map[string]int, error)

	reply chan<- shardResult
}

type shardResult struct {
	index  int
	counts map[string]int
	err    error
}

// shardSeed derives a per-shard seed from the run seed. Any index-dependent
// injective mixing works; the golden-ratio increment keeps streams apart.
func shardSeed(seed uint64, index int) uint64 {
	return seed + uint64(index+1)*0x9e3779b97f4a7c15
}

// splitShots divides a shot budget into at most parts shards, each at least
// one shot, with the remainder spread over the leading shards.
func splitShots(shots, parts int) []int {
	if parts < 1 {
		parts = 1
	}
	if parts > shots {
		parts = shots
	}
	sizes := make([]int, parts)
	base := shots / parts
	rem := shots % parts
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}
