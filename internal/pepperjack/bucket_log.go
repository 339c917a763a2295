package pepperjack

import (
	"slices"
	"sync/atomic"

	"github.com/samber/lo"
)

// bucketByTime groups manifold indices by time index. Indices keep manifold
// order inside each bucket; the returned keys are ascending.
func bucketByTime(times []int) (map[int][]int, []int) {
	buckets := lo.GroupBy(lo.Range(len(times)), func(i int) int { return times[i] })
	keys := lo.Keys(buckets)
	slices.Sort(keys)
	return buckets, keys
}

// BucketStats is the pixel count per time index of one render.
type BucketStats struct {
	Times  []int
	Pixels []int
}

func bucketStats(times []int) BucketStats {
	buckets, keys := bucketByTime(times)
	s := BucketStats{Times: keys, Pixels: make([]int, len(keys))}
	for i, t := range keys {
		s.Pixels[i] = len(buckets[t])
	}
	return s
}

func (s BucketStats) log(run string) {
	for i, t := range s.Times {
		DebugLog("[%s] time index %d: %d pixels", run, t, s.Pixels[i])
	}
}

// progress logs roughly every 1% of total steps. Safe for concurrent use.
type progress struct {
	run   string
	total int64
	every int64
	done  atomic.Int64
}

func newProgress(run string, total int) *progress {
	every := int64(1)
	if total >= 100 {
		every = int64(total / 100)
	}
	return &progress{run: run, total: int64(total), every: every}
}

func (p *progress) step() {
	n := p.done.Add(1)
	if n%p.every == 0 || n == p.total {
		Logger.Debug("rendering", "run", p.run, "percent", float64(n)*100/float64(p.total))
	}
}
