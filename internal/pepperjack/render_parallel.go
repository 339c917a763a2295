package pepperjack

import (
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// frameTable maps a time index straight to its preloaded frame.
type frameTable struct {
	base  int
	slots []*Frame
}

func (ft *frameTable) lookup(t int) *Frame {
	j := t - ft.base
	if j < 0 || j >= len(ft.slots) {
		return nil
	}
	return ft.slots[j]
}

// preload resolves every required time index and its forward neighbour
// concurrently. Wait is the only barrier before the pixel phase: after it
// returns the table is complete and never written again.
func preload(rp *renderPlan, cache FrameCache, workers int) (*frameTable, error) {
	required := lo.Uniq(rp.times)
	slices.Sort(required)
	next := lo.Without(lo.Uniq(lo.Map(required, func(t int, _ int) int {
		return nextTimeIndex(t, rp.meta.TotalSampledFrames)
	})), required...)
	all := append(slices.Clone(required), next...)
	ft := &frameTable{base: lo.Min(all)}
	ft.slots = make([]*Frame, lo.Max(all)-ft.base+1)
	Logger.Info("frames hit", "run", rp.id, "times", required)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, t := range required {
		t := t
		g.Go(func() error {
			f, err := cache.Frame(t)
			if err != nil {
				return err
			}
			ft.slots[t-ft.base] = f
			return nil
		})
	}
	for _, t := range next {
		t := t
		g.Go(func() error {
			f, err := cache.Frame(t)
			if err != nil {
				DebugLog("Prefetch of time index %d skipped: %v", t, err)
				return nil
			}
			ft.slots[t-ft.base] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ft, nil
}

// renderTile composites one TileSize x TileSize block. It only reads shared
// state and only writes its own viewport cells.
func renderTile(rp *renderPlan, ft *frameTable, tx, ty int) {
	w, h := rp.manifold.Width, rp.manifold.Height
	x1, y1 := min((tx+1)*TileSize, w), min((ty+1)*TileSize, h)
	for y := ty * TileSize; y < y1; y++ {
		for x := tx * TileSize; x < x1; x++ {
			i := y*w + x
			t := timeIndex(rp.points[i].Depth)
			rp.composite(i, ft.lookup(t))
		}
	}
}

// RenderParallel preloads all frames, then renders tiles on a pool of goroutines.
func RenderParallel(meta VideoMetadata, cache FrameCache, opts RenderOptions) (*Image, error) {
	start := time.Now()
	rp, err := newRenderPlan(meta, opts)
	if err != nil {
		return nil, err
	}
	workers := workerCount(opts.Workers)
	ft, err := preload(rp, cache, workers)
	if err != nil {
		return nil, err
	}
	if debug {
		bucketStats(rp.times).log(rp.id)
	}

	tilesX := (rp.manifold.Width + TileSize - 1) / TileSize
	tilesY := (rp.manifold.Height + TileSize - 1) / TileSize
	tiles := tilesX * tilesY
	workers = min(workers, tiles)
	per, rem := tiles/workers, tiles%workers
	DebugLogOnce("Launching %d workers (tiles: %d each, +1 for first %d workers)", workers, per, rem)

	prog := newProgress(rp.id, tiles)
	var wg sync.WaitGroup
	wg.Add(workers)
	first := 0
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		go func(from, to int) {
			defer wg.Done()
			for k := from; k < to; k++ {
				renderTile(rp, ft, k%tilesX, k/tilesX)
				prog.step()
			}
		}(first, first+n)
		first += n
	}
	wg.Wait()
	logDone(rp, Parallel, start)
	return rp.view.swapAxes(), nil
}
