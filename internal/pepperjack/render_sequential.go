package pepperjack

import "time"

// frameMemo resolves each time index through the cache at most once and
// remembers failures as well as frames.
type frameMemo struct {
	cache  FrameCache
	frames map[int]*Frame
	errs   map[int]error
}

func newFrameMemo(cache FrameCache) *frameMemo {
	return &frameMemo{cache: cache, frames: map[int]*Frame{}, errs: map[int]error{}}
}

func (m *frameMemo) get(t int) (*Frame, error) {
	if f, ok := m.frames[t]; ok {
		return f, nil
	}
	if err, ok := m.errs[t]; ok {
		return nil, err
	}
	f, err := m.cache.Frame(t)
	if err != nil {
		m.errs[t] = err
		return nil, err
	}
	m.frames[t] = f
	return f, nil
}

// prefetch loads t if possible; the compositing never reads it, so a miss is not fatal.
func (m *frameMemo) prefetch(t int) {
	if _, err := m.get(t); err != nil {
		DebugLog("Prefetch of time index %d skipped: %v", t, err)
	}
}

// evictBelow drops frames no later bucket can need.
func (m *frameMemo) evictBelow(t int) {
	for k := range m.frames {
		if k < t {
			delete(m.frames, k)
		}
	}
}

// RenderSequential walks time buckets in ascending order on one goroutine.
func RenderSequential(meta VideoMetadata, cache FrameCache, opts RenderOptions) (*Image, error) {
	start := time.Now()
	rp, err := newRenderPlan(meta, opts)
	if err != nil {
		return nil, err
	}
	buckets, times := bucketByTime(rp.times)
	Logger.Info("frames hit", "run", rp.id, "times", times)
	if debug {
		bucketStats(rp.times).log(rp.id)
	}

	memo := newFrameMemo(cache)
	prog := newProgress(rp.id, len(times))
	for _, t := range times {
		f, err := memo.get(t)
		if err != nil {
			return nil, err
		}
		memo.prefetch(nextTimeIndex(t, meta.TotalSampledFrames))
		for _, i := range buckets[t] {
			rp.composite(i, f)
		}
		memo.evictBelow(t + 1)
		prog.step()
	}
	logDone(rp, Sequential, start)
	return rp.view.swapAxes(), nil
}
