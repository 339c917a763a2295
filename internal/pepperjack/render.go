package pepperjack

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
)

// RenderOptions are the per-render inputs besides the video and its cache.
type RenderOptions struct {
	Geometry GeometryConfig
	// Output resolution; zero uses the source frame size.
	Width, Height int
	// Parallel workers; zero uses GOMAXPROCS.
	Workers int
}

// renderPlan is everything both strategies share: one projected point and
// one time index per output pixel, in manifold order. It is read-only once built.
type renderPlan struct {
	id       string
	meta     VideoMetadata
	manifold Manifold
	points   []ProjectedPoint
	times    []int
	view     *viewport
}

func newRenderPlan(meta VideoMetadata, opts RenderOptions) (*renderPlan, error) {
	w, h := opts.Width, opts.Height
	if w == 0 {
		w = meta.FrameWidth
	}
	if h == 0 {
		h = meta.FrameHeight
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: output resolution %dx%d", ErrConfiguration, w, h)
	}
	tr := BuildTransform(opts.Geometry)
	m := CreateManifold(w, h)
	points := Project(tr, m)
	times := make([]int, len(points))
	for i, p := range points {
		times[i] = timeIndex(p.Depth)
	}
	return &renderPlan{
		id:       uuid.NewString(),
		meta:     meta,
		manifold: m,
		points:   points,
		times:    times,
		view:     newViewport(w, h),
	}, nil
}

// composite writes pixel i from its already resolved frame.
func (rp *renderPlan) composite(i int, f *Frame) {
	sx, sy := sourcePixel(rp.points[i], rp.meta)
	x, y := rp.manifold.Pixel(i)
	rp.view.set(x, y, f.At(sx, sy).Reverse())
}

// Render runs the strategy selected by mode. Pass a mode already resolved
// with ResolveMode. On error no image is returned.
func Render(meta VideoMetadata, cache FrameCache, mode ExecutionMode, opts RenderOptions) (*Image, error) {
	switch mode {
	case Parallel:
		return RenderParallel(meta, cache, opts)
	case Sequential:
		return RenderSequential(meta, cache, opts)
	default:
		return nil, fmt.Errorf("%w: unknown execution mode %v", ErrConfiguration, mode)
	}
}

func workerCount(n int) int {
	if n > 0 {
		return n
	}
	return max(1, runtime.GOMAXPROCS(0))
}

func logDone(rp *renderPlan, mode ExecutionMode, start time.Time) {
	Logger.Info("render done",
		"run", rp.id,
		"mode", mode,
		"size", fmt.Sprintf("%dx%d", rp.view.w, rp.view.h),
		"elapsed", time.Since(start),
	)
}
