package pepperjack

// timeIndex truncates depth toward zero.
func timeIndex(depth Real) int { return int(depth) }

// nextTimeIndex is the forward-adjacent sample, capped at total.
func nextTimeIndex(t, total int) int { return min(t+1, total) }

// clampCoord truncates v and clamps it into [0, limit]. The upper bound is the
// frame dimension itself, one past the last valid pixel; Frame.At returns the
// zero pixel there.
func clampCoord(v Real, limit int) int {
	c := int(v)
	if c < 0 {
		return 0
	}
	if c > limit {
		return limit
	}
	return c
}

// sourcePixel maps a projected point to the frame pixel it samples.
func sourcePixel(p ProjectedPoint, meta VideoMetadata) (x, y int) {
	return clampCoord(p.X, meta.FrameWidth), clampCoord(p.Y, meta.FrameHeight)
}
