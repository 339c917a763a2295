package pepperjack

// ProjectedPoint is the world-space position of one manifold entry. Depth is
// the time axis.
type ProjectedPoint struct {
	X, Y, Depth Real
}

// Project applies tr to every manifold entry, keeping the order. The transform
// is affine, so w is dropped without a perspective divide.
func Project(tr Transform, m Manifold) []ProjectedPoint {
	out := make([]ProjectedPoint, len(m.Coords))
	for i, v := range m.Coords {
		w := tr.Apply(v)
		out[i] = ProjectedPoint{X: w.X(), Y: w.Y(), Depth: w.Z()}
	}
	return out
}
