package pepperjack

import "github.com/go-gl/mathgl/mgl64"

// Transform maps homogeneous viewport coordinates to homogeneous world coordinates.
type Transform struct {
	M mgl64.Mat4
}

func rotZ(deg Real) mgl64.Mat4 { return mgl64.HomogRotate3DZ(mgl64.DegToRad(deg)) }
func rotY(deg Real) mgl64.Mat4 { return mgl64.HomogRotate3DY(mgl64.DegToRad(deg)) }

// BuildTransform composes translation * rotZ * rotY, applied right to left to
// column vectors. It does not validate cfg.
func BuildTransform(cfg GeometryConfig) Transform {
	t := mgl64.Translate3D(cfg.Translate[0], cfg.Translate[1], cfg.Translate[2])
	M := t.Mul4(rotZ(cfg.ZRotationDeg)).Mul4(rotY(cfg.YRotationDeg))
	DebugLog("Transform for %+v:\n%v", cfg, M)
	return Transform{M: M}
}

// Apply returns M * v.
func (tr Transform) Apply(v mgl64.Vec4) mgl64.Vec4 { return tr.M.Mul4x1(v) }
