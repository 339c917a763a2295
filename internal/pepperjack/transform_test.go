package pepperjack

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVec4(t *testing.T, want, got mgl64.Vec4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "component %d of %v", i, got)
	}
}

func assertMat4(t *testing.T, want, got mgl64.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "entry %d of %v", i, got)
	}
}

func TestBuildTransform_PureDepthShift(t *testing.T) {
	tr := BuildTransform(GeometryConfig{Translate: [3]Real{0, 0, 7.25}})
	want := mgl64.Translate3D(0, 0, 7.25)
	assertMat4(t, want, tr.M)
}

func TestBuildTransform_DefaultGeometry(t *testing.T) {
	tr := BuildTransform(DefaultGeometry())
	a := -5 * math.Pi / 180
	assert.InDelta(t, math.Cos(a), tr.M.At(0, 0), 1e-12)
	assert.InDelta(t, math.Sin(a), tr.M.At(0, 2), 1e-12)
	assert.InDelta(t, -math.Sin(a), tr.M.At(2, 0), 1e-12)
	assert.InDelta(t, 25.0, tr.M.At(2, 3), 1e-12)
	assert.Equal(t, mgl64.Vec4{0, 0, 0, 1}, tr.M.Row(3))
}

func TestBuildTransform_RotatesBeforeTranslating(t *testing.T) {
	tr := BuildTransform(GeometryConfig{ZRotationDeg: 90, Translate: [3]Real{1, 0, 0}})
	o := tr.Apply(mgl64.Vec4{1, 0, 0, 1})
	// (1,0,0) -> rotZ 90 -> (0,1,0) -> +(1,0,0)
	assertVec4(t, mgl64.Vec4{1, 1, 0, 1}, o)
}

func TestBuildTransform_YRotationTiltsIntoDepth(t *testing.T) {
	tr := BuildTransform(GeometryConfig{YRotationDeg: 90})
	o := tr.Apply(mgl64.Vec4{1, 0, 0, 1})
	assertVec4(t, mgl64.Vec4{0, 0, -1, 1}, o)
}

func TestBuildTransform_RotationIsOrthonormal(t *testing.T) {
	tr := BuildTransform(GeometryConfig{ZRotationDeg: 33, YRotationDeg: -71})
	R := tr.M
	P := R.Transpose().Mul4(R)
	assertMat4(t, mgl64.Ident4(), P)
}

func TestGeometryValidate(t *testing.T) {
	assert.NoError(t, DefaultGeometry().Validate())
	g := DefaultGeometry()
	g.YRotationDeg = math.NaN()
	assert.ErrorIs(t, g.Validate(), ErrConfiguration)
	g = DefaultGeometry()
	g.Translate[0] = math.Inf(1)
	assert.ErrorIs(t, g.Validate(), ErrConfiguration)
}
