package pepperjack

import (
	"fmt"
	"math"
)

type Real = float64

// GeometryConfig places the camera in world space. Translate[2] doubles as the
// depth offset of the viewport: the time index every unrotated pixel lands on.
type GeometryConfig struct {
	ZRotationDeg Real    `toml:"z_rotation_deg"`
	YRotationDeg Real    `toml:"y_rotation_deg"`
	Translate    [3]Real `toml:"translate"`
}

func DefaultGeometry() GeometryConfig {
	return GeometryConfig{
		ZRotationDeg: ZRotation,
		YRotationDeg: YRotation,
		Translate:    [3]Real{TranslateX, TranslateY, TranslateZ},
	}
}

// Validate is optional: BuildTransform never calls it.
func (g GeometryConfig) Validate() error {
	vals := []Real{g.ZRotationDeg, g.YRotationDeg, g.Translate[0], g.Translate[1], g.Translate[2]}
	for _, v := range vals {
		if !isFinite(v) {
			return fmt.Errorf("%w: non-finite geometry value in %+v", ErrConfiguration, g)
		}
	}
	if g.Translate[2] <= 0 {
		Logger.Warn("translate z is not positive, time will not advance away from the camera", "z", g.Translate[2])
	}
	return nil
}

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }
