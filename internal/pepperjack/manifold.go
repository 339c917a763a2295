package pepperjack

import "github.com/go-gl/mathgl/mgl64"

// Manifold holds one homogeneous coordinate (x, y, 0, 1) per viewport pixel,
// row-major: entry i is pixel (i % Width, i / Width).
type Manifold struct {
	Width, Height int
	Coords        []mgl64.Vec4
}

func CreateManifold(width, height int) Manifold {
	if width <= 0 || height <= 0 {
		return Manifold{}
	}
	coords := make([]mgl64.Vec4, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			coords = append(coords, mgl64.Vec4{Real(x), Real(y), 0, 1})
		}
	}
	return Manifold{Width: width, Height: height, Coords: coords}
}

func (m Manifold) Len() int { return len(m.Coords) }

// Pixel returns the viewport coordinate of entry i.
func (m Manifold) Pixel(i int) (x, y int) { return i % m.Width, i / m.Width }
