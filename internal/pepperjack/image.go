package pepperjack

import "image"

// Image is the rendered output: Height rows of Width RGB pixels.
type Image struct {
	Width, Height int
	Pix           []uint8 // (y*Width + x)*3 + c
}

func (im *Image) At(x, y int) Pixel {
	o := (y*im.Width + x) * 3
	return Pixel{im.Pix[o], im.Pix[o+1], im.Pix[o+2]}
}

// NRGBA converts the image for the standard encoders.
func (im *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < im.Width; x++ {
			s := (y*im.Width + x) * 3
			d := x * 4
			row[d+0] = im.Pix[s+0]
			row[d+1] = im.Pix[s+1]
			row[d+2] = im.Pix[s+2]
			row[d+3] = 0xFF
		}
	}
	return out
}

// viewport is the render-time buffer, indexed by pixel x first:
// (x*h + y)*3 + c. Each cell is written by exactly one pixel.
type viewport struct {
	w, h int
	buf  []uint8
}

func newViewport(w, h int) *viewport {
	return &viewport{w: w, h: h, buf: make([]uint8, w*h*3)}
}

func (v *viewport) idx(x, y int) int { return (x*v.h + y) * 3 }

func (v *viewport) set(x, y int, p Pixel) {
	o := v.idx(x, y)
	v.buf[o], v.buf[o+1], v.buf[o+2] = p[0], p[1], p[2]
}

// swapAxes returns the (height, width) row-major image consumers expect.
func (v *viewport) swapAxes() *Image {
	im := &Image{Width: v.w, Height: v.h, Pix: make([]uint8, len(v.buf))}
	for x := 0; x < v.w; x++ {
		for y := 0; y < v.h; y++ {
			s := v.idx(x, y)
			d := (y*v.w + x) * 3
			copy(im.Pix[d:d+3], v.buf[s:s+3])
		}
	}
	return im
}
