package pepperjack

import "image"

// Frame is one decoded cache image. Pix keeps the cache's stored channel order
// (ChB, ChG, ChR) at (y*Width + x)*3. Frames are shared read-only once loaded.
type Frame struct {
	Width, Height int
	Pix           []uint8
}

func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
}

// frameFromNRGBA converts a decoded image into stored (B, G, R) order.
func frameFromNRGBA(img *image.NRGBA) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < f.Width; x++ {
			s := row[x*4:]
			o := (y*f.Width + x) * 3
			f.Pix[o+ChB] = s[2]
			f.Pix[o+ChG] = s[1]
			f.Pix[o+ChR] = s[0]
		}
	}
	return f
}

func (f *Frame) inside(x, y int) bool { return x >= 0 && y >= 0 && x < f.Width && y < f.Height }

// At returns the stored-order pixel at (x, y), or the zero pixel outside the frame.
func (f *Frame) At(x, y int) Pixel {
	if !f.inside(x, y) {
		return Pixel{}
	}
	o := (y*f.Width + x) * 3
	return Pixel{f.Pix[o], f.Pix[o+1], f.Pix[o+2]}
}

