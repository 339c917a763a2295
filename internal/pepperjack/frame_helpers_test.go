package pepperjack

// solidFrame fills a frame with one stored-order color.
func solidFrame(width, height int, p Pixel) *Frame {
	f := NewFrame(width, height)
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i+0], f.Pix[i+1], f.Pix[i+2] = p[0], p[1], p[2]
	}
	return f
}

func (f *Frame) set(x, y int, p Pixel) {
	if !f.inside(x, y) {
		return
	}
	o := (y*f.Width + x) * 3
	f.Pix[o], f.Pix[o+1], f.Pix[o+2] = p[0], p[1], p[2]
}
