package pepperjack

// Pixel is one 3-channel color.
type Pixel [3]uint8

// Reverse swaps the first and last channels (BGR <-> RGB).
func (p Pixel) Reverse() Pixel { return Pixel{p[2], p[1], p[0]} }
