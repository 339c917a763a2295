package pepperjack

import (
	"image/png"
	"os"
)

// SavePNG writes the image as an 8-bit lossless PNG.
func SavePNG(im *Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, im.NRGBA()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
