package pepperjack

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// SaveRaw writes width and height as little-endian int32, then the RGB bytes
// row by row.
func (im *Image) SaveRaw(path string) error {
	if exp := im.Width * im.Height * 3; len(im.Pix) != exp {
		return fmt.Errorf("Pix length mismatch: got %d, expected %d (Width*Height*3)", len(im.Pix), exp)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(im.Width)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(im.Height)); err != nil {
		return err
	}
	if _, err := w.Write(im.Pix); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}
