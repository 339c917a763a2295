package pepperjack

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/h2non/filetype"
	xdraw "golang.org/x/image/draw"
)

// FrameCache resolves the decoded frame of one time index. Implementations
// apply their own sample stride; the render engine only passes time indices.
type FrameCache interface {
	Frame(t int) (*Frame, error)
}

// DiskCache reads frames written by ProcessVideo: <Dir>/<t*Stride>.jpg.
type DiskCache struct {
	Dir    string
	Stride int
	// Width and Height, when set, are the metadata frame size; decoded frames
	// of another size are rescaled to it.
	Width, Height int
}

func NewDiskCache(dir string, meta VideoMetadata) *DiskCache {
	return &DiskCache{Dir: dir, Stride: meta.SampleStride, Width: meta.FrameWidth, Height: meta.FrameHeight}
}

func framePath(dir string, t, stride int) string {
	return filepath.Join(dir, strconv.Itoa(t*stride)+FrameExt)
}

func (c *DiskCache) Path(t int) string { return framePath(c.Dir, t, c.Stride) }

func (c *DiskCache) Frame(t int) (*Frame, error) {
	path := c.Path(t)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FrameError{TimeIndex: t, Path: path, Err: err}
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, &FrameError{TimeIndex: t, Path: path, Err: fmt.Errorf("not an image (%s)", kind.MIME.Value)}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &FrameError{TimeIndex: t, Path: path, Err: err}
	}
	return frameFromNRGBA(c.normalize(img)), nil
}

// normalize returns img as NRGBA at the cache's metadata size.
func (c *DiskCache) normalize(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if c.Width > 0 && c.Height > 0 && (c.Width != w || c.Height != h) {
		DebugLog("Rescaling cached frame %dx%d -> %dx%d", w, h, c.Width, c.Height)
		dst := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		return dst
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
