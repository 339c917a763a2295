package pepperjack

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// 4x3, 10 fps, 10 frames: a 200ms interval gives stride 2.
const tinyProbeJSON = `{"streams":[{"codec_type":"video","width":4,"height":3,"nb_frames":"10","avg_frame_rate":"10/1"}]}`

func sampleColor(k int) color.NRGBA { return color.NRGBA{R: uint8(10*k + 10), G: 5, B: 200, A: 255} }

// stubVideo replaces ffprobe with a canned answer and ffmpeg extraction with
// one that writes five solid samples. It returns the extraction call count.
func stubVideo(t *testing.T, probe string) *int {
	t.Helper()
	prevProbe, prevExtract := probeVideo, extractVideoFrames
	t.Cleanup(func() { probeVideo, extractVideoFrames = prevProbe, prevExtract })
	calls := 0
	probeVideo = func(string) (string, error) { return probe, nil }
	extractVideoFrames = func(_, dir string, stride int) error {
		calls++
		for k := 0; k < 5; k++ {
			writeSolidPNG(t, filepath.Join(dir, fmt.Sprintf(extractPattern, k)), 4, 3, sampleColor(k))
		}
		return renameSamples(dir, stride)
	}
	return &calls
}

func readChecksum(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ChecksumFile))
	require.NoError(t, err)
	return string(data)
}

func TestProcessVideo_BuildsThenReusesCache(t *testing.T) {
	calls := stubVideo(t, tinyProbeJSON)
	dir := filepath.Join(t.TempDir(), "cache")

	vc, err := ProcessVideo("clip.avi", dir, 200)
	require.NoError(t, err)
	meta := vc.Metadata()
	assert.Equal(t, 2, meta.SampleStride)
	assert.Equal(t, 6, meta.TotalSampledFrames)
	assert.Equal(t, 4, meta.FrameWidth)
	assert.Equal(t, 3, meta.FrameHeight)
	assert.Equal(t, 1, *calls)
	for _, n := range []int{0, 2, 4, 6, 8} {
		assert.FileExists(t, filepath.Join(dir, fmt.Sprintf("%d.jpg", n)))
	}
	assert.NoFileExists(t, filepath.Join(dir, "1.jpg"))
	assert.Contains(t, readChecksum(t, dir), cacheChecksum("clip.avi", 200, meta))

	_, err = ProcessVideo("clip.avi", dir, 200)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls, "matching check.json reuses the cache")

	vc, err = ProcessVideo("clip.avi", dir, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "a different interval regenerates the cache")
	assert.Contains(t, readChecksum(t, dir), cacheChecksum("clip.avi", 100, vc.Metadata()))
}

func TestProcessVideo_CorruptChecksum(t *testing.T) {
	calls := stubVideo(t, tinyProbeJSON)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ChecksumFile), []byte(`{oops`), 0o644))
	_, err := ProcessVideo("clip.avi", dir, 200)
	assert.ErrorIs(t, err, ErrInvalidCache)
	assert.Zero(t, *calls)
}

func TestProcessVideo_ProbeFailure(t *testing.T) {
	calls := stubVideo(t, tinyProbeJSON)
	boom := errors.New("no such file")
	probeVideo = func(string) (string, error) { return "", boom }
	_, err := ProcessVideo("clip.avi", t.TempDir(), 200)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, *calls)
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestRun_WritesTimeSlice(t *testing.T) {
	stubVideo(t, tinyProbeJSON)
	root := t.TempDir()
	prevRAW := RAW
	RAW = true
	t.Cleanup(func() { RAW = prevRAW })
	opts := Options{
		VideoPath:        "clip.avi",
		InputCachePath:   filepath.Join(root, "cache"),
		OutputCachePath:  filepath.Join(root, "out"),
		OutputPath:       filepath.Join(root, "slice.png"),
		ConfigPath:       writeConfig(t, "[geometry]\ny_rotation_deg = 0.0\ntranslate = [0.0, 0.0, 1.0]\n"),
		SampleIntervalMs: 200,
	}
	require.NoError(t, Run(opts))

	img := decodePNG(t, opts.OutputPath)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	// Depth 1 everywhere: every pixel comes from sample 1 (raw frame 2).
	want := sampleColor(1)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, want, color.NRGBAModel.Convert(img.At(x, y)), "(%d, %d)", x, y)
		}
	}
	assert.FileExists(t, filepath.Join(root, "slice.raw"))
	assert.NoDirExists(t, opts.OutputCachePath)
	assert.FileExists(t, filepath.Join(opts.InputCachePath, ChecksumFile))
}

func TestRun_MissingFrameClearsOutput(t *testing.T) {
	stubVideo(t, tinyProbeJSON)
	root := t.TempDir()
	opts := Options{
		VideoPath:        "clip.avi",
		InputCachePath:   filepath.Join(root, "cache"),
		OutputCachePath:  filepath.Join(root, "out"),
		OutputPath:       filepath.Join(root, "slice.png"),
		SampleIntervalMs: 200,
	}
	// Default depth 25 is past the six sampled frames.
	err := Run(opts)
	assert.ErrorIs(t, err, ErrFrameResolution)
	assert.NoFileExists(t, opts.OutputPath)
	assert.NoDirExists(t, opts.OutputCachePath)
}

func makeClip(t *testing.T, path string) {
	t.Helper()
	err := ffmpeg.Input("testsrc=size=16x8:rate=10:duration=1", ffmpeg.KwArgs{"f": "lavfi"}).
		Output(path, ffmpeg.KwArgs{"c:v": "mjpeg", "pix_fmt": "yuvj420p", "q:v": 3}).
		OverWriteOutput().
		Silent(true).
		Run()
	require.NoError(t, err)
}

func TestProcessVideo_FFmpeg(t *testing.T) {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not installed", bin)
		}
	}
	root := t.TempDir()
	clip := filepath.Join(root, "clip.avi")
	makeClip(t, clip)
	cache := filepath.Join(root, "cache")

	vc, err := ProcessVideo(clip, cache, 200)
	require.NoError(t, err)
	meta := vc.Metadata()
	assert.Equal(t, 16, meta.FrameWidth)
	assert.Equal(t, 8, meta.FrameHeight)
	assert.Equal(t, 2, meta.SampleStride)
	for _, n := range []int{0, 2, 4, 6, 8} {
		assert.FileExists(t, filepath.Join(cache, fmt.Sprintf("%d.jpg", n)))
	}
	assert.NoFileExists(t, filepath.Join(cache, "1.jpg"))
	assert.NoFileExists(t, filepath.Join(cache, fmt.Sprintf(extractPattern, 0)))

	prevExtract := extractVideoFrames
	t.Cleanup(func() { extractVideoFrames = prevExtract })
	extractVideoFrames = func(string, string, int) error {
		t.Error("cache should have been reused")
		return nil
	}
	_, err = ProcessVideo(clip, cache, 200)
	require.NoError(t, err)

	out := filepath.Join(root, "slice.png")
	require.NoError(t, Run(Options{
		VideoPath:        clip,
		InputCachePath:   cache,
		OutputCachePath:  filepath.Join(root, "out"),
		OutputPath:       out,
		ConfigPath:       writeConfig(t, "[geometry]\ntranslate = [0.0, 0.0, 2.0]\n"),
		SampleIntervalMs: 200,
	}))
	assert.Equal(t, image.Rect(0, 0, 16, 8), decodePNG(t, out).Bounds())
	assert.NoDirExists(t, filepath.Join(root, "out"))
}
