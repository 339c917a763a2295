package pepperjack

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoCache is a directory of sampled frames extracted from one video.
type VideoCache struct {
	VideoPath string
	Dir       string
	meta      VideoMetadata
}

func (vc *VideoCache) Metadata() VideoMetadata { return vc.meta }

func (vc *VideoCache) FrameCache() *DiskCache { return NewDiskCache(vc.Dir, vc.meta) }

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	NbFrames     string `json:"nb_frames"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	Duration     string `json:"duration"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseRate parses ffprobe rates such as "30000/1001" or "25".
func parseRate(s string) Real {
	num, den, ok := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !ok {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// parseProbe extracts the first video stream's geometry, frame count and rate.
func parseProbe(data []byte) (VideoMetadata, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return VideoMetadata{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}
		fps := parseRate(s.AvgFrameRate)
		if fps <= 0 {
			fps = parseRate(s.RFrameRate)
		}
		frames, err := strconv.Atoi(s.NbFrames)
		if err != nil || frames <= 0 {
			dur := s.Duration
			if dur == "" {
				dur = out.Format.Duration
			}
			secs, _ := strconv.ParseFloat(dur, 64)
			frames = int(secs * fps)
		}
		if s.Width <= 0 || s.Height <= 0 || fps <= 0 || frames <= 0 {
			return VideoMetadata{}, fmt.Errorf("unusable video stream: %dx%d, %g fps, %d frames", s.Width, s.Height, fps, frames)
		}
		return VideoMetadata{FrameWidth: s.Width, FrameHeight: s.Height, RawFrameCount: frames, FPS: fps}, nil
	}
	return VideoMetadata{}, errors.New("no video stream found")
}

// cacheChecksum identifies the video and sampling a cache was built from.
func cacheChecksum(videoPath string, intervalMs int, meta VideoMetadata) string {
	parts := []string{
		videoPath,
		strconv.Itoa(intervalMs),
		strconv.Itoa(meta.RawFrameCount),
		strconv.Itoa(meta.FrameWidth),
		strconv.Itoa(meta.FrameHeight),
		strconv.FormatFloat(meta.FPS, 'f', -1, 64),
	}
	sum := md5.Sum([]byte(strings.Join(parts, " ")))
	return hex.EncodeToString(sum[:])
}

type checksumFile struct {
	Sum string `json:"sum"`
}

// cacheValid reports whether dir holds a cache with the given checksum. A
// checksum file that cannot be parsed is an error: the directory is not ours
// to regenerate.
func cacheValid(dir, sum string) (bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, ChecksumFile))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, fmt.Errorf("%w: %s: %v; clear the cache folder first", ErrInvalidCache, dir, err)
	}
	got, _ := raw["sum"].(string)
	return len(raw) == 1 && got == sum, nil
}

func writeChecksum(dir, sum string) error {
	data, err := json.Marshal(checksumFile{Sum: sum})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ChecksumFile), data, 0o644)
}

// Swapped in tests that run without ffmpeg.
var (
	probeVideo         = func(path string) (string, error) { return ffmpeg.Probe(path) }
	extractVideoFrames = extractFrames
)

// ProcessVideo probes videoPath and makes sure cacheDir holds every sampled
// frame as <rawFrameNumber>.jpg, reusing a cache whose checksum matches.
func ProcessVideo(videoPath, cacheDir string, intervalMs int) (*VideoCache, error) {
	probe, err := probeVideo(videoPath)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", videoPath, err)
	}
	meta, err := parseProbe([]byte(probe))
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", videoPath, err)
	}
	meta.SampleIntervalMs = intervalMs
	meta.SampleStride = sampleStride(meta.FPS, intervalMs)
	meta.TotalSampledFrames = totalSampledFrames(meta.RawFrameCount, meta.SampleStride)
	vc := &VideoCache{VideoPath: videoPath, Dir: cacheDir, meta: meta}
	Logger.Info("video probed",
		"path", videoPath,
		"size", fmt.Sprintf("%dx%d", meta.FrameWidth, meta.FrameHeight),
		"fps", meta.FPS,
		"frames", meta.RawFrameCount,
		"sample_delta", meta.SampleStride,
	)

	sum := cacheChecksum(videoPath, intervalMs, meta)
	ok, err := cacheValid(cacheDir, sum)
	if err != nil {
		return nil, err
	}
	if ok {
		Logger.Info("cache directory found, using generated cache", "dir", cacheDir)
		return vc, nil
	}
	Logger.Info("generating cache folder", "dir", cacheDir)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}
	if err := extractVideoFrames(videoPath, cacheDir, meta.SampleStride); err != nil {
		return nil, err
	}
	if err := writeChecksum(cacheDir, sum); err != nil {
		return nil, err
	}
	return vc, nil
}

const extractPattern = "sample_%d" + FrameExt

// extractFrames writes every stride-th frame, then renames the k-th sample to
// its raw frame number k*stride.
func extractFrames(videoPath, dir string, stride int) error {
	err := ffmpeg.Input(videoPath).
		Output(filepath.Join(dir, extractPattern), ffmpeg.KwArgs{
			"vf":           fmt.Sprintf("select=not(mod(n\\,%d))", stride),
			"vsync":        "0",
			"start_number": 0,
			"qscale:v":     JPEGQScale,
		}).
		OverWriteOutput().
		Silent(!debug).
		Run()
	if err != nil {
		return fmt.Errorf("extract frames from %s: %w", videoPath, err)
	}
	return renameSamples(dir, stride)
}

func renameSamples(dir string, stride int) error {
	for k := 0; ; k++ {
		src := filepath.Join(dir, fmt.Sprintf(extractPattern, k))
		err := os.Rename(src, framePath(dir, k, stride))
		if errors.Is(err, os.ErrNotExist) {
			DebugLog("Extracted %d samples into %s", k, dir)
			return nil
		}
		if err != nil {
			return err
		}
	}
}
