package pepperjack

import "math"

// VideoMetadata describes the sampled video behind a frame cache.
type VideoMetadata struct {
	FrameWidth         int  `json:"frame_width"`
	FrameHeight        int  `json:"frame_height"`
	SampleStride       int  `json:"sample_delta"`
	TotalSampledFrames int  `json:"total_frames"`
	RawFrameCount      int  `json:"raw_frame_count"`
	SampleIntervalMs   int  `json:"sample_interval_ms"`
	FPS                Real `json:"fps"`
}

// sampleStride converts a sampling interval into a raw frame stride. A
// negative interval samples every frame.
func sampleStride(fps Real, intervalMs int) int {
	if intervalMs < 0 {
		return 1
	}
	return max(1, int(math.Round(fps/1000*Real(intervalMs))))
}

func totalSampledFrames(rawFrames, stride int) int {
	if stride <= 0 {
		stride = 1
	}
	return rawFrames/stride + 1
}
