package pepperjack

// Reference geometry and pipeline defaults.
const (
	ChB = 0 // channel order of decoded cache frames
	ChG = 1
	ChR = 2

	ZRotation  = 0
	YRotation  = -5
	TranslateX = 0
	TranslateY = 0
	TranslateZ = 25 // depth units per sampled frame; z is the time axis

	SampleIntervalMs = 100 // -1 samples every frame
	InputCachePath   = "video_cache"
	OutputCachePath  = "output_cache"
	OutputPath       = "timeslice.png"
	ChecksumFile     = "check.json"
	FrameExt         = ".jpg"

	TileSize      = 8 // pixels per side of one parallel unit of work
	NoParallelEnv = "PEPPERJACK_NO_PARALLEL"
	JPEGQScale    = 2 // ffmpeg qscale:v, lower is better
)
