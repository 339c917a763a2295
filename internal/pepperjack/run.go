package pepperjack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options are the end-to-end pipeline inputs, usually filled from the CLI.
type Options struct {
	VideoPath        string
	InputCachePath   string
	OutputCachePath  string
	OutputPath       string
	ConfigPath       string
	SampleIntervalMs int
	CPUOnly          bool
}

func (o *Options) setDefaults() {
	if o.InputCachePath == "" {
		o.InputCachePath = InputCachePath
	}
	if o.OutputCachePath == "" {
		o.OutputCachePath = OutputCachePath
	}
	if o.OutputPath == "" {
		o.OutputPath = OutputPath
	}
}

// Run caches the video, renders the time slice and writes it to OutputPath.
// The output cache directory is removed afterwards, on failure too.
func Run(opts Options) error {
	opts.setDefaults()
	if opts.VideoPath == "" {
		return fmt.Errorf("%w: no video path", ErrConfiguration)
	}
	if opts.SampleIntervalMs == 0 {
		return fmt.Errorf("%w: sample interval must be non-zero, use -1 to sample every frame", ErrConfiguration)
	}
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := prepareOutputDir(opts.OutputCachePath); err != nil {
		return err
	}
	err = renderToFile(opts, cfg)
	if !Keep {
		if cerr := clearOutputDir(opts.OutputCachePath); cerr != nil {
			Logger.Warn("output cache cleanup failed", "dir", opts.OutputCachePath, "err", cerr)
		}
	}
	return err
}

func renderToFile(opts Options, cfg *Config) error {
	vc, err := ProcessVideo(opts.VideoPath, opts.InputCachePath, opts.SampleIntervalMs)
	if err != nil {
		return err
	}
	meta := vc.Metadata()
	Logger.Info("sample frame intervals", "sample_delta", meta.SampleStride)

	requested, err := ParseExecutionMode(cfg.Mode)
	if err != nil {
		return err
	}
	if opts.CPUOnly {
		requested = Sequential
	}
	mode, _ := ResolveMode(requested)

	img, err := Render(meta, vc.FrameCache(), mode, cfg.renderOptions())
	if err != nil {
		Logger.Error("an error has occurred while rendering", "err", err)
		return err
	}

	staged := filepath.Join(opts.OutputCachePath, "render.png")
	if err := SavePNG(img, staged); err != nil {
		return err
	}
	if RAW {
		raw := strings.TrimSuffix(opts.OutputPath, filepath.Ext(opts.OutputPath)) + ".raw"
		if err := img.SaveRaw(raw); err != nil {
			return err
		}
		DebugLog("Saved raw image: %s", raw)
	}
	if err := moveFile(staged, opts.OutputPath); err != nil {
		return err
	}
	Logger.Info("saved time slice", "path", opts.OutputPath, "size", fmt.Sprintf("%dx%d", img.Width, img.Height))
	return nil
}

// prepareOutputDir creates dir if missing; an existing dir must be empty.
func prepareOutputDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		Logger.Info("creating output path folder", "dir", dir)
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return err
	}
	if len(entries) != 0 {
		return fmt.Errorf("%w: %s", ErrOutputNotEmpty, dir)
	}
	return nil
}

// clearOutputDir removes the files the pipeline may leave in dir, then dir
// itself. Anything else keeps the directory alive.
func clearOutputDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".json", ".png", ".raw":
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	DebugLog("Removing %s", dir)
	return os.Remove(dir)
}

// moveFile renames src to dst, copying when they live on different devices.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
