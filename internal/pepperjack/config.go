package pepperjack

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the optional TOML render configuration.
type Config struct {
	Geometry GeometryConfig `toml:"geometry"`
	Width    int            `toml:"width"`
	Height   int            `toml:"height"`
	Workers  int            `toml:"workers"`
	Mode     string         `toml:"mode"`
}

func DefaultConfig() *Config {
	return &Config{Geometry: DefaultGeometry(), Mode: Parallel.String()}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfiguration, path, err)
	}
	if cfg.Width < 0 || cfg.Height < 0 || cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: negative width/height/workers in %s", ErrConfiguration, path)
	}
	if _, err := ParseExecutionMode(cfg.Mode); err != nil {
		return nil, err
	}
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	DebugLog("Loaded config from %s: geometry=%+v, size=(%d, %d), workers=%d, mode=%s", path, cfg.Geometry, cfg.Width, cfg.Height, cfg.Workers, cfg.Mode)
	return cfg, nil
}

func (c *Config) renderOptions() RenderOptions {
	return RenderOptions{Geometry: c.Geometry, Width: c.Width, Height: c.Height, Workers: c.Workers}
}
