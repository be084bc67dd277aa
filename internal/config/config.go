// Package config assembles runtime settings from defaults, an optional YAML
// file and environment variables, in that order of precedence (env wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Media engine.
	FFmpegPath      string `yaml:"ffmpeg_path"`
	AudioSampleRate int    `yaml:"audio_sample_rate"`

	// Chat model.
	Model        string   `yaml:"model"`
	BaseURL      string   `yaml:"base_url"`
	AllowedHosts []string `yaml:"allowed_hosts"`

	// Agent defaults.
	OutDir           string `yaml:"out_dir"`
	DefaultFrames    int    `yaml:"default_frames"`
	DefaultQuality   string `yaml:"default_quality"`
	EngineTimeoutSec int    `yaml:"engine_timeout_sec"`
}

func Default() Config {
	return Config{
		FFmpegPath:       "ffmpeg",
		AudioSampleRate:  22050,
		Model:            "google/gemini-2.5-pro",
		BaseURL:          "https://openrouter.ai",
		OutDir:           "saved_clips",
		DefaultFrames:    3,
		DefaultQuality:   "low",
		EngineTimeoutSec: 600,
	}
}

// Load returns the defaults overlaid with the YAML file at path, when path
// is non-empty. A missing file is an error; an empty path is not.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays the OPENROUTER_* and VIDAGENT_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("OPENROUTER_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("VIDAGENT_FFMPEG"); v != "" {
		c.FFmpegPath = v
	}
	if v := os.Getenv("VIDAGENT_OUT_DIR"); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv("VIDAGENT_ENGINE_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EngineTimeoutSec = n
		}
	}
}

func (c Config) Validate() error {
	if c.DefaultFrames <= 0 {
		return errors.New("default_frames must be > 0")
	}
	if c.AudioSampleRate <= 0 {
		return errors.New("audio_sample_rate must be > 0")
	}
	if c.EngineTimeoutSec < 0 {
		return errors.New("engine_timeout_sec must be >= 0")
	}
	switch c.DefaultQuality {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("default_quality must be low, medium or high, got %q", c.DefaultQuality)
	}
	return nil
}

func (c Config) EngineTimeout() time.Duration {
	return time.Duration(c.EngineTimeoutSec) * time.Second
}
