package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Audio         AudioConfig         `yaml:"audio"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type AudioConfig struct {
	SampleRateHz int  `yaml:"sample_rate_hz"`
	Stereo       bool `yaml:"stereo"`
}

type TranscriptionConfig struct {
	LanguageCode        string `yaml:"language_code"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads and validates a YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a Config with defaults applied, for runs without a config file.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	if c.Audio.SampleRateHz < 0 {
		return fmt.Errorf("audio.sample_rate_hz must be positive")
	}
	if c.Audio.SampleRateHz == 0 {
		c.Audio.SampleRateHz = 16000
	}
	if c.Transcription.PollIntervalSeconds == 0 {
		c.Transcription.PollIntervalSeconds = 3
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
