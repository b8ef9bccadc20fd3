package dsdneo

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine's typed configuration, decomposed per spec.md §9
// from the teacher's single monolithic options struct into named
// sections, loaded from YAML with CLI-flag overrides applied on top (the
// same layering cmd/direwolf/main.go uses for its config file + pflag
// combination).
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Demod      DemodYAMLConfig  `yaml:"demod"`
	Trunking   TrunkingConfig   `yaml:"trunking"`
	Audio      AudioConfig      `yaml:"audio"`
	Logging    LoggingConfig    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

type InputConfig struct {
	Device     string `yaml:"device"`
	SampleRate int    `yaml:"sample_rate"`
	Format     string `yaml:"format"`
}

type DemodYAMLConfig struct {
	Mode            string  `yaml:"mode"`
	HalfbandStages  int     `yaml:"halfband_stages"`
	ResampleL       int     `yaml:"resample_l"`
	ResampleM       int     `yaml:"resample_m"`
	UseCQPSK        bool    `yaml:"use_cqpsk"`
	SquelchThreshold float64 `yaml:"squelch_threshold"`
}

type TrunkingConfig struct {
	Enabled       bool     `yaml:"enabled"`
	ControlChans  []uint64 `yaml:"control_channels"`
	HangTimeTicks int      `yaml:"hang_time_ticks"`
	CacheFile     string   `yaml:"cache_file"`
	DMRColorCode  int      `yaml:"dmr_color_code"`
}

type AudioConfig struct {
	Device     string `yaml:"device"`
	SampleRate int    `yaml:"sample_rate"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	EventFile string `yaml:"event_file"`
}

type TelemetryConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// DefaultConfig returns the engine's built-in defaults, applied before any
// YAML file or CLI flags are layered on top.
func DefaultConfig() Config {
	return Config{
		Input:   InputConfig{SampleRate: 2_400_000, Format: "u8"},
		Demod:   DemodYAMLConfig{Mode: "fm", HalfbandStages: 1, ResampleL: 1, ResampleM: 1, SquelchThreshold: 0.02},
		Trunking: TrunkingConfig{HangTimeTicks: 30, CacheFile: "dsdneo_cc.cache", DMRColorCode: 1},
		Audio:   AudioConfig{SampleRate: 48000},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfigFile reads a YAML config file on top of DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
