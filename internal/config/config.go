// Package config loads and saves claude-prune preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all claude-prune configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Analysis AnalysisConfig `toml:"analysis"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	ClaudeDir   string `toml:"claude_dir,omitempty"`
	DefaultKeep int    `toml:"default_keep"`
	Confirm     bool   `toml:"confirm"`
}

// AnalysisConfig holds the analysis thresholds. The defaults reproduce
// the standard segmentation and scoring behavior; override with care.
type AnalysisConfig struct {
	WindowSize       int `toml:"window_size"`
	MergeGap         int `toml:"merge_gap"`
	SetupTurns       int `toml:"setup_turns"`
	ScoreKeepMin     int `toml:"score_keep_min"`
	ScoreKeepPercent int `toml:"score_keep_percent"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultKeep: 20,
			Confirm:     true,
		},
		Analysis: AnalysisConfig{
			WindowSize:       10,
			MergeGap:         3,
			SetupTurns:       6,
			ScoreKeepMin:     10,
			ScoreKeepPercent: 20,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "claude-prune")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "claude-prune")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// ClaudeDir resolves the Claude data directory: the explicit override
// wins, then the config value, then ~/.claude.
func ClaudeDir(cfg Config, override string) string {
	if override != "" {
		return override
	}
	if cfg.General.ClaudeDir != "" {
		return cfg.General.ClaudeDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}
