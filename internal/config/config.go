package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// NormalizerConfig selects the linguistic normalization steps.
type NormalizerConfig struct {
	Language       string   `yaml:"language"`
	Segmenter      string   `yaml:"segmenter"`
	Stemmer        string   `yaml:"stemmer"`
	Stopwords      string   `yaml:"stopwords"`
	ExtraStopwords []string `yaml:"extra_stopwords,omitempty"`
	FoldDiacritics *bool    `yaml:"fold_diacritics,omitempty"`
	MinTermLength  int      `yaml:"min_term_length"`
}

// SummarizerConfig tunes sentence selection.
type SummarizerConfig struct {
	Weight  *float64 `yaml:"weight,omitempty"`
	Workers int      `yaml:"workers"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// UIConfig toggles the terminal viewer.
type UIConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Log        LogConfig        `yaml:"log"`
	UI         UIConfig         `yaml:"ui"`
}

// SummaryWeight returns the configured weight, 1.0 when unset.
func (c *AppConfig) SummaryWeight() float64 {
	if c.Summarizer.Weight == nil {
		return 1.0
	}
	return *c.Summarizer.Weight
}

// UIEnabled reports whether the terminal viewer should start.
func (c *AppConfig) UIEnabled() bool {
	return c.UI.Enabled == nil || *c.UI.Enabled
}

// FoldDiacritics reports whether accents are stripped from terms.
func (c *AppConfig) FoldDiacritics() bool {
	return c.Normalizer.FoldDiacritics == nil || *c.Normalizer.FoldDiacritics
}

// Validate rejects values the pipeline cannot run with.
func (c *AppConfig) Validate() error {
	switch c.Normalizer.Segmenter {
	case "punkt", "regex":
	default:
		return fmt.Errorf("unknown segmenter: %s", c.Normalizer.Segmenter)
	}
	switch c.Normalizer.Stemmer {
	case "snowball", "none":
	default:
		return fmt.Errorf("unknown stemmer: %s", c.Normalizer.Stemmer)
	}
	switch c.Normalizer.Stopwords {
	case "default", "none":
	default:
		return fmt.Errorf("unknown stopword list: %s", c.Normalizer.Stopwords)
	}
	if c.Normalizer.Stopwords == "default" && c.Normalizer.Language != "english" {
		return fmt.Errorf("normalizer.stopwords default is english only, got language %s", c.Normalizer.Language)
	}
	w := c.SummaryWeight()
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("summarizer.weight must be a finite number >= 0, got %v", w)
	}
	if c.Summarizer.Workers < 0 {
		return fmt.Errorf("summarizer.workers must be >= 0, got %d", c.Summarizer.Workers)
	}
	return nil
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			if err := applyEnv(cfg); err != nil {
				return nil, err
			}
			return cfg, cfg.Validate()
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.Validate()
}

// LoadDefault tries ./config.yaml first, then ~/.config/extsum/config.yaml.
// If neither exists, it writes defaults to ~/.config/extsum/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, cfg.Validate()
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "extsum", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	weight := 1.0
	fold := true
	return &AppConfig{
		Normalizer: NormalizerConfig{
			Language:       "english",
			Segmenter:      "punkt",
			Stemmer:        "snowball",
			Stopwords:      "default",
			FoldDiacritics: &fold,
			MinTermLength:  1,
		},
		Summarizer: SummarizerConfig{Weight: &weight},
		Log:        LogConfig{Level: "info"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Normalizer.Language == "" {
		cfg.Normalizer.Language = "english"
	}
	if cfg.Normalizer.Segmenter == "" {
		cfg.Normalizer.Segmenter = "punkt"
	}
	if cfg.Normalizer.Stemmer == "" {
		cfg.Normalizer.Stemmer = "snowball"
	}
	if cfg.Normalizer.Stopwords == "" {
		cfg.Normalizer.Stopwords = "default"
	}
	if cfg.Normalizer.MinTermLength == 0 {
		cfg.Normalizer.MinTermLength = 1
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// applyEnv lets EXTSUM_WEIGHT and EXTSUM_LOG_LEVEL override the file.
func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("EXTSUM_WEIGHT"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("EXTSUM_WEIGHT: %w", err)
		}
		cfg.Summarizer.Weight = &w
	}
	if v := os.Getenv("EXTSUM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
