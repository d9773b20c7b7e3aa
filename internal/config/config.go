package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/brokerstatement/internal/ib"
)

// FileName is the config file looked up in the working directory.
const FileName = "brokerstatement.yaml"

// Config represents the top-level brokerstatement.yaml configuration.
type Config struct {
	Statement StatementConfig `yaml:"statement"`
	Import    ImportConfig    `yaml:"import"`
	Log       LogConfig       `yaml:"log"`
}

// StatementConfig controls statement parsing.
type StatementConfig struct {
	// NAVCurrency is the currency net asset value totals are reported in.
	NAVCurrency string `yaml:"nav_currency"`
}

// ImportConfig locates statement files for the import command.
type ImportConfig struct {
	Dir          string `yaml:"dir"`
	ProcessedDir string `yaml:"processed_dir"`
	Format       string `yaml:"format"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Load reads a brokerstatement.yaml file from disk. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Statement: StatementConfig{
			NAVCurrency: ib.DefaultNAVCurrency,
		},
		Import: ImportConfig{
			Dir:          "import",
			ProcessedDir: "import/processed",
			Format:       ib.Format,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
