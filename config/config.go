package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	MaxCount = 1 << 16
	MinCount = 1
)

const (
	DefaultType        = "uint8"
	DefaultCount       = 1
	DefaultFancy       = true
	DefaultLogLevel    = "info"
	DefaultTableBorder = true

	DefaultConfigFileName = "config.toml"
)

// DefaultConfigFile returns ~/.bitview/config.toml for the current home directory.
func DefaultConfigFile() string {
	return filepath.Join(smutil.GetUserHomeDirectory(), ".bitview", DefaultConfigFileName)
}

type Config struct {
	Type        string `mapstructure:"type"`
	Count       int    `mapstructure:"count"`
	Fancy       bool   `mapstructure:"fancy"`
	LogLevel    string `mapstructure:"log-level"`
	TableBorder bool   `mapstructure:"table-border"`
}

func DefaultConfig() *Config {
	return &Config{
		Type:        DefaultType,
		Count:       DefaultCount,
		Fancy:       DefaultFancy,
		LogLevel:    DefaultLogLevel,
		TableBorder: DefaultTableBorder,
	}
}

// Validate checks the fields that don't depend on the host kind registry.
func (cfg *Config) Validate() error {
	if cfg.Type == "" {
		return errors.New("invalid `Type`; expected: non-empty")
	}

	if cfg.Count < MinCount {
		return fmt.Errorf("invalid `Count`; expected: >= %d, given: %d", MinCount, cfg.Count)
	}

	if cfg.Count > MaxCount {
		return fmt.Errorf("invalid `Count`; expected: <= %d, given: %d", MaxCount, cfg.Count)
	}

	if _, err := cfg.Level(); err != nil {
		return fmt.Errorf("invalid `LogLevel`; expected: one of debug, info, warn, error, given: %v", cfg.LogLevel)
	}

	return nil
}

// Level returns the parsed log level.
func (cfg *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(cfg.LogLevel)
}

// Load builds the config from the defaults, overridden by the config file at
// path, overridden by the flags that were explicitly set. An empty path means
// DefaultConfigFile(), which may be missing; any other path must exist.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	vip := viper.New()

	def := DefaultConfig()
	vip.SetDefault("type", def.Type)
	vip.SetDefault("count", def.Count)
	vip.SetDefault("fancy", def.Fancy)
	vip.SetDefault("log-level", def.LogLevel)
	vip.SetDefault("table-border", def.TableBorder)

	if err := loadConfigFile(path, vip); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := vip.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadConfigFile(path string, vip *viper.Viper) error {
	optional := path == ""
	if optional {
		path = DefaultConfigFile()
	}
	path = smutil.GetCanonicalPath(path)

	if _, err := os.Stat(path); err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}
