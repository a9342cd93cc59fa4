package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Import struct {
		// MaxFileSizeMB bounds uploaded CSVs before they reach the parser.
		MaxFileSizeMB int `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
	} `mapstructure:"import" yaml:"import"`
}

// MaxFileSizeBytes returns the import size bound in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Import.MaxFileSizeMB) * 1024 * 1024
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config.yaml, then CASHCANVAS_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.cashcanvas")
	v.AddConfigPath(".cashcanvas")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CASHCANVAS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars when the file is unreadable.
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("database.path", "cashcanvas.db")
	v.SetDefault("import.max_file_size_mb", 10)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(strings.ToLower(config.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	switch strings.ToLower(config.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (expected 'text' or 'json')", config.Log.Format)
	}
	if config.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if config.Import.MaxFileSizeMB <= 0 {
		return fmt.Errorf("import max file size must be positive, got %d", config.Import.MaxFileSizeMB)
	}
	return nil
}
