package cli

import (
	"fmt"
	"os"

	"github.com/hupe1980/lfgbwt/persistence"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file. Flags override it.
type Config struct {
	// Compression is "none", "lz4" or "zstd".
	Compression string `yaml:"compression"`
	// Parallelism bounds concurrent row work; 0 selects GOMAXPROCS.
	Parallelism int `yaml:"parallelism"`
	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`

	S3    S3Config    `yaml:"s3"`
	MinIO MinIOConfig `yaml:"minio"`
}

// S3Config configures s3:// locations.
type S3Config struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Prefix   string `yaml:"prefix"`
}

// MinIOConfig configures minio:// locations.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Secure    bool   `yaml:"secure"`
	Prefix    string `yaml:"prefix"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Compression: persistence.CompressionZSTD.String(),
		LogLevel:    "info",
	}
}

// LoadConfig reads filename over the defaults. An empty filename returns
// the defaults.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// Validate checks the settings that can be checked without connecting.
func (c Config) Validate() error {
	if _, err := persistence.ParseCompression(c.Compression); err != nil {
		return err
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
