package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database     DatabaseConfig     `toml:"database"`
	YouTubeMusic YouTubeMusicConfig `toml:"youtube_music"`
	YouTube      YouTubeConfig      `toml:"youtube"`
	Feeds        FeedsConfig        `toml:"feeds"`
	Log          LogConfig          `toml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// YouTubeMusicConfig configures the shelf search backend.
type YouTubeMusicConfig struct {
	BaseURL           string  `toml:"base_url"`
	UserAgent         string  `toml:"user_agent"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	HL                string  `toml:"hl"`
	GL                string  `toml:"gl"`
	KeyMaxAgeHours    int     `toml:"key_max_age_hours"`
}

// Timeout returns the request timeout as a [time.Duration].
func (c YouTubeMusicConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// KeyMaxAge returns how long a cached key stays valid. Zero means forever.
func (c YouTubeMusicConfig) KeyMaxAge() time.Duration {
	return time.Duration(c.KeyMaxAgeHours) * time.Hour
}

// YouTubeConfig configures the video search backend.
type YouTubeConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Concurrency    int    `toml:"concurrency"`
	PerQuery       int    `toml:"per_query"`
	PageEnd        int    `toml:"page_end"`
}

// Timeout returns the request timeout as a [time.Duration].
func (c YouTubeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FeedsConfig configures the feed downloader.
type FeedsConfig struct {
	Binary string `toml:"binary"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // receives logs while the picker owns the terminal
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects values the services cannot work with.
func (c *Config) Validate() error {
	if c.YouTubeMusic.BaseURL == "" {
		return fmt.Errorf("%w: youtube_music.base_url is empty", ErrInvalidConfig)
	}
	if c.YouTube.BaseURL == "" {
		return fmt.Errorf("%w: youtube.base_url is empty", ErrInvalidConfig)
	}
	if c.YouTube.Concurrency < 0 || c.YouTube.PerQuery < 0 {
		return fmt.Errorf("%w: youtube limits must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
