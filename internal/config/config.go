// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"mediaconform/internal/shared"
)

// Config holds the application's ambient configuration: everything that is
// not part of a single conform request (server, storage, media tooling,
// logging, result tokens).
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Jobs    JobsConfig    `toml:"jobs"`
	Logging LoggingConfig `toml:"logging"`
	Media   MediaConfig   `toml:"media"`
	JWT     JWTConfig     `toml:"jwt"`
	Resize  ResizeConfig  `toml:"resize"`

	JWTSecret              string `toml:"-"` // runtime secret, resolved from env/flag/file
	MaxSyncUploadSizeBytes int64  `toml:"-"` // runtime computed value, set by ParseAndValidate
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	MaxSyncUploadSize string `toml:"max_sync_upload_size"` // e.g. "8MB", "512KB"
}

// JobsConfig points at the job ledger's storage.
type JobsConfig struct {
	DatabasePath string `toml:"database_path"`
	TempRoot     string `toml:"temp_root"`
	OutputRoot   string `toml:"output_root"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// MediaConfig holds external renderer tooling paths.
type MediaConfig struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
}

// JWTConfig holds settings for signing result-retrieval tokens.
type JWTConfig struct {
	AccessDurationMin int    `toml:"access_duration_min"`
	Secret            string `toml:"secret"`
}

// ResizeConfig holds the width bands for each resizer strategy (spec §6:
// "photo: differs by feed; video: 480-720").
type ResizeConfig struct {
	PhotoGeneralMinWidth int `toml:"photo_general_min_width"`
	PhotoGeneralMaxWidth int `toml:"photo_general_max_width"`
	PhotoStoryMinWidth   int `toml:"photo_story_min_width"`
	PhotoStoryMaxWidth   int `toml:"photo_story_max_width"`
	VideoMinWidth        int `toml:"video_min_width"`
	VideoMaxWidth        int `toml:"video_max_width"`
	ThumbMinWidth        int `toml:"thumb_min_width"`
	ThumbMaxWidth        int `toml:"thumb_max_width"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the current configuration back to a TOML file. Used to
// persist an auto-generated JWT secret.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrorCreateFile, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrorEncodeFile, err)
	}
	return nil
}

// ApplyDefaults fills in zero-valued fields with the defaults a fresh
// installation needs to boot.
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Jobs.DatabasePath == "" {
		c.Jobs.DatabasePath = "mediaconform.db"
	}
	if c.Jobs.TempRoot == "" {
		c.Jobs.TempRoot = "tmp"
	}
	if c.Jobs.OutputRoot == "" {
		c.Jobs.OutputRoot = "output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.JWT.AccessDurationMin == 0 {
		c.JWT.AccessDurationMin = 5
	}
	if c.Resize.PhotoGeneralMinWidth == 0 {
		c.Resize.PhotoGeneralMinWidth = 320
	}
	if c.Resize.PhotoGeneralMaxWidth == 0 {
		c.Resize.PhotoGeneralMaxWidth = 1080
	}
	if c.Resize.PhotoStoryMinWidth == 0 {
		c.Resize.PhotoStoryMinWidth = 320
	}
	if c.Resize.PhotoStoryMaxWidth == 0 {
		c.Resize.PhotoStoryMaxWidth = 1080
	}
	if c.Resize.VideoMinWidth == 0 {
		c.Resize.VideoMinWidth = 480
	}
	if c.Resize.VideoMaxWidth == 0 {
		c.Resize.VideoMaxWidth = 720
	}
	if c.Resize.ThumbMinWidth == 0 {
		c.Resize.ThumbMinWidth = 150
	}
	if c.Resize.ThumbMaxWidth == 0 {
		c.Resize.ThumbMaxWidth = 320
	}
}

// ParseAndValidate applies defaults and resolves human-readable configuration
// strings (currently just the upload size) into runtime values. Call after
// ApplyDefaults, before the config is handed to the server.
func (c *Config) ParseAndValidate() error {
	c.ApplyDefaults()

	if c.Server.MaxSyncUploadSize == "" {
		c.Server.MaxSyncUploadSize = "8MB"
	}
	sizeBytes, err := shared.ParseSize(c.Server.MaxSyncUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_sync_upload_size: %w", err)
	}
	c.MaxSyncUploadSizeBytes = int64(sizeBytes)

	return nil
}
