// filepath: internal/cli/config_loader.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mediaconform/internal/config"
	"mediaconform/internal/logging"
)

// Flags available on every subcommand (persistent) or the serve command
// (overlaid onto the file-loaded config by applyOverrides).
var (
	ffmpegPath    string
	ffprobePath   string
	jwtSecret     string
	maxSyncUpload string
	auditEnabled  bool
)

func registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&ffmpegPath, "ffmpeg-path", "", "Path to ffmpeg executable. (Env: MEDIACONFORM_FFMPEG_PATH)")
	cmd.PersistentFlags().StringVar(&ffprobePath, "ffprobe-path", "", "Path to ffprobe executable. (Env: MEDIACONFORM_FFPROBE_PATH)")
	cmd.PersistentFlags().StringVar(&jwtSecret, "jwt-secret", "", "Secret key for signing result-retrieval tokens. (Env: MEDIACONFORM_JWT_SECRET)")
	cmd.PersistentFlags().StringVar(&maxSyncUpload, "max-sync-upload", "", "Max size for synchronous/in-memory uploads (e.g. '8MB'). (Env: MEDIACONFORM_MAX_SYNC_UPLOAD)")
	cmd.PersistentFlags().BoolVar(&auditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: MEDIACONFORM_AUDIT_ENABLED=true)")
}

// initializeConfig loads the base TOML file through viper (so a future
// --watch flag can rely on viper's file-change notifications without
// reworking this function), overlays environment variables and flags, then
// validates the result and boots logging.
func initializeConfig(cmd *cobra.Command, globalOptions *GlobalOptions) error {
	if globalOptions.CfgFilePath == "" {
		globalOptions.CfgFilePath = "config.toml"
	}
	cfgPath := globalOptions.CfgFilePath
	if envPath := os.Getenv("MEDIACONFORM_CONFIG_PATH"); envPath != "" && cfgPath == "config.toml" {
		cfgPath = envPath
	}

	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("toml")

	var cfg config.Config
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgPath, err)
		}
		// no config file: proceed with an empty config, filled by defaults below
	} else if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse configuration from %s: %w", cfgPath, err)
	}

	applyOverrides(&cfg, cmd, globalOptions)

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	level := globalOptions.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logging.Init(level)
	goose.SetLogger(logging.Log)

	globalOptions.Conf = &cfg
	globalOptions.Logger = logging.Log
	return nil
}

func applyOverrides(c *config.Config, cmd *cobra.Command, globalOptions *GlobalOptions) {
	getEnv := func(key string) string { return os.Getenv(key) }

	// --- Environment variables ---
	if v := getEnv("MEDIACONFORM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("MEDIACONFORM_AUDIT_ENABLED"); v != "" {
		c.Logging.AuditEnabled = strings.EqualFold(v, "true")
	}
	if v := getEnv("MEDIACONFORM_FFMPEG_PATH"); v != "" {
		c.Media.FFmpegPath = v
	}
	if v := getEnv("MEDIACONFORM_FFPROBE_PATH"); v != "" {
		c.Media.FFprobePath = v
	}
	if v := getEnv("MEDIACONFORM_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := getEnv("MEDIACONFORM_MAX_SYNC_UPLOAD"); v != "" {
		c.Server.MaxSyncUploadSize = v
	}

	// --- CLI flags (take precedence over env) ---
	if globalOptions.LogLevel != "" {
		c.Logging.Level = globalOptions.LogLevel
	}
	if cmd.Flags().Changed("audit-enabled") {
		c.Logging.AuditEnabled = auditEnabled
	}
	if ffmpegPath != "" {
		c.Media.FFmpegPath = ffmpegPath
	}
	if ffprobePath != "" {
		c.Media.FFprobePath = ffprobePath
	}
	if jwtSecret != "" {
		c.JWTSecret = jwtSecret
	}
	if maxSyncUpload != "" {
		c.Server.MaxSyncUploadSize = maxSyncUpload
	}
}
