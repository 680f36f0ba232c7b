// Currently the code uses simple if then statements for per-request flags. If
// more options are added, swapping to github.com/spf13/viper for the whole
// tree (not just the config file) could be helpful. For now, I like simplicity.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mediaconform/internal/api/handlers"
	"mediaconform/internal/audit"
	"mediaconform/internal/config"
	"mediaconform/internal/housekeeping"
	"mediaconform/internal/httpserver"
	"mediaconform/internal/jobs"
	"mediaconform/internal/logging"
	"mediaconform/internal/media"
	"mediaconform/internal/services"
	"mediaconform/internal/services/auth"
	"mediaconform/internal/storage"
)

// Version is set at build time via -ldflags; defaults to "dev" otherwise.
var Version = "dev"

type ServeOptions struct {
	Host string
	Port int
}

func NewServeCommand(globalOptions *GlobalOptions) *cobra.Command {
	serveOptions := &ServeOptions{}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(globalOptions, serveOptions)
		},
	}

	serveOptions.registerFlags(serveCmd)
	return serveCmd
}

func (options *ServeOptions) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&options.Host, "host", "", "Host for the HTTP server. (Env: MEDIACONFORM_HOST)")
	cmd.Flags().IntVar(&options.Port, "port", 0, "Port for the HTTP server. (Env: MEDIACONFORM_PORT)")
}

func serve(globalOptions *GlobalOptions, serveOptions *ServeOptions) error {
	cfg := globalOptions.Conf

	if v := os.Getenv("MEDIACONFORM_HOST"); v != "" && serveOptions.Host == "" {
		serveOptions.Host = v
	}
	if serveOptions.Host != "" {
		cfg.Server.Host = serveOptions.Host
	}
	if serveOptions.Port != 0 {
		cfg.Server.Port = serveOptions.Port
	}

	if cfg.JWTSecret == "" {
		if cfg.JWT.Secret != "" {
			logging.Log.Info("using JWT secret loaded from config file")
			cfg.JWTSecret = cfg.JWT.Secret
		} else {
			logging.Log.Info("generating new random JWT secret")
			newSecret, err := auth.GenerateSecret()
			if err != nil {
				return fmt.Errorf("failed to generate JWT secret: %w", err)
			}
			cfg.JWT.Secret = newSecret
			cfg.JWTSecret = newSecret
			if err := config.SaveConfig(globalOptions.CfgFilePath, cfg); err != nil {
				logging.Log.Warnf("failed to save new JWT secret to %s: %v", globalOptions.CfgFilePath, err)
			} else {
				logging.Log.Infof("new JWT secret saved to %s", globalOptions.CfgFilePath)
			}
		}
	}

	media.Initialize(cfg.Media.FFmpegPath, cfg.Media.FFprobePath)

	store, err := jobs.Open(cfg.Jobs.DatabasePath)
	if err != nil {
		return fmt.Errorf("open job ledger: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate job ledger: %w", err)
	}

	auditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)
	conformSvc := services.NewConformService(store, auditor, jobs.NewJobID)
	tokenSvc := auth.NewTokenService(cfg.JWTSecret, cfg.JWT.AccessDurationMin)

	h := handlers.NewHandlers(conformSvc, store, tokenSvc, cfg, Version, time.Now())
	router := httpserver.SetupRouter(h)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	hk := housekeeping.NewService(
		housekeeping.Dependencies{Ledger: store, Output: storage.JobOutputStore{TempRoot: cfg.Jobs.TempRoot}},
		housekeeping.Policy{},
		housekeeping.DefaultCheckInterval,
	)
	hk.Start()
	defer hk.Stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
		logging.Log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
