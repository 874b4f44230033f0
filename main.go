package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/applkanji/website/api"
	"github.com/applkanji/website/api/client"
	"github.com/applkanji/website/assets"
	"github.com/applkanji/website/config"
	"github.com/applkanji/website/contact"
	"github.com/applkanji/website/slideshow"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:           "applkanji",
	Short:         "Serve the APPLKANJI website",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the generated slideshow transition stylesheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return slideshow.WriteStylesheet(cmd.OutOrStdout())
	},
}

var checkURL string
var checkTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe a running site",
	RunE:  runCheck,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")

	checkCmd.Flags().StringVar(&checkURL, "url", "http://localhost:8080", "base URL of the site")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 10*time.Second, "time allowed for the health check")

	rootCmd.AddCommand(serveCmd, cssCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	library, err := assets.NewLibrary(cfg.AssetsDir, cfg.AssetScanInterval)
	if err != nil {
		return fmt.Errorf("failed to open asset library: %w", err)
	}

	var remoteSync *assets.RemoteSync
	if cfg.RemoteSyncEnabled() {
		s3Store, err := assets.NewS3Store(ctx, cfg.AWSProfile, cfg.S3Bucket)
		if err != nil {
			return fmt.Errorf("failed to initialize remote assets: %w", err)
		}
		remoteSync = assets.NewRemoteSync(s3Store, library, cfg.S3SyncInterval)
		slog.Info("mirroring assets from s3", "bucket", cfg.S3Bucket, "dir", cfg.AssetsDir)
	}

	sessionKey, err := cfg.SessionKey()
	if err != nil {
		return err
	}

	webServer, err := api.NewWebServer(api.Options{
		Library:       library,
		RemoteSync:    remoteSync,
		Submitter:     contact.Simulated{Delay: cfg.ContactDelay},
		SlideInterval: cfg.SlideInterval,
		MaxViewers:    cfg.MaxViewers,
		SessionKey:    sessionKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize web server: %w", err)
	}

	return webServer.Start(ctx, cfg.Addr)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	sc := client.NewSiteClient(checkURL)

	health, err := sc.Health(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("site reported status %q", health.Status)
	}

	state, err := sc.SlideshowState(ctx)
	if err != nil {
		return fmt.Errorf("slideshow check failed: %w", err)
	}
	if len(state.Slides) == 0 {
		return errors.New("slideshow has no slides")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "status:    %s\n", health.Status)
	fmt.Fprintf(out, "slides:    %d (every %s)\n", len(state.Slides), time.Duration(state.IntervalMillis)*time.Millisecond)
	fmt.Fprintf(out, "viewers:   %d\n", health.Viewers)
	fmt.Fprintf(out, "assets:    %d\n", health.Assets)
	fmt.Fprintf(out, "languages: %v\n", health.Languages)
	return nil
}
