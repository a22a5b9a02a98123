// Package cmd contains the CLI commands for planctl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/plannery/plannery-go/internal/app"
	"github.com/plannery/plannery-go/internal/cache"
	"github.com/plannery/plannery-go/internal/clients/rest"
	"github.com/plannery/plannery-go/internal/platform/config"
	"github.com/plannery/plannery-go/internal/platform/health"
	"github.com/plannery/plannery-go/internal/platform/httpclient"
	"github.com/plannery/plannery-go/internal/platform/logging"
	"github.com/plannery/plannery-go/internal/platform/session"
	"github.com/plannery/plannery-go/internal/platform/telemetry"
	"github.com/plannery/plannery-go/internal/ports"
)

const telemetryFlushTimeout = 5 * time.Second

var (
	// Used for flags
	profile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "planctl - production planning API client",
	Long: `planctl talks to the production planning API: projects, venues,
mission templates, and mission tags.

Reads go through the same client cache the embedding applications use;
writes are sent directly and report the server's verdict.

Examples:
  # Store a session token for subsequent calls
  planctl session login --token <token>

  # List projects
  planctl project list

  # Create a project
  planctl project create --name "Summer Festival"

  # Check API availability
  planctl status`,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help by default
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "config profile (defaults to PLANNERY_PROFILE, else local)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")

	// Flush telemetry providers after the command finishes. No-op when
	// telemetry is disabled or newEnv was never called.
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if activeEnv == nil || activeEnv.shutdown == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		return activeEnv.shutdown(ctx)
	}
}

// activeEnv is the stack wired by the running command, kept for the
// post-run telemetry flush.
var activeEnv *env

// env is the wired client stack one command invocation works with.
type env struct {
	cfg       *config.Config
	logger    *slog.Logger
	session   *session.FileStore
	health    *health.Registry
	projects  *app.ProjectService
	venues    *app.VenueService
	templates *app.TemplateService
	tags      *app.TagService
	preloader *app.Preloader
	transport *httpclient.Client
	shutdown  func(context.Context) error
}

// newEnv loads config and wires the full client stack for one command.
// When telemetry is enabled in the profile, the OTEL providers are
// initialized here and the metric instruments flow into the transport
// client and the cache store.
func newEnv() (*env, error) {
	p := profile
	if p == "" {
		p = os.Getenv("PLANNERY_PROFILE")
	}
	if p == "" {
		p = "local"
	}

	cfg, err := config.Load(p)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if !verbose {
		level = "error"
	}
	logger := logging.New(level, cfg.Log.Format, os.Stderr)

	sess, err := session.Open(cfg.Session.TokenPath)
	if err != nil {
		return nil, err
	}

	var (
		metrics  *telemetry.Metrics
		shutdown func(context.Context) error
	)
	if cfg.Telemetry.Enabled {
		ctx := context.Background()
		tp, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Exporter, cfg.Telemetry.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		mp, err := telemetry.InitMeter(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Exporter, cfg.Telemetry.Endpoint)
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, fmt.Errorf("init meter: %w", err)
		}
		if metrics, err = telemetry.NewMetrics(mp); err != nil {
			_ = tp.Shutdown(ctx)
			_ = mp.Shutdown(ctx)
			return nil, fmt.Errorf("creating metric instruments: %w", err)
		}
		shutdown = func(ctx context.Context) error {
			return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
		}
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)

	do.Provide(injector, func(_ do.Injector) (*httpclient.Client, error) {
		return httpclient.New(&cfg.API, "planning-api", sess, metrics, logger), nil
	})
	do.Provide(injector, func(_ do.Injector) (*cache.Store, error) {
		opts := []cache.Option{
			cache.WithFreshness(cfg.Cache.Freshness),
			cache.WithRefreshAfter(cfg.Cache.RefreshAfter),
			cache.WithLogger(logger),
		}
		if metrics != nil {
			opts = append(opts, cache.WithMetrics(metrics))
		}
		return cache.New(opts...), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.ProjectsClient, error) {
		return rest.NewProjectsClient(do.MustInvoke[*httpclient.Client](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.VenuesClient, error) {
		return rest.NewVenuesClient(do.MustInvoke[*httpclient.Client](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.MissionTemplatesClient, error) {
		return rest.NewMissionTemplatesClient(do.MustInvoke[*httpclient.Client](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.MissionTagsClient, error) {
		return rest.NewMissionTagsClient(do.MustInvoke[*httpclient.Client](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (*app.ProjectService, error) {
		return app.NewProjectService(do.MustInvoke[*cache.Store](i), do.MustInvoke[ports.ProjectsClient](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (*app.VenueService, error) {
		return app.NewVenueService(do.MustInvoke[*cache.Store](i), do.MustInvoke[ports.VenuesClient](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (*app.TemplateService, error) {
		return app.NewTemplateService(do.MustInvoke[*cache.Store](i), do.MustInvoke[ports.MissionTemplatesClient](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (*app.TagService, error) {
		return app.NewTagService(do.MustInvoke[*cache.Store](i), do.MustInvoke[ports.MissionTagsClient](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (*app.Preloader, error) {
		return app.NewPreloader(
			do.MustInvoke[*app.ProjectService](i),
			do.MustInvoke[*app.VenueService](i),
			do.MustInvoke[*app.TemplateService](i),
			do.MustInvoke[*app.TagService](i),
			cfg.Cache.PreloadWorkers,
			logger,
		), nil
	})

	e := &env{cfg: cfg, logger: logger, session: sess, shutdown: shutdown}
	if e.transport, err = do.Invoke[*httpclient.Client](injector); err != nil {
		return nil, err
	}
	if e.projects, err = do.Invoke[*app.ProjectService](injector); err != nil {
		return nil, err
	}
	if e.venues, err = do.Invoke[*app.VenueService](injector); err != nil {
		return nil, err
	}
	if e.templates, err = do.Invoke[*app.TemplateService](injector); err != nil {
		return nil, err
	}
	if e.tags, err = do.Invoke[*app.TagService](injector); err != nil {
		return nil, err
	}
	if e.preloader, err = do.Invoke[*app.Preloader](injector); err != nil {
		return nil, err
	}

	e.health = health.New()
	e.health.Register(e.transport)

	activeEnv = e
	return e, nil
}

// strOrDash renders optional string fields in table output.
func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-2] + ".."
}
