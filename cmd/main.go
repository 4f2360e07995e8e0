package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"botdash/internal/config"
	"botdash/internal/infrastructure"
	"botdash/internal/interfaces/http"
	"botdash/internal/logging"
	"botdash/internal/usecases"
)

const version = "0.3.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "dashboard",
		Usage:   "Operator dashboard API for WhatsApp storefront bots",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from yaml `FILE` (environment only when empty)",
				EnvVars: []string{"DASHBOARD_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "dataset",
				Usage: "Read tenant fixtures from `DIR` instead of the bundled ones",
			},
			&cli.StringFlag{
				Name:  "now",
				Usage: "Reference time for today/this-week figures (RFC 3339)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			reportCommand(),
		},
	}
}

type services struct {
	cfg       *config.Config
	log       zerolog.Logger
	dashboard *usecases.DashboardUsecase
}

// bootstrap loads config, applies global flag overrides and builds the store.
func bootstrap(c *cli.Context) (*services, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if dir := c.String("dataset"); dir != "" {
		cfg.Dataset.Dir = dir
	}
	if now := c.String("now"); now != "" {
		cfg.Dashboard.Now = now
		if _, err := cfg.ReferenceTime(); err != nil {
			return nil, err
		}
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	store, err := infrastructure.NewDatasetStore(cfg.Dataset.Dir, log)
	if err != nil {
		return nil, err
	}
	return &services{
		cfg:       cfg,
		log:       log,
		dashboard: usecases.NewDashboardUsecase(store, cfg.Clock(), cfg.Dashboard.FeedLimit),
	}, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Action: func(c *cli.Context) error {
			rt, err := bootstrap(c)
			if err != nil {
				return err
			}
			return serve(c.Context, rt)
		},
	}
}

func serve(ctx context.Context, rt *services) error {
	gin.SetMode(rt.cfg.HTTP.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())

	limiter := infrastructure.NewClientRateLimiter(rt.cfg.HTTP.RateLimit, rt.cfg.HTTP.Burst, 10*time.Minute)
	middleware := http.NewMiddleware(limiter, rt.log)
	http.SetupRoutes(r, rt.dashboard, middleware, rt.log, http.RouterOptions{MaxBodyBytes: rt.cfg.HTTP.MaxBodyBytes})

	srv := &stdhttp.Server{
		Addr:              rt.cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		rt.log.Info().Str("addr", srv.Addr).Str("env", rt.cfg.Env).Msg("dashboard API listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	rt.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print a tenant's dashboard summary and recent activity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "tenant",
				Aliases:  []string{"t"},
				Usage:    "Tenant `SLUG`",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := bootstrap(c)
			if err != nil {
				return err
			}
			view, err := rt.dashboard.Dashboard(c.String("tenant"))
			if err != nil {
				return err
			}
			return writeReport(c.App.Writer, view)
		},
	}
}
