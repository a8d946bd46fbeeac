package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linechart/pkg/cache"
	"github.com/matzehuels/linechart/pkg/observability"
	"github.com/matzehuels/linechart/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		envFile string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [observations]",
		Short: "Serve charts and the render API over HTTP",
		Long: `Serve charts and the render API over HTTP.

With a dataset argument the interactive page is served at / and the static
chart at /chart.svg; both accept ?hover=<category>. The API is always
available:

  POST /api/render      render a JSON options body to one format
  POST /api/aggregate   aggregate a JSON observation list
  GET  /api/nearest?x=  nearest data point of the served dataset
  GET  /metrics         Prometheus metrics
  GET  /healthz         liveness probe

Environment (also read from --env-file):
  LINECHART_ADDR              listen address (default :8080)
  LINECHART_REDIS_URL         redis://host:port/db for a shared cache
  LINECHART_CACHE_TTL         maximum cache entry lifetime (default 168h)
  LINECHART_SHUTDOWN_TIMEOUT  graceful shutdown limit (default 10s)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			var dataset string
			if len(args) == 1 {
				dataset = args[0]
			}
			return c.runServe(cmd.Context(), newConsole(cmd.OutOrStdout()), cfg, dataset, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides LINECHART_ADDR)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache, metrics and router and serves until ctx ends.
func (c *CLI) runServe(ctx context.Context, out console, cfg serverConfig, dataset string, noCache bool) error {
	layoutCfg, err := loadConfig(c.ConfigPath)
	if err != nil {
		return err
	}

	store, err := c.serverCache(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "serve:"), c.Logger)
	defer runner.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	installPrometheusHooks(reg)
	defer observability.Reset()

	handler := newServer(serverOptions{
		Runner:    runner,
		Dataset:   dataset,
		Layout:    layoutCfg.Layout.WithDefaults(),
		PageTitle: layoutCfg.PageTitle,
		Gatherer:  reg,
		Logger:    c.Logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	out.success("Serving on %s", StyleLink.Render("http://"+displayAddr(cfg.Addr)))
	if dataset != "" {
		out.detail("Dataset: %s", dataset)
	}

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serverCache picks Redis when configured and the local file cache otherwise.
func (c *CLI) serverCache(ctx context.Context, cfg serverConfig, noCache bool) (cache.Cache, error) {
	var store cache.Cache
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case cfg.RedisURL != "":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		rc, err := cache.NewRedisCache(connectCtx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		store = rc
	default:
		fc, err := newCache(false)
		if err != nil {
			return nil, err
		}
		store = fc
	}
	if cfg.CacheTTL > 0 {
		store = cappedCache{Cache: store, max: cfg.CacheTTL}
	}
	return store, nil
}

// installPrometheusHooks routes every observability hook to metrics on reg.
func installPrometheusHooks(reg prometheus.Registerer) {
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	observability.SetInteractionHooks(hooks)
}

// cappedCache bounds every entry's lifetime by max.
type cappedCache struct {
	cache.Cache
	max time.Duration
}

func (c cappedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl == 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "" {
		return addr
	}
	return net.JoinHostPort("localhost", port)
}
