package cli

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowter/internal/server"
	"github.com/matzehuels/flowter/pkg/observability/metrics"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr           string
		noMetrics      bool
		noCache        bool
		maxBodyBytes   int64
		requestTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render pipeline over HTTP",
		Long: `Serve the layout and render pipeline over HTTP.

Endpoints:
  POST /v1/layout                     JSON geometry
  POST /v1/render?format=svg|png|pdf  rendered chart
  POST /v1/export?format=dot|mermaid  topology export
  GET  /healthz                       liveness
  GET  /metrics                       Prometheus metrics

Post the document as the request body; set Content-Type to application/json,
application/yaml or application/toml, or pass ?input=json|yaml|toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("no-metrics") {
				cfg.Metrics = !noMetrics
			}
			if cmd.Flags().Changed("max-body-bytes") {
				cfg.MaxBodyBytes = maxBodyBytes
			}
			if cmd.Flags().Changed("request-timeout") {
				cfg.RequestTimeout = Duration{requestTimeout}
			}
			return c.runServe(cmd, cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().Int64Var(&maxBodyBytes, "max-body-bytes", server.DefaultMaxBodyBytes, "largest accepted document")
	cmd.Flags().DurationVar(&requestTimeout, "request-timeout", server.DefaultRequestTimeout, "per-request pipeline timeout")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, cfg ServerConfig, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	scfg := server.Config{
		Addr:           cfg.Addr,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout.Duration,
		Logger:         c.Logger,
	}
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics.New(reg).Register()
		scfg.Gatherer = reg
	}

	srv := server.New(runner, scfg)
	printInfo("Serving %s", appName)
	printKeyValue("Address", StyleLink.Render("http://"+displayAddr(srv.Addr())))
	printKeyValue("Cache", cacheLabel(c.Config.Cache, noCache))
	if cfg.Metrics {
		printKeyValue("Metrics", "/metrics")
	}
	printNewline()
	return srv.ListenAndServe(ctx)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// cacheLabel describes the active cache backend for display.
func cacheLabel(cfg CacheConfig, noCache bool) string {
	if noCache {
		return cacheBackendNone
	}
	return cfg.Backend
}
