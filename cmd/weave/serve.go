package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/config"
	"github.com/vango-dev/weave/internal/demo"
	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/frame"
	"github.com/vango-dev/weave/pkg/server"
)

func serveCmd(configPath *string) *cobra.Command {
	var (
		port    int
		host    string
		metrics bool
		todos   []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live document",
		Long: `Serve keeps the demo document live: the page is rendered on request and
every later change is streamed to connected browsers over a WebSocket.

Examples:
  weave serve
  weave serve --port 9000 --metrics
  WEAVE_LOG_LEVEL=debug weave serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(*configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if metrics {
				cfg.Metrics.Enabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if len(todos) == 0 {
				todos = defaultTodos
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := runServe(ctx, cmd, cfg, todos); err != nil {
				return errors.FromError(err, "W404")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&port, "port", "p", 0, "Port to listen on (default from server.port)")
	f.StringVarP(&host, "host", "H", "", "Host to bind to (default from server.host)")
	f.BoolVar(&metrics, "metrics", false, "Serve Prometheus metrics")
	f.StringArrayVar(&todos, "todo", nil, "Todo to seed the document with (repeatable)")
	return cmd
}

// newServer builds the live document and its server. The loop is not started.
func newServer(cfg *config.Config, todos []string) (*server.Server, error) {
	logger := newLogger(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	loop := frame.NewLoop(time.Duration(cfg.Frame.Interval))
	d, err := newDocument(loop, logger, reg, cfg.Metrics.Namespace, todos)
	if err != nil {
		return nil, err
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Address = cfg.Address()
	srvCfg.LivePath = cfg.Server.LivePath
	srvCfg.History = cfg.Server.History
	srvCfg.EnableMetrics = cfg.Metrics.Enabled
	srvCfg.MetricsPath = cfg.Metrics.Path

	page := server.Page{
		Root:   d.root,
		Body:   d.app.Body,
		Title:  "weave todos",
		Styles: []string{demo.Stylesheet},
	}
	return server.New(srvCfg, loop, page,
		server.WithLogger(logger),
		server.WithRegistry(reg, cfg.Metrics.Namespace),
	), nil
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config, todos []string) error {
	srv, err := newServer(cfg, todos)
	if err != nil {
		return err
	}
	success(cmd, "serving on http://%s", cfg.Address())
	return srv.Run(ctx)
}
