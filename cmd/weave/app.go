package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/weave/el"
	"github.com/vango-dev/weave/internal/config"
	"github.com/vango-dev/weave/internal/demo"
	"github.com/vango-dev/weave/internal/logging"
	"github.com/vango-dev/weave/pkg/bind"
	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/frame"
)

const tracerName = "github.com/vango-dev/weave"

var defaultTodos = []string{"Read the docs", "Bind some state", "Ship it"}

// document is the demo application mounted in a fresh document.
type document struct {
	doc  *dom.Document
	root *bind.Root
	app  *demo.App
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := config.ParseLevel(cfg.Log.Level)
	return logging.New(level, cfg.Log.Format, os.Stderr)
}

// newDocument builds the demo and runs its first pass. reg may be nil.
func newDocument(sched frame.Scheduler, logger *slog.Logger, reg prometheus.Registerer, namespace string, todos []string) (*document, error) {
	opts := []bind.Option{
		bind.WithLogger(logger),
		bind.WithTracer(otel.Tracer(tracerName)),
	}
	if reg != nil {
		opts = append(opts, bind.WithMetrics(bind.NewMetrics(reg, namespace)))
	}

	doc := dom.NewDocument()
	root := bind.NewRoot(doc, sched, opts...)
	app := demo.New(el.New(doc), root, logger, todos...)
	if err := root.Mount(doc.Root(), app.Body); err != nil {
		return nil, err
	}
	root.Update()
	return &document{doc: doc, root: root, app: app}, nil
}
