// Package api configures and exposes the HTTP server, routes, metrics, docs
// and related middleware for the review-checker service.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"reviewd/internal/api/handler/v1handler"
	"reviewd/internal/config"
	"reviewd/pkg/controller"
	"reviewd/pkg/metrics"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures the security handler (authn) for v1 endpoints.
	SecHandlerOptions *v1handler.SecHandlerOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It bounds the lifetime of an event stream.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler;
	// the event stream endpoint is exempt.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

type Deps struct {
	v1handler.Deps
}

// NewMeterProvider creates an OpenTelemetry meter provider that exports to
// the default Prometheus registry, scraped through the metrics endpoint.
func NewMeterProvider() (metric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes with bearer auth and per-route metrics
// - pprof endpoints for profiling
// It also wraps the router with CORS and logging middlewares and applies a
// request timeout to everything except the event stream.
func NewServer(deps Deps, mp metric.MeterProvider, opts Options) (*http.Server, error) {
	router := mux.NewRouter()

	// prometheus metrics endpoint
	router.Handle(opts.MetricsPath, promhttp.Handler())

	// v1 specs file
	router.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	router.PathPrefix("/v1/docs/").Handler(v5emb.New(
		"Review Checker Service",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	// pprof
	router.PathPrefix("/debug/pprof/").Handler(controller.PprofMux())

	// v1 api
	httpMetrics, err := metrics.NewHTTP(mp)
	if err != nil {
		return nil, fmt.Errorf("could not create http metrics: %w", err)
	}
	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	v1 := router.PathPrefix("/v1").Subrouter()
	v1.Use(httpMetrics.Middleware, secHandler.Middleware)
	v1handler.New(deps.Deps).Register(v1)

	// cors
	var handler http.Handler = controller.WithCORS(router)

	// logger
	handler = controller.WithLogger(handler)

	// the event stream must not run under the timeout wrapper: its response
	// writer has to keep flushing for the whole session
	timed := http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out"}`)
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/events") {
			handler.ServeHTTP(w, r)

			return
		}
		timed.ServeHTTP(w, r)
	})

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           root,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
