package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mytheresa/go-inventory/app/categories"
	"github.com/mytheresa/go-inventory/app/config"
	"github.com/mytheresa/go-inventory/app/metric"
	"github.com/mytheresa/go-inventory/app/products"
	"github.com/mytheresa/go-inventory/app/suppliers"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups the page handlers mounted by the service.
type Handlers struct {
	Products   *products.ProductHandler
	Categories *categories.CategoryHandler
	Suppliers  *suppliers.SupplierHandler
}

// Service represents the HTTP service.
type Service struct {
	cfg      config.HTTP
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metric.Metrics

	handlers Handlers
	store    Pinger
}

type CleanupFunc func(ctx context.Context) error

func New(cfg config.HTTP, log *slog.Logger, store Pinger, handlers Handlers) *Service {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Service{
		cfg:      cfg,
		logger:   log.With(slog.String("service", "http")),
		registry: reg,
		metrics:  metric.New(reg),
		handlers: handlers,
		store:    store,
	}
}

// Handler builds the router with every middleware and route attached.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)
	s.RegisterHandlers(r)
	return r
}

// Run starts listening on the configured port and serves requests in the
// background. The returned cleanup function shuts the server down gracefully.
func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	return s.RunWithListener(ctx, ln, s.Handler()), nil
}

func (s *Service) RunWithListener(ctx context.Context, ln net.Listener, handler http.Handler) CleanupFunc {
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped unexpectedly", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.RequestID,
		Recoverer(s.logger),
		Metrics(s.metrics),
		Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	p := s.handlers.Products
	r.Get("/", p.HandleList)
	r.Get("/add-product", p.HandleNew)
	r.Post("/add-product", p.HandleCreate)
	r.Get("/edit-product/{id}", p.HandleEdit)
	r.Post("/edit-product/{id}", p.HandleUpdate)
	r.Post("/delete-product/{id}", p.HandleDelete)

	r.Get("/add-category", s.handlers.Categories.HandleNew)
	r.Post("/add-category", s.handlers.Categories.HandleCreate)

	r.Get("/add-supplier", s.handlers.Suppliers.HandleNew)
	r.Post("/add-supplier", s.handlers.Suppliers.HandleCreate)

	r.Get(HealthPath, s.handleHealth)

	if s.cfg.Metrics {
		r.Handle(MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
			ErrorLog: log.Default(),
		}))
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.PingContext(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "store unreachable", slog.Any("error", err))
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
