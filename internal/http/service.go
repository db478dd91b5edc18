package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	apicontract "github.com/tuanvumaihuynh/sneaker-shop/api-contract"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/apperr"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/http/apierr"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/http/metric"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/http/middleware"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/http/swagger"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/service"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	productSvc    service.ProductService
	orderSvc      service.OrderService
	healthChecker db.HealthChecker
}

type CleanupFunc func(ctx context.Context) error

// New creates the HTTP service. healthChecker may be nil, in which case /healthz
// only reports that the process is serving.
func New(
	cfg config.HTTP,
	log *slog.Logger,
	productSvc service.ProductService,
	orderSvc service.OrderService,
	healthChecker db.HealthChecker,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        log.With(slog.String("service", "http")),
		metrics:       metric.New(),
		productSvc:    productSvc,
		orderSvc:      orderSvc,
		healthChecker: healthChecker,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	router, err := s.Router()
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	return s.RunWithServer(ctx, router)
}

// Router builds the full handler tree: middlewares, docs, probes and the API routes.
func (s *Service) Router() (http.Handler, error) {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("new validator: %w", err)
	}

	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		doc, err := apicontract.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("api contract: %w", err)
		}
		if err := swagger.Register(r, doc); err != nil {
			return nil, fmt.Errorf("register docs: %w", err)
		}
	}

	s.RegisterHandlers(r, v)

	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.CorrelationID(),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.Cors(s.cfg.CorsOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router, v validator.Validator) {
	products := newProductHandler(s.productSvc, v)
	orders := newOrderHandler(s.orderSvc, v)
	health := &healthHandler{checker: s.healthChecker}

	r.NotFound(s.wrap(func(http.ResponseWriter, *http.Request) error {
		return apperr.RouteNotFoundErr
	}))
	r.MethodNotAllowed(s.wrap(func(http.ResponseWriter, *http.Request) error {
		return apperr.MethodNotAllowedErr
	}))

	r.Get(middleware.HealthPath, s.wrap(health.Health))
	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	r.Route(s.cfg.APIPrefix, func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.wrap(products.ListProducts))
			r.Post("/", s.wrap(products.CreateProduct))
			r.Get("/{id}", s.wrap(products.GetProduct))
			r.Put("/{id}", s.wrap(products.UpdateProduct))
			r.Delete("/{id}", s.wrap(products.DeleteProduct))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.wrap(orders.ListOrders))
			r.Post("/", s.wrap(orders.CreateOrder))
			r.Get("/{id}", s.wrap(orders.GetOrder))
			r.Patch("/{id}/status", s.wrap(orders.UpdateOrderStatus))
		})
	})
}

func (s *Service) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
