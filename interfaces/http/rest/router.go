package rest

import (
	"net/http"

	"pizzagraph/application/ports"
	querybus "pizzagraph/application/queries/bus"
	"pizzagraph/interfaces/http/rest/handlers"
	"pizzagraph/interfaces/http/rest/middleware"
	"pizzagraph/pkg/common"
	apperrors "pizzagraph/pkg/errors"
	"pizzagraph/pkg/observability"
	"pizzagraph/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterConfig holds the HTTP settings the router needs
type RouterConfig struct {
	EnableCORS   bool
	MaxBodyBytes int64
	// RateLimitByClient gives each client address its own bucket
	RateLimitByClient bool
}

// Router creates and configures the HTTP router
type Router struct {
	config       RouterConfig
	queryBus     *querybus.QueryBus
	store        ports.OntologyStore
	errorHandler *apperrors.ErrorHandler
	collector    *observability.Collector
	tracer       *observability.Tracer
	limiter      ratelimit.RateLimiter
	logger       *zap.Logger
}

// NewRouter creates a new router instance. A nil collector disables
// /metrics and a nil limiter disables rate limiting.
func NewRouter(
	config RouterConfig,
	queryBus *querybus.QueryBus,
	store ports.OntologyStore,
	errorHandler *apperrors.ErrorHandler,
	collector *observability.Collector,
	tracer *observability.Tracer,
	limiter ratelimit.RateLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		config:       config,
		queryBus:     queryBus,
		store:        store,
		errorHandler: errorHandler,
		collector:    collector,
		tracer:       tracer,
		limiter:      limiter,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}
	router.Use(rt.errorHandler.Middleware)
	router.Use(rt.tracer.Middleware)

	if rt.config.EnableCORS {
		// any origin, reflected back so credentialed requests are accepted
		router.Use(cors.Handler(cors.Options{
			AllowOriginFunc:  func(*http.Request, string) bool { return true },
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Probes stay outside the rate limit
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.collector != nil {
		router.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	router.Group(func(r chi.Router) {
		if rt.limiter != nil {
			cfg := middleware.RateLimitConfig{
				Limiter:      rt.limiter,
				ErrorHandler: rt.errorHandler,
				Collector:    rt.collector,
				Logger:       rt.logger,
			}
			if rt.config.RateLimitByClient {
				cfg.KeyFunc = middleware.ClientIPKey
			}
			r.Use(middleware.RateLimit(cfg))
		}

		ontologyHandler := handlers.NewOntologyHandler(rt.queryBus, rt.errorHandler, rt.logger, rt.config.MaxBodyBytes)
		r.Get("/python", ontologyHandler.PythonTest)
		r.Get("/toppings", ontologyHandler.ListToppings)
		r.Get("/countries", ontologyHandler.ListCountries)
		r.Get("/pizzas", ontologyHandler.ListPizzas)
		r.Post("/toppings-by-pizza", ontologyHandler.ToppingsByPizza)
		r.Post("/pizzas-by-topping", ontologyHandler.PizzasByTopping)
		r.Post("/pizzas-by-country", ontologyHandler.PizzasByCountry)
		r.Post("/toppings-by-spiciness", ontologyHandler.ToppingsBySpiciness)
	})

	return router
}

type statusPayload struct {
	Status string            `json:"status"`
	Store  *ports.StoreStats `json:"store,omitempty"`
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, statusPayload{Status: "healthy"})
}

// readinessCheck reports ready once the ontology holds triples
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	stats := rt.store.Stats()
	if stats.Triples == 0 {
		rt.errorHandler.HandleStatus(w, req, http.StatusServiceUnavailable, "Ontology not loaded")
		return
	}
	common.RespondJSON(w, http.StatusOK, statusPayload{Status: "ready", Store: &stats})
}
