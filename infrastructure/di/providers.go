package di

import (
	"fmt"
	"strings"
	"time"

	"pizzagraph/application/ports"
	querybus "pizzagraph/application/queries/bus"
	queryhandlers "pizzagraph/application/queries/handlers"
	"pizzagraph/domain/pizza"
	"pizzagraph/infrastructure/config"
	"pizzagraph/infrastructure/persistence/ontology"
	"pizzagraph/interfaces/http/rest"
	apperrors "pizzagraph/pkg/errors"
	"pizzagraph/pkg/observability"
	"pizzagraph/pkg/ratelimit"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideVocabulary,
	ProvideCollector,
	ProvideOntologyStore,
	wire.Bind(new(ports.OntologyStore), new(*ontology.Store)),
	ProvideTracer,
	ProvideOntologyHandler,
	ProvideQueryBus,
	ProvideErrorHandler,
	ProvideRateLimiter,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", cfg.ServiceName)), nil
}

// ProvideVocabulary creates the vocabulary for the configured namespace
func ProvideVocabulary(cfg *config.Config) (pizza.Vocabulary, error) {
	return cfg.Vocabulary()
}

// ProvideCollector creates the metrics collector, or nil when metrics are
// disabled
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector(metricsNamespace(cfg.ServiceName))
}

// ProvideOntologyStore loads the ontology file. A missing or malformed file
// is an error.
func ProvideOntologyStore(
	cfg *config.Config,
	vocab pizza.Vocabulary,
	collector *observability.Collector,
	logger *zap.Logger,
) (*ontology.Store, error) {
	format, err := ontology.ParseFormat(cfg.OntologyFormat)
	if err != nil {
		return nil, err
	}

	store, err := ontology.Load(cfg.OntologyPath, ontology.Options{
		Format:   format,
		Prefixes: vocab.Prefixes(),
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load ontology: %w", err)
	}

	if collector != nil {
		collector.OntologyTriples.Set(float64(store.Stats().Triples))
	}
	return store, nil
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(cfg.ServiceName, cfg.EnableTracing)
}

// ProvideOntologyHandler creates the application query handler
func ProvideOntologyHandler(store ports.OntologyStore, vocab pizza.Vocabulary, logger *zap.Logger) *queryhandlers.OntologyHandler {
	return queryhandlers.NewOntologyHandler(store, vocab, logger)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	handler *queryhandlers.OntologyHandler,
	collector *observability.Collector,
	tracer *observability.Tracer,
) (*querybus.QueryBus, error) {
	var middleware []querybus.Middleware
	if collector != nil {
		middleware = append(middleware, querybus.NewMetricsMiddleware(&queryMetrics{collector: collector}))
	}
	if tracer.Enabled() {
		middleware = append(middleware, querybus.NewTracingMiddleware(tracer))
	}

	queryBus := querybus.NewQueryBus(middleware...)
	if err := queryhandlers.RegisterOntologyQueries(queryBus, handler); err != nil {
		return nil, err
	}
	return queryBus, nil
}

// ProvideErrorHandler creates the HTTP error handler. Development mode adds
// stack traces to error details.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideRateLimiter creates the request limiter, or nil when RATE_LIMIT is 0
func ProvideRateLimiter(cfg *config.Config) ratelimit.RateLimiter {
	if cfg.RateLimit <= 0 {
		return nil
	}
	return ratelimit.NewTokenBucketLimiter(cfg.RateLimit, cfg.RateLimitBurst)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	queryBus *querybus.QueryBus,
	store ports.OntologyStore,
	errorHandler *apperrors.ErrorHandler,
	collector *observability.Collector,
	tracer *observability.Tracer,
	limiter ratelimit.RateLimiter,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(
		rest.RouterConfig{
			EnableCORS:        cfg.EnableCORS,
			MaxBodyBytes:      cfg.MaxBodyBytes,
			RateLimitByClient: cfg.RateLimitByClient,
		},
		queryBus,
		store,
		errorHandler,
		collector,
		tracer,
		limiter,
		logger,
	)
}

// metricsNamespace turns a service name into a valid Prometheus namespace
func metricsNamespace(service string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(service)
}

// queryMetrics adapts the collector to the query bus metrics interface
type queryMetrics struct {
	collector *observability.Collector
}

func (m *queryMetrics) StartTimer(metric, label string) querybus.Timer {
	return &queryTimer{collector: m.collector, query: label, start: time.Now()}
}

func (m *queryMetrics) Increment(metric, label string) {
	m.collector.CountQuery(label, strings.TrimPrefix(metric, "query_"))
}

type queryTimer struct {
	collector *observability.Collector
	query     string
	start     time.Time
}

func (t *queryTimer) Stop() {
	t.collector.ObserveQuery(t.query, time.Since(t.start))
}
