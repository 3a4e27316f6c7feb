package di

import (
	"net/http"

	"pizzagraph/application/ports"
	querybus "pizzagraph/application/queries/bus"
	"pizzagraph/infrastructure/config"
	"pizzagraph/interfaces/http/rest"
	"pizzagraph/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     ports.OntologyStore
	QueryBus  *querybus.QueryBus
	Collector *observability.Collector
	Tracer    *observability.Tracer
	Router    *rest.Router
}

// Handler builds the HTTP handler for the container's router
func (c *Container) Handler() http.Handler {
	return c.Router.Setup()
}

// Close flushes buffered log entries
func (c *Container) Close() {
	_ = c.Logger.Sync()
}
