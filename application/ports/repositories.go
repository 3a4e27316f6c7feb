package ports

import (
	"context"
	"time"

	"pizzagraph/pkg/sparql"
)

// OntologyStore defines the read interface over the loaded ontology
// This is a port in hexagonal architecture - handlers don't know how the graph was loaded
type OntologyStore interface {
	// Execute evaluates a parsed query with the given initial bindings
	Execute(ctx context.Context, query *sparql.Query, bindings sparql.Bindings) (*sparql.Results, error)

	// Stats reports the size of the loaded graph
	Stats() StoreStats
}

// StoreStats describes a loaded ontology snapshot
type StoreStats struct {
	Source     string    `json:"source"`
	Triples    int       `json:"triples"`
	Subjects   int       `json:"subjects"`
	Predicates int       `json:"predicates"`
	LoadedAt   time.Time `json:"loaded_at"`
}
