// Package ontology loads an OWL ontology document into an in-memory graph
// and answers SPARQL queries against it.
package ontology

import (
	"context"
	"fmt"
	"os"
	"time"

	"pizzagraph/application/ports"
	"pizzagraph/pkg/rdf"
	"pizzagraph/pkg/sparql"

	"go.uber.org/zap"
)

// Options controls how an ontology file is read
type Options struct {
	// Format overrides detection by file extension
	Format Format
	// Prefixes are declared for every text query passed to Query
	Prefixes rdf.Prefixes
	Logger   *zap.Logger
}

// Store is a read-only snapshot of one ontology document
type Store struct {
	graph    *rdf.Graph
	prefixes rdf.Prefixes
	source   string
	loadedAt time.Time
	logger   *zap.Logger
}

var _ ports.OntologyStore = (*Store)(nil)

// Load reads the ontology at path. Any error is fatal for the caller: there
// is no partial snapshot.
func Load(path string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	format := opts.Format
	if format == FormatAuto {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ontology: %w", err)
	}
	defer f.Close()

	triples, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("load ontology %s: %w", path, err)
	}

	store := NewStore(rdf.NewGraph(triples), path, opts.Prefixes, logger)
	logger.Info("Ontology loaded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("triples", store.graph.Len()),
		zap.Int("subjects", store.graph.SubjectCount()),
		zap.Duration("duration", time.Since(start)),
	)
	return store, nil
}

// NewStore wraps an already built graph
func NewStore(graph *rdf.Graph, source string, prefixes rdf.Prefixes, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefixes == nil {
		prefixes = rdf.StandardPrefixes()
	}
	return &Store{
		graph:    graph,
		prefixes: prefixes,
		source:   source,
		loadedAt: time.Now().UTC(),
		logger:   logger,
	}
}

// Query parses text with the store prefixes and evaluates it
func (s *Store) Query(ctx context.Context, text string, bindings sparql.Bindings) (*sparql.Results, error) {
	q, err := sparql.ParseWithPrefixes(text, s.prefixes)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, q, bindings)
}

// Execute evaluates a parsed query
func (s *Store) Execute(ctx context.Context, q *sparql.Query, bindings sparql.Bindings) (*sparql.Results, error) {
	start := time.Now()
	res, err := sparql.Evaluate(ctx, s.graph, q, bindings)
	if err != nil {
		s.logger.Debug("Query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	s.logger.Debug("Query executed",
		zap.Int("rows", res.Len()),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// Stats reports the size of the snapshot
func (s *Store) Stats() ports.StoreStats {
	return ports.StoreStats{
		Source:     s.source,
		Triples:    s.graph.Len(),
		Subjects:   s.graph.SubjectCount(),
		Predicates: s.graph.PredicateCount(),
		LoadedAt:   s.loadedAt,
	}
}

// Prefixes returns a copy of the prefixes declared for text queries
func (s *Store) Prefixes() rdf.Prefixes {
	out := make(rdf.Prefixes, len(s.prefixes))
	for label, ns := range s.prefixes {
		out[label] = ns
	}
	return out
}

// Graph exposes the underlying graph for read-only use
func (s *Store) Graph() *rdf.Graph {
	return s.graph
}
