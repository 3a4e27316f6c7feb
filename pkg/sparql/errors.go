package sparql

import (
	"errors"
	"fmt"
)

// SyntaxError reports a parse failure with its position in the query text
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sparql: syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

var (
	// ErrUnknownVariable is returned when a binding names a variable the
	// query does not use
	ErrUnknownVariable = errors.New("sparql: binding for unknown variable")

	// ErrUnboundValue is returned when a binding carries the zero term
	ErrUnboundValue = errors.New("sparql: binding has no value")

	// ErrUnsupportedPath is returned for a transitive path over a variable
	ErrUnsupportedPath = errors.New("sparql: path modifiers require an IRI predicate")
)
