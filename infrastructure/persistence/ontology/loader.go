package ontology

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pizzagraph/pkg/rdf"

	krdf "github.com/knakk/rdf"
)

// Format names an ontology serialization
type Format string

// Supported formats. RDF/XML is limited to flat documents: nested node
// elements such as an anonymous owl:Restriction are rejected by the decoder.
const (
	FormatAuto     Format = ""
	FormatRDFXML   Format = "rdfxml"
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
)

// ErrUnknownFormat is returned when no decoder matches the requested format
var ErrUnknownFormat = errors.New("unknown ontology format")

// ParseFormat validates a format name. The empty string selects detection by
// file extension.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatAuto:
		return FormatAuto, nil
	case FormatRDFXML, "xml", "owl":
		return FormatRDFXML, nil
	case FormatTurtle, "ttl":
		return FormatTurtle, nil
	case FormatNTriples, "nt":
		return FormatNTriples, nil
	}
	return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// DetectFormat picks a format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".owl", ".rdf", ".xml":
		return FormatRDFXML, nil
	case ".ttl":
		return FormatTurtle, nil
	case ".nt":
		return FormatNTriples, nil
	}
	return FormatAuto, fmt.Errorf("%w: cannot detect from %q", ErrUnknownFormat, path)
}

func (f Format) decoderFormat() (krdf.Format, error) {
	switch f {
	case FormatRDFXML:
		return krdf.RDFXML, nil
	case FormatTurtle:
		return krdf.Turtle, nil
	case FormatNTriples:
		return krdf.NTriples, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Decode reads every triple from r
func Decode(r io.Reader, format Format) ([]rdf.Triple, error) {
	kf, err := format.decoderFormat()
	if err != nil {
		return nil, err
	}

	dec := krdf.NewTripleDecoder(r, kf)
	var triples []rdf.Triple
	for {
		tr, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode triple %d: %w", len(triples)+1, err)
		}

		t, err := convertTriple(tr)
		if err != nil {
			return nil, fmt.Errorf("convert triple %d: %w", len(triples)+1, err)
		}
		triples = append(triples, t)
	}
	return triples, nil
}

func convertTriple(tr krdf.Triple) (rdf.Triple, error) {
	s, err := convertTerm(tr.Subj)
	if err != nil {
		return rdf.Triple{}, err
	}
	p, err := convertTerm(tr.Pred)
	if err != nil {
		return rdf.Triple{}, err
	}
	o, err := convertTerm(tr.Obj)
	if err != nil {
		return rdf.Triple{}, err
	}
	return rdf.Triple{Subject: s, Predicate: p, Object: o}, nil
}

func convertTerm(t krdf.Term) (rdf.Term, error) {
	switch v := t.(type) {
	case krdf.IRI:
		return rdf.NewIRI(v.String()), nil
	case krdf.Blank:
		return rdf.NewBlank(v.String()), nil
	case krdf.Literal:
		if lang := v.Lang(); lang != "" {
			return rdf.NewLangLiteral(v.String(), lang), nil
		}
		return rdf.NewTypedLiteral(v.String(), v.DataType.String()), nil
	}
	return rdf.Term{}, fmt.Errorf("unsupported term %T", t)
}
