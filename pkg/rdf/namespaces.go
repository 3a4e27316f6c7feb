package rdf

import "strings"

// Standard vocabulary namespaces
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// Frequently used vocabulary IRIs
const (
	RDFType = RDFNamespace + "type"

	RDFSSubClassOf = RDFSNamespace + "subClassOf"
	RDFSLabel      = RDFSNamespace + "label"

	OWLClass          = OWLNamespace + "Class"
	OWLRestriction    = OWLNamespace + "Restriction"
	OWLOnProperty     = OWLNamespace + "onProperty"
	OWLSomeValuesFrom = OWLNamespace + "someValuesFrom"
	OWLAllValuesFrom  = OWLNamespace + "allValuesFrom"
	OWLHasValue       = OWLNamespace + "hasValue"

	XSDString  = XSDNamespace + "string"
	XSDInteger = XSDNamespace + "integer"
	XSDDecimal = XSDNamespace + "decimal"
	XSDBoolean = XSDNamespace + "boolean"
)

// Prefixes maps prefix labels to namespace IRIs
type Prefixes map[string]string

// StandardPrefixes returns the rdf, rdfs, owl and xsd prefixes
func StandardPrefixes() Prefixes {
	return Prefixes{
		"rdf":  RDFNamespace,
		"rdfs": RDFSNamespace,
		"owl":  OWLNamespace,
		"xsd":  XSDNamespace,
	}
}

// With returns a copy of the prefixes with label bound to namespace
func (p Prefixes) With(label, namespace string) Prefixes {
	out := make(Prefixes, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[label] = namespace
	return out
}

// Expand resolves a prefixed name such as "owl:Class". The second result is
// false when the prefix is unknown or the name has no colon.
func (p Prefixes) Expand(pname string) (string, bool) {
	i := strings.IndexByte(pname, ':')
	if i < 0 {
		return "", false
	}
	ns, ok := p[pname[:i]]
	if !ok {
		return "", false
	}
	return ns + pname[i+1:], true
}
