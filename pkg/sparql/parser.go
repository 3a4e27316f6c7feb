package sparql

import (
	"fmt"
	"strconv"
	"strings"

	"pizzagraph/pkg/rdf"
)

// Parse parses a SELECT query. Prefixes rdf, rdfs, owl and xsd are
// predeclared; PREFIX declarations in the text override them.
func Parse(text string) (*Query, error) {
	return ParseWithPrefixes(text, nil)
}

// ParseWithPrefixes parses a SELECT query with extra predeclared prefixes
func ParseWithPrefixes(text string, prefixes rdf.Prefixes) (*Query, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	p := &parser{
		tokens:   tokens,
		prefixes: rdf.StandardPrefixes(),
	}
	for k, v := range prefixes {
		p.prefixes[k] = v
	}

	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	return q, nil
}

// MustParse is like Parse but panics on error. Intended for query templates
// compiled at package initialisation.
func MustParse(text string, prefixes rdf.Prefixes) *Query {
	q, err := ParseWithPrefixes(text, prefixes)
	if err != nil {
		panic(err)
	}
	return q
}

type parser struct {
	tokens   []token
	pos      int
	prefixes rdf.Prefixes
	anon     int
	query    *Query
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorAt(tok token, format string, args ...any) error {
	return &SyntaxError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(text string) error {
	tok := p.next()
	if !tok.is(text) {
		return p.errorAt(tok, "expected %q, found %s", text, tok)
	}
	return nil
}

func (p *parser) accept(text string) bool {
	if p.peek().is(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) parseQuery() (*Query, error) {
	p.query = &Query{Limit: -1}

	if err := p.parsePrologue(); err != nil {
		return nil, err
	}
	star, err := p.parseSelect()
	if err != nil {
		return nil, err
	}

	p.accept("WHERE")
	if err := p.parseGroup(); err != nil {
		return nil, err
	}
	if err := p.parseModifiers(); err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorAt(tok, "unexpected %s after query", tok)
	}

	if star {
		for _, v := range p.query.allVariables() {
			if !isInternal(v) {
				p.query.Variables = append(p.query.Variables, v)
			}
		}
	}
	p.query.Prefixes = p.prefixes
	return p.query, nil
}

func (p *parser) parsePrologue() error {
	for p.peek().is("PREFIX") {
		p.next()
		tok := p.next()
		if tok.kind != tokPName || !strings.HasSuffix(tok.text, ":") {
			return p.errorAt(tok, "expected prefix label ending in ':', found %s", tok)
		}
		iri := p.next()
		if iri.kind != tokIRI {
			return p.errorAt(iri, "expected IRI for prefix %s, found %s", tok.text, iri)
		}
		p.prefixes[strings.TrimSuffix(tok.text, ":")] = iri.text
	}
	if tok := p.peek(); tok.is("BASE") {
		return p.errorAt(tok, "BASE is not supported")
	}
	return nil
}

func (p *parser) parseSelect() (bool, error) {
	if err := p.expect("SELECT"); err != nil {
		return false, err
	}
	if p.accept("DISTINCT") {
		p.query.Distinct = true
	} else {
		p.accept("REDUCED")
	}
	if p.accept("*") {
		return true, nil
	}

	seen := make(map[string]struct{})
	for p.peek().kind == tokVar {
		name := p.next().text
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		p.query.Variables = append(p.query.Variables, name)
	}
	if len(p.query.Variables) == 0 {
		tok := p.peek()
		return false, p.errorAt(tok, "expected '*' or variables after SELECT, found %s", tok)
	}
	return false, nil
}

func (p *parser) parseGroup() error {
	if err := p.expect("{"); err != nil {
		return err
	}
	for {
		tok := p.peek()
		switch {
		case tok.is("}"):
			p.next()
			return p.checkProjection()
		case tok.kind == tokEOF:
			return p.errorAt(tok, "unterminated group, expected '}'")
		case tok.is("FILTER"):
			p.next()
			if err := p.parseFilter(); err != nil {
				return err
			}
			p.accept(".")
		default:
			if err := p.parseTriplesSameSubject(); err != nil {
				return err
			}
			if p.accept(".") {
				continue
			}
			if nt := p.peek(); !nt.is("}") && !nt.is("FILTER") {
				return p.errorAt(nt, "expected '.' or '}', found %s", nt)
			}
		}
	}
}

// checkProjection rejects projected variables the body never mentions
func (p *parser) checkProjection() error {
	for _, v := range p.query.Variables {
		if !p.query.Mentions(v) {
			return &SyntaxError{Line: 1, Col: 1, Msg: fmt.Sprintf("projected variable ?%s is not used in WHERE", v)}
		}
	}
	return nil
}

func (p *parser) parseTriplesSameSubject() error {
	if p.peek().is("[") {
		subject := p.newAnon()
		if err := p.parseBlankNodePropertyList(subject); err != nil {
			return err
		}
		// "[ ... ] ." is a complete triples block
		if tok := p.peek(); tok.is(".") || tok.is("}") || tok.is("FILTER") {
			return nil
		}
		return p.parsePropertyList(subject)
	}

	subject, err := p.parseTermOrVar(false)
	if err != nil {
		return err
	}
	return p.parsePropertyList(subject)
}

func (p *parser) parsePropertyList(subject Node) error {
	for {
		verb, err := p.parseVerb()
		if err != nil {
			return err
		}
		if err := p.parseObjectList(subject, verb); err != nil {
			return err
		}
		if !p.accept(";") {
			return nil
		}
		// a trailing ';' is permitted before '.', ']' or '}'
		for p.accept(";") {
			continue
		}
		if tok := p.peek(); tok.is(".") || tok.is("]") || tok.is("}") {
			return nil
		}
	}
}

func (p *parser) parseObjectList(subject Node, verb Predicate) error {
	for {
		if p.peek().is("[") {
			object := p.newAnon()
			p.query.Patterns = append(p.query.Patterns, Pattern{
				Subject:   subject,
				Predicate: verb,
				Object:    object,
			})
			if err := p.parseBlankNodePropertyList(object); err != nil {
				return err
			}
		} else {
			object, err := p.parseTermOrVar(true)
			if err != nil {
				return err
			}
			p.query.Patterns = append(p.query.Patterns, Pattern{
				Subject:   subject,
				Predicate: verb,
				Object:    object,
			})
		}
		if !p.accept(",") {
			return nil
		}
	}
}

func (p *parser) newAnon() Node {
	node := Node{Var: fmt.Sprintf("%s%d", anonPrefix, p.anon)}
	p.anon++
	return node
}

// parseBlankNodePropertyList parses "[ propertyList ]" with node as the
// subject of every pattern inside the brackets
func (p *parser) parseBlankNodePropertyList(node Node) error {
	if err := p.expect("["); err != nil {
		return err
	}
	if p.accept("]") {
		return nil
	}
	if err := p.parsePropertyList(node); err != nil {
		return err
	}
	return p.expect("]")
}

func (p *parser) parseVerb() (Predicate, error) {
	tok := p.peek()
	switch {
	case tok.kind == tokVar:
		p.next()
		return Predicate{Node: Node{Var: tok.text}}, nil
	case tok.kind == tokKeyword && tok.text == "a":
		p.next()
		return Predicate{Node: Node{Term: rdf.NewIRI(rdf.RDFType)}}, nil
	}

	pred := Predicate{}
	if p.accept("^") {
		pred.Inverse = true
	}
	tok = p.next()
	iri, err := p.resolveIRI(tok)
	if err != nil {
		return Predicate{}, err
	}
	pred.Term = rdf.NewIRI(iri)

	switch {
	case p.accept("+"):
		pred.Modifier = PathOneOrMore
	case p.accept("*"):
		pred.Modifier = PathZeroOrMore
	}
	return pred, nil
}

func (p *parser) resolveIRI(tok token) (string, error) {
	switch tok.kind {
	case tokIRI:
		return tok.text, nil
	case tokPName:
		iri, ok := p.prefixes.Expand(tok.text)
		if !ok {
			return "", p.errorAt(tok, "undeclared prefix in %s", tok.text)
		}
		return iri, nil
	case tokKeyword:
		if tok.text == "a" {
			return rdf.RDFType, nil
		}
	}
	return "", p.errorAt(tok, "expected IRI, found %s", tok)
}

// parseTermOrVar parses a subject or object position; literals are only
// allowed in object position
func (p *parser) parseTermOrVar(allowLiteral bool) (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokVar:
		return Node{Var: tok.text}, nil
	case tokBlank:
		return Node{Var: labelPrefix + tok.text}, nil
	case tokIRI, tokPName:
		iri, err := p.resolveIRI(tok)
		if err != nil {
			return Node{}, err
		}
		return Node{Term: rdf.NewIRI(iri)}, nil
	}

	if !allowLiteral {
		return Node{}, p.errorAt(tok, "expected variable, IRI or blank node, found %s", tok)
	}
	term, err := p.parseLiteral(tok)
	if err != nil {
		return Node{}, err
	}
	return Node{Term: term}, nil
}

func (p *parser) parseLiteral(tok token) (rdf.Term, error) {
	switch tok.kind {
	case tokString:
		if lang := p.peek(); lang.kind == tokLangTag {
			p.next()
			return rdf.NewLangLiteral(tok.text, lang.text), nil
		}
		if p.accept("^^") {
			dt, err := p.resolveIRI(p.next())
			if err != nil {
				return rdf.Term{}, err
			}
			return rdf.NewTypedLiteral(tok.text, dt), nil
		}
		return rdf.NewLiteral(tok.text), nil
	case tokInteger:
		return rdf.NewTypedLiteral(tok.text, rdf.XSDInteger), nil
	case tokDecimal:
		return rdf.NewTypedLiteral(tok.text, rdf.XSDDecimal), nil
	case tokKeyword:
		switch strings.ToLower(tok.text) {
		case "true", "false":
			return rdf.NewTypedLiteral(strings.ToLower(tok.text), rdf.XSDBoolean), nil
		}
	}
	return rdf.Term{}, p.errorAt(tok, "expected term, found %s", tok)
}

func (p *parser) parseFilter() error {
	if err := p.expect("("); err != nil {
		return err
	}
	left, err := p.parseTermOrVar(true)
	if err != nil {
		return err
	}

	f := Filter{Left: left}
	switch tok := p.next(); {
	case tok.is("="):
	case tok.is("!="):
		f.Negated = true
	default:
		return p.errorAt(tok, "expected '=' or '!=' in FILTER, found %s", tok)
	}

	f.Right, err = p.parseTermOrVar(true)
	if err != nil {
		return err
	}
	if err := p.expect(")"); err != nil {
		return err
	}
	p.query.Filters = append(p.query.Filters, f)
	return nil
}

func (p *parser) parseModifiers() error {
	if p.accept("ORDER") {
		if err := p.expect("BY"); err != nil {
			return err
		}
		for {
			tok := p.peek()
			switch {
			case tok.kind == tokVar:
				p.next()
				p.query.OrderBy = append(p.query.OrderBy, OrderKey{Var: tok.text})
				continue
			case tok.is("ASC") || tok.is("DESC"):
				p.next()
				if err := p.expect("("); err != nil {
					return err
				}
				v := p.next()
				if v.kind != tokVar {
					return p.errorAt(v, "expected variable in ORDER BY, found %s", v)
				}
				if err := p.expect(")"); err != nil {
					return err
				}
				p.query.OrderBy = append(p.query.OrderBy, OrderKey{Var: v.text, Descending: tok.is("DESC")})
				continue
			}
			break
		}
		if len(p.query.OrderBy) == 0 {
			tok := p.peek()
			return p.errorAt(tok, "expected ORDER BY condition, found %s", tok)
		}
	}

	for {
		switch {
		case p.accept("LIMIT"):
			n, err := p.parseCount()
			if err != nil {
				return err
			}
			p.query.Limit = n
		case p.accept("OFFSET"):
			n, err := p.parseCount()
			if err != nil {
				return err
			}
			p.query.Offset = n
		default:
			return nil
		}
	}
}

func (p *parser) parseCount() (int, error) {
	tok := p.next()
	if tok.kind != tokInteger {
		return 0, p.errorAt(tok, "expected integer, found %s", tok)
	}
	n, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, p.errorAt(tok, "invalid integer %q", tok.text)
	}
	return n, nil
}
