package sparql

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRI
	tokPName
	tokVar
	tokBlank
	tokString
	tokLangTag
	tokInteger
	tokDecimal
	tokKeyword
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of query"
	case tokIRI:
		return "IRI"
	case tokPName:
		return "prefixed name"
	case tokVar:
		return "variable"
	case tokBlank:
		return "blank node"
	case tokString:
		return "string"
	case tokLangTag:
		return "language tag"
	case tokInteger, tokDecimal:
		return "number"
	case tokKeyword:
		return "keyword"
	default:
		return "punctuation"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

// is reports whether the token is the given punctuation or keyword,
// keywords compared case-insensitively
func (t token) is(text string) bool {
	switch t.kind {
	case tokPunct:
		return t.text == text
	case tokKeyword:
		return strings.EqualFold(t.text, text)
	default:
		return false
	}
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func tokenize(src string) ([]token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	var out []token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

func (lx *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Line: lx.line, Col: lx.col, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) peekRune(offset int) rune {
	i := lx.pos + offset
	if i >= len(lx.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.src[i:])
	return r
}

func (lx *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		r := lx.peekRune(0)
		switch {
		case r == '#':
			for lx.pos < len(lx.src) && lx.peekRune(0) != '\n' {
				lx.advance()
			}
		case unicode.IsSpace(r):
			lx.advance()
		default:
			return
		}
	}
}

func (lx *lexer) next() (token, error) {
	lx.skipSpace()
	tok := token{line: lx.line, col: lx.col}
	if lx.pos >= len(lx.src) {
		tok.kind = tokEOF
		return tok, nil
	}

	r := lx.peekRune(0)
	switch {
	case r == '<':
		return lx.lexIRI(tok)
	case r == '?' || r == '$':
		lx.advance()
		name := lx.readWhile(isVarChar)
		if name == "" {
			return tok, lx.errorf("empty variable name")
		}
		tok.kind, tok.text = tokVar, name
		return tok, nil
	case r == '_' && lx.peekRune(1) == ':':
		lx.advance()
		lx.advance()
		label := lx.readWhile(isVarChar)
		if label == "" {
			return tok, lx.errorf("empty blank node label")
		}
		tok.kind, tok.text = tokBlank, label
		return tok, nil
	case r == '"' || r == '\'':
		return lx.lexString(tok, r)
	case r == '@':
		lx.advance()
		tag := lx.readWhile(func(r rune) bool {
			return r == '-' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
		})
		if tag == "" {
			return tok, lx.errorf("empty language tag")
		}
		tok.kind, tok.text = tokLangTag, tag
		return tok, nil
	case unicode.IsDigit(r):
		return lx.lexNumber(tok)
	case r == ':' || isNameStart(r):
		return lx.lexName(tok)
	}

	lx.advance()
	switch r {
	case '^':
		if lx.peekRune(0) == '^' {
			lx.advance()
			tok.kind, tok.text = tokPunct, "^^"
			return tok, nil
		}
	case '!':
		if lx.peekRune(0) == '=' {
			lx.advance()
			tok.kind, tok.text = tokPunct, "!="
			return tok, nil
		}
		return tok, lx.errorf("unexpected character '!'")
	case '{', '}', '(', ')', '[', ']', '.', ';', ',', '*', '+', '=':
	default:
		return tok, lx.errorf("unexpected character %q", r)
	}
	tok.kind, tok.text = tokPunct, string(r)
	return tok, nil
}

func (lx *lexer) readWhile(pred func(rune) bool) string {
	start := lx.pos
	for lx.pos < len(lx.src) && pred(lx.peekRune(0)) {
		lx.advance()
	}
	return lx.src[start:lx.pos]
}

func (lx *lexer) lexIRI(tok token) (token, error) {
	lx.advance()
	start := lx.pos
	for {
		if lx.pos >= len(lx.src) {
			return tok, lx.errorf("unterminated IRI")
		}
		r := lx.peekRune(0)
		if r == '>' {
			break
		}
		if r == '<' || r == '"' || r == '{' || r == '}' || r == '|' || r == '^' || r == '`' || r == '\\' || unicode.IsSpace(r) {
			return tok, lx.errorf("invalid character %q in IRI", r)
		}
		lx.advance()
	}
	tok.kind, tok.text = tokIRI, lx.src[start:lx.pos]
	lx.advance()
	return tok, nil
}

func (lx *lexer) lexString(tok token, quote rune) (token, error) {
	lx.advance()
	var sb strings.Builder
	for {
		if lx.pos >= len(lx.src) {
			return tok, lx.errorf("unterminated string")
		}
		r := lx.advance()
		switch r {
		case quote:
			tok.kind, tok.text = tokString, sb.String()
			return tok, nil
		case '\n', '\r':
			return tok, lx.errorf("newline in string")
		case '\\':
			if lx.pos >= len(lx.src) {
				return tok, lx.errorf("unterminated escape")
			}
			esc := lx.advance()
			switch esc {
			case 't':
				sb.WriteRune('\t')
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case '"', '\'', '\\':
				sb.WriteRune(esc)
			default:
				return tok, lx.errorf("unknown escape \\%c", esc)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func (lx *lexer) lexNumber(tok token) (token, error) {
	text := lx.readWhile(func(r rune) bool { return r >= '0' && r <= '9' })
	tok.kind = tokInteger
	// a trailing '.' not followed by a digit ends the triple, not the number
	if lx.peekRune(0) == '.' && unicode.IsDigit(lx.peekRune(1)) {
		lx.advance()
		text += "." + lx.readWhile(func(r rune) bool { return r >= '0' && r <= '9' })
		tok.kind = tokDecimal
	}
	tok.text = text
	return tok, nil
}

func (lx *lexer) lexName(tok token) (token, error) {
	prefix := lx.readWhile(isNameChar)
	if lx.peekRune(0) != ':' {
		tok.kind, tok.text = tokKeyword, prefix
		return tok, nil
	}
	lx.advance()

	start := lx.pos
	for lx.pos < len(lx.src) {
		r := lx.peekRune(0)
		if r == '.' {
			// dots are allowed inside a local name but never at its end
			if !isNameChar(lx.peekRune(1)) || lx.peekRune(1) == '.' {
				break
			}
		} else if !isNameChar(r) {
			break
		}
		lx.advance()
	}
	tok.kind, tok.text = tokPName, prefix+":"+lx.src[start:lx.pos]
	return tok, nil
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isVarChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
