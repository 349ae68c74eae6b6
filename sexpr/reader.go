package sexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tildegen/tildegen/sexpr/lexer"
)

// ParseError is a value-returned reader failure: tokenization,
// bracket structure or malformed literals.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string {
	return e.msg
}

func parseErrorf(format string, args ...interface{}) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// Parse reads source into a sequence of forms. Bracket pairing is
// verified up front so mismatches surface before any form is built.
func Parse(source string) ([]*Value, error) {
	tokens, err := lexer.Tokenize([]byte(source))
	if err != nil {
		return nil, &ParseError{msg: err.Error()}
	}

	if perr := checkBrackets(tokens); perr != nil {
		return nil, perr
	}

	r := &reader{tokens: tokens}
	forms := []*Value{}
	for !r.eof() {
		v, perr := r.readValue()
		if perr != nil {
			return nil, perr
		}
		forms = append(forms, v)
	}
	return forms, nil
}

func checkBrackets(tokens []lexer.Token) *ParseError {
	expected := []lexer.TokenType{}
	for _, tok := range tokens {
		tt := tok.Type()
		switch {
		case lexer.IsBracketStart(tt):
			expected = append(expected, lexer.MatchingEnd(tt))
		case lexer.IsBracketEnd(tt):
			if len(expected) == 0 || expected[len(expected)-1] != tt {
				return parseErrorf("unexpected token %v", tt)
			}
			expected = expected[:len(expected)-1]
		}
	}
	if len(expected) > 0 {
		return parseErrorf("unexpected EOF")
	}
	return nil
}

type reader struct {
	tokens []lexer.Token
	pos    int
}

func (r *reader) eof() bool {
	return r.pos >= len(r.tokens) || r.tokens[r.pos].Is(lexer.TokenEOF)
}

func (r *reader) next() lexer.Token {
	if r.pos >= len(r.tokens) {
		return lexer.NewToken(lexer.TokenEOF, "", 0, 0)
	}
	tok := r.tokens[r.pos]
	r.pos++
	return tok
}

func (r *reader) peek() lexer.Token {
	if r.pos >= len(r.tokens) {
		return lexer.NewToken(lexer.TokenEOF, "", 0, 0)
	}
	return r.tokens[r.pos]
}

func (r *reader) readSequence(end lexer.TokenType) ([]*Value, *ParseError) {
	items := []*Value{}
	for {
		if r.peek().Is(end) {
			r.next()
			return items, nil
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (r *reader) readValue() (*Value, *ParseError) {
	tok := r.next()

	switch tok.Type() {
	case lexer.TokenParenStart:
		items, err := r.readSequence(lexer.TokenParenEnd)
		if err != nil {
			return nil, err
		}
		return NewListValue(items), nil

	case lexer.TokenBracketStart:
		items, err := r.readSequence(lexer.TokenBracketEnd)
		if err != nil {
			return nil, err
		}
		return NewVectorValue(items), nil

	case lexer.TokenBraceStart:
		return r.readMap()

	case lexer.TokenNumber:
		f, err := strconv.ParseFloat(tok.Text(), 64)
		if err != nil {
			return nil, parseErrorf("invalid number %q", tok.Text())
		}
		return NewNumberValue(f), nil

	case lexer.TokenAtom:
		return NewAtomValue(strings.TrimPrefix(tok.Text(), ":")), nil

	case lexer.TokenSymbol:
		return NewSymbolValue(splitSymbol(tok.Text())), nil

	case lexer.TokenString:
		text := tok.Text()
		return NewStringValue(unescapeString(text[1 : len(text)-1])), nil

	case lexer.TokenNil:
		return Nil, nil

	case lexer.TokenTrue:
		return True, nil

	case lexer.TokenFalse:
		return False, nil

	case lexer.TokenEOF:
		return nil, parseErrorf("unexpected EOF")
	}

	return nil, parseErrorf("unexpected token %v", tok.Type())
}

func (r *reader) readMap() (*Value, *ParseError) {
	m := NewMap()
	for {
		if r.peek().Is(lexer.TokenBraceEnd) {
			r.next()
			return NewMapValue(m), nil
		}

		key, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if r.peek().Is(lexer.TokenBraceEnd) {
			return nil, parseErrorf("missing value in map")
		}
		val, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if serr := m.Set(key, val); serr != nil {
			return nil, &ParseError{msg: serr.Error()}
		}
	}
}

// splitSymbol splits an identifier on its last dot into namespace and
// token.
func splitSymbol(text string) Symbol {
	if i := strings.LastIndexByte(text, '.'); i >= 0 {
		return Symbol{NS: text[:i], Token: text[i+1:]}
	}
	return Symbol{Token: text}
}

// unescapeString resolves string escapes: \t becomes a tab, \n (and
// the \r\n pair) a newline, any other \x collapses to x.
func unescapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			if i+2 < len(s) && s[i+1] == '\\' && s[i+2] == 'n' {
				b.WriteByte('\n')
				i += 2
			} else {
				b.WriteByte('r')
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
