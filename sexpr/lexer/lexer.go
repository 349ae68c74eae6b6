// Package lexer converts expression source text into a stream of
// tagged tokens.
package lexer

import (
	"bytes"
	"fmt"
	"io"
	"text/scanner"
)

type lexState func(*Lexer) lexState

// New initializes a Lexer object
func New(r io.Reader) *Lexer {
	s := &scanner.Scanner{}

	return &Lexer{
		in:     s.Init(r),
		tokens: make(chan Token),
		buf:    []rune{},
	}
}

// Lexer represents a lexical analyzer
type Lexer struct {
	in *scanner.Scanner

	tokens chan Token

	lastErr error

	buf []rune

	start  int
	offset int
	lines  int
}

// Tokens returns a channel that is going to receive tokens as soon as
// they are detected.
func (lx *Lexer) Tokens() chan Token {
	return lx.tokens
}

// Scan starts scanning the reader for tokens.
func (lx *Lexer) Scan() error {
	for state := lexDefaultState; state != nil; {
		state = state(lx)
	}

	if lx.lastErr == nil {
		lx.emit(TokenEOF)
	}

	close(lx.tokens)

	return lx.lastErr
}

func (lx *Lexer) emit(tt TokenType) {
	lx.tokens <- Token{
		tt:     tt,
		lexeme: string(lx.buf),

		col:  lx.start + 1,
		line: lx.lines + 1,
	}

	lx.start = lx.offset
	lx.buf = lx.buf[:0]
}

func (lx *Lexer) discard() {
	lx.start = lx.offset
	lx.buf = lx.buf[:0]
}

func (lx *Lexer) peek() rune {
	return lx.in.Peek()
}

func (lx *Lexer) next() (rune, error) {
	r := lx.in.Next()
	if r == scanner.EOF {
		return rune(0), io.EOF
	}

	lx.offset++
	if r == '\n' {
		lx.lines++
		lx.offset = 0
	}

	lx.buf = append(lx.buf, r)
	return r, nil
}

func (lx *Lexer) errorf(format string, args ...interface{}) lexState {
	lx.lastErr = fmt.Errorf(format+" (line %d, col %d)", append(args, lx.lines+1, lx.start+1)...)
	return nil
}

func lexDefaultState(lx *Lexer) lexState {
	r, err := lx.next()
	if err != nil {
		return nil
	}

	switch {

	case isWhitespace(r):
		lx.discard()
		return lexDefaultState

	case r == ':':
		return lexAtom

	case r == '"':
		return lexString

	case isDigit(r):
		return lexNumber

	case isSign(r):
		if isDigit(lx.peek()) {
			return lexNumber
		}
		// a lone sign is an ordinary symbol
		return lexEmit(TokenSymbol)

	case isSymbolStart(r):
		return lexSymbol

	default:
		if tt, ok := bracketTokens[r]; ok {
			return lexEmit(tt)
		}
		return lx.errorf("unexpected character %q", r)

	}
}

func lexAtom(lx *Lexer) lexState {
	for isNameChar(lx.peek()) {
		if _, err := lx.next(); err != nil {
			return nil
		}
	}
	return lexEmit(TokenAtom)
}

func lexSymbol(lx *Lexer) lexState {
	for isNameChar(lx.peek()) {
		if _, err := lx.next(); err != nil {
			return nil
		}
	}

	switch string(lx.buf) {
	case "nil":
		return lexEmit(TokenNil)
	case "true":
		return lexEmit(TokenTrue)
	case "false":
		return lexEmit(TokenFalse)
	}
	return lexEmit(TokenSymbol)
}

func lexNumber(lx *Lexer) lexState {
	for isDigit(lx.peek()) {
		if _, err := lx.next(); err != nil {
			return nil
		}
	}

	if lx.peek() == '.' {
		if _, err := lx.next(); err != nil {
			return nil
		}
		if !isDigit(lx.peek()) {
			return lx.errorf("malformed number %q", string(lx.buf))
		}
		for isDigit(lx.peek()) {
			if _, err := lx.next(); err != nil {
				return nil
			}
		}
	}

	return lexEmit(TokenNumber)
}

func lexString(lx *Lexer) lexState {
	for {
		r, err := lx.next()
		if err != nil {
			return lx.errorf("unexpected EOF inside string")
		}
		switch r {
		case '\\':
			if _, err := lx.next(); err != nil {
				return lx.errorf("unexpected EOF inside string")
			}
		case '"':
			lx.emit(TokenString)
			return lexDefaultState
		}
	}
}

func lexEmit(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		lx.emit(tt)
		return lexDefaultState
	}
}

// Tokenize takes an array of bytes and returns all the tokens within
// it, or an error if a token can't be identified.
func Tokenize(in []byte) ([]Token, error) {
	tokens := []Token{}
	done := make(chan struct{})

	lx := New(bytes.NewReader(in))

	go func() {
		for tok := range lx.tokens {
			tokens = append(tokens, tok)
		}
		done <- struct{}{}
	}()

	err := lx.Scan()
	<-done

	if err != nil {
		return nil, err
	}
	return tokens, nil
}
