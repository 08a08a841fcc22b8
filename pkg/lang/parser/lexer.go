package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scanning errors.
var (
	ErrBadToken   = errors.New("unexpected character")
	ErrBadString  = errors.New("malformed string literal")
	ErrBadInteger = errors.New("malformed integer literal")
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokMapIdent
	tokInt
	tokStr
	tokPunct
)

func (k tokKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokMapIdent:
		return "map name"
	case tokInt:
		return "integer"
	case tokStr:
		return "string"
	case tokPunct:
		return "punctuation"
	}

	return "UNKNOWN"
}

type token struct {
	kind tokKind
	text string
	num  int64
	line int
	col  int
}

// puncts are tried longest-first so "<<" wins over "<".
var puncts = []string{
	"||", "&&", "<<", ">>", "==", "!=", "<=", ">=",
	"|", "^", "&", "<", ">", "+", "-", "*", "/", "%",
	"!", "=", "(", ")", "{", "}", "[", "]", ",", ";", ":", ".",
}

// scanner tokenizes a whole script held in memory. '#' starts a comment
// running to end of line. Map names carry a '@' sigil and scan as a single
// token including it.
type scanner struct {
	src  []byte
	pos  int
	line int
	col  int
}

func newScanner(r io.Reader) (*scanner, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return &scanner{src: src, line: 1, col: 1}, nil
}

func (s *scanner) advance(n int) {
	for i := 0; i < n; i++ {
		if s.src[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}

		s.pos++
	}
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance(1)
		case c == '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.advance(1)
			}
		default:
			return
		}
	}
}

// next returns the next token.
func (s *scanner) next() (token, error) {
	s.skipSpace()

	tok := token{line: s.line, col: s.col}

	if s.pos >= len(s.src) {
		tok.kind = tokEOF

		return tok, nil
	}

	c := s.src[s.pos]

	switch {
	case c == '@':
		s.advance(1)
		tok.kind = tokMapIdent
		tok.text = "@" + s.scanIdent()

		return tok, nil

	case isIdentStart(c):
		tok.kind = tokIdent
		tok.text = s.scanIdent()

		return tok, nil

	case c >= '0' && c <= '9':
		return s.scanInt(tok)

	case c == '"':
		return s.scanStr(tok)
	}

	rest := s.src[s.pos:]
	for _, p := range puncts {
		if len(rest) >= len(p) && string(rest[:len(p)]) == p {
			s.advance(len(p))
			tok.kind = tokPunct
			tok.text = p

			return tok, nil
		}
	}

	return tok, fmt.Errorf("%d:%d: %w: %q", tok.line, tok.col, ErrBadToken, string(c))
}

func (s *scanner) scanIdent() string {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.advance(1)
	}

	return string(s.src[start:s.pos])
}

func (s *scanner) scanInt(tok token) (token, error) {
	start := s.pos
	for s.pos < len(s.src) && isIntPart(s.src[s.pos]) {
		s.advance(1)
	}

	text := string(s.src[start:s.pos])

	num, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return tok, fmt.Errorf("%d:%d: %w: %q", tok.line, tok.col, ErrBadInteger, text)
	}

	tok.kind = tokInt
	tok.text = text
	tok.num = num

	return tok, nil
}

func (s *scanner) scanStr(tok token) (token, error) {
	s.advance(1) // opening quote

	var b strings.Builder

	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch c {
		case '"':
			s.advance(1)
			tok.kind = tokStr
			tok.text = b.String()

			return tok, nil

		case '\n':
			return tok, fmt.Errorf("%d:%d: %w: newline in string", tok.line, tok.col, ErrBadString)

		case '\\':
			s.advance(1)

			esc, err := s.scanEscape(tok)
			if err != nil {
				return tok, err
			}

			b.WriteByte(esc)

		default:
			b.WriteByte(c)
			s.advance(1)
		}
	}

	return tok, fmt.Errorf("%d:%d: %w: unterminated", tok.line, tok.col, ErrBadString)
}

func (s *scanner) scanEscape(tok token) (byte, error) {
	if s.pos >= len(s.src) {
		return 0, fmt.Errorf("%d:%d: %w: dangling escape", tok.line, tok.col, ErrBadString)
	}

	c := s.src[s.pos]
	s.advance(1)

	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '\\', '"':
		return c, nil
	case 'x':
		if s.pos+2 > len(s.src) {
			return 0, fmt.Errorf("%d:%d: %w: short hex escape", tok.line, tok.col, ErrBadString)
		}

		v, err := strconv.ParseUint(string(s.src[s.pos:s.pos+2]), 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%d:%d: %w: bad hex escape", tok.line, tok.col, ErrBadString)
		}

		s.advance(2)

		return byte(v), nil
	}

	return 0, fmt.Errorf("%d:%d: %w: unknown escape %q", tok.line, tok.col, ErrBadString, string(c))
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// isIntPart accepts the characters of decimal and hex literals; ParseInt
// rejects the malformed combinations.
func isIntPart(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F') || c == 'x' || c == 'X'
}
