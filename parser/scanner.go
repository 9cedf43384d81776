package parser

import "fmt"

// ParseError reports the first byte the grammar could not consume.
type ParseError struct {
	Offset   int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: expected %s", e.Offset, e.Expected)
}

// scanner is a rune cursor over the source with position-based backtracking.
type scanner struct {
	src []rune
	pos int
}

func newScanner(code string) *scanner {
	return &scanner{src: []rune(code)}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) next() rune {
	c := s.peek()
	s.pos++
	return c
}

// accept consumes lit if it is next in the input.
func (s *scanner) accept(lit string) bool {
	save := s.pos
	for _, c := range lit {
		if s.eof() || s.src[s.pos] != c {
			s.pos = save
			return false
		}
		s.pos++
	}
	return true
}

// acceptAny consumes the first literal that matches, returning it.
func (s *scanner) acceptAny(lits ...string) (string, bool) {
	for _, lit := range lits {
		if s.accept(lit) {
			return lit, true
		}
	}
	return "", false
}

// skipSpaces consumes spaces and tabs, never newlines.
func (s *scanner) skipSpaces() {
	for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func (s *scanner) errorf(expected string) *ParseError {
	return &ParseError{Offset: s.pos, Expected: expected}
}
