// Package parser turns chord-progression source text into an ast.Score.
//
// The grammar, with alternatives tried in the listed order:
//
//	Score    := (Comment | Measure)*
//	Comment  := "#" <text-to-eol> EOL
//	Measure  := Node+ ("|" | EOL | EOF)
//	Node     := "=" | "_" | "%" | "N.C." | ChordSymbol
//	ChordSymbol := Key Modifier* Tensions? ("/" Key)?
//	Key      := Pitch | ["#"|"b"] RomanNumeral
//	Tensions := "(" (["#"|"b"] N) ("," ["#"|"b"] N)* ")"
package parser

import (
	"strconv"
	"strings"

	"github.com/chordsmith/chordsmith/ast"
	"github.com/chordsmith/chordsmith/pitch"
)

// Parse consumes the whole input or fails with a position-tagged ParseError.
// Line endings are normalized to LF before parsing.
func Parse(code string) (*ast.Score, error) {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	s := newScanner(code)
	score := &ast.Score{}
	for !s.eof() {
		if s.peek() == '#' {
			comment, err := parseComment(s)
			if err != nil {
				return nil, err
			}
			score.Items = append(score.Items, ast.Item{Kind: ast.ItemComment, Comment: comment})
			continue
		}
		m, err := parseMeasure(s)
		if err != nil {
			return nil, err
		}
		score.Items = append(score.Items, ast.Item{Kind: ast.ItemMeasure, Measure: m})
	}
	return score, nil
}

func parseComment(s *scanner) (string, error) {
	s.next() // '#'
	start := s.pos
	for !s.eof() && s.peek() != '\n' {
		s.next()
	}
	if s.eof() {
		return "", s.errorf("newline after comment")
	}
	text := string(s.src[start:s.pos])
	s.next() // '\n'
	return text, nil
}

func parseMeasure(s *scanner) (ast.Measure, error) {
	var m ast.Measure
	for {
		s.skipSpaces()
		n, ok, err := parseNode(s)
		if err != nil {
			return m, err
		}
		if !ok {
			break
		}
		m.Nodes = append(m.Nodes, n)
		s.skipSpaces()
	}
	if len(m.Nodes) == 0 {
		return m, s.errorf("chord, rest, sustain or repeat")
	}
	switch {
	case s.accept("|"):
		m.Break = false
	case s.accept("\n"):
		m.Break = true
	case s.eof():
		m.Break = true
	default:
		return m, s.errorf(`"|" or end of line`)
	}
	return m, nil
}

func parseNode(s *scanner) (ast.Node, bool, error) {
	switch {
	case s.accept("="):
		return ast.Node{Kind: ast.NodeSustain}, true, nil
	case s.accept("_"), s.accept("N.C."):
		return ast.Node{Kind: ast.NodeRest}, true, nil
	case s.accept("%"):
		return ast.Node{Kind: ast.NodeRepeat}, true, nil
	}
	c, ok, err := parseChordNode(s)
	if err != nil {
		return ast.Node{}, false, err
	}
	if !ok {
		return ast.Node{}, false, nil
	}
	return ast.Node{Kind: ast.NodeChord, Chord: c}, true, nil
}

func parseChordNode(s *scanner) (*ast.ChordNode, bool, error) {
	key, ok := parseKey(s)
	if !ok {
		return nil, false, nil
	}
	c := &ast.ChordNode{Key: key}
	for {
		m, ok := parseModifier(s)
		if !ok {
			break
		}
		c.Modifiers = append(c.Modifiers, m)
	}
	tensions, err := parseTensions(s)
	if err != nil {
		return nil, false, err
	}
	c.Tensions = tensions
	if s.accept("/") {
		on, ok := parseKey(s)
		if !ok {
			return nil, false, s.errorf("bass key after /")
		}
		c.On = &on
	}
	return c, true, nil
}

func parseKey(s *scanner) (ast.Key, bool) {
	if p, ok := parsePitch(s); ok {
		return ast.AbsKey(p), true
	}
	save := s.pos
	acc := parseAccidental(s)
	d, ok := parseRoman(s)
	if !ok {
		s.pos = save
		return ast.Key{}, false
	}
	return ast.RelKey(pitch.Major.Semitone(d) + int(acc)), true
}

func parsePitch(s *scanner) (pitch.Pitch, bool) {
	c := s.peek()
	if c < 'A' || c > 'G' {
		return 0, false
	}
	s.next()
	lit := string(c)
	if s.peek() == '#' || s.peek() == 'b' {
		lit += string(s.next())
	}
	p, err := pitch.Parse(lit)
	if err != nil {
		// A dangling accidental cannot occur: every letter with "#" or
		// "b" folds to some pitch class.
		return 0, false
	}
	return p, true
}

func parseAccidental(s *scanner) pitch.Accidental {
	switch s.peek() {
	case '#':
		s.next()
		return pitch.Sharp
	case 'b':
		s.next()
		return pitch.Flat
	}
	return pitch.Natural
}

func parseRoman(s *scanner) (int, bool) {
	// Longest literals first so "IV" is not read as "I".
	lit, ok := s.acceptAny("IV", "VII", "VI", "V", "III", "II", "I")
	if !ok {
		return 0, false
	}
	d, err := pitch.ParseRoman(lit)
	if err != nil {
		return 0, false
	}
	return d, true
}

// parseDegreeNumber recognizes a chord degree number. Two-digit literals are
// tried first so "11" does not stop at "1".
func parseDegreeNumber(s *scanner) (int, bool) {
	lit, ok := s.acceptAny("11", "13", "3", "5", "6", "7", "9")
	if !ok {
		return 0, false
	}
	n, _ := strconv.Atoi(lit)
	return n, true
}

func parseModifier(s *scanner) (ast.Modifier, bool) {
	switch {
	case s.accept("-5"), s.accept("b5"):
		return ast.Modifier{Kind: ast.ModFlat5th}, true
	case s.accept("sus2"):
		return ast.Modifier{Kind: ast.ModSus2}, true
	case s.accept("sus4"):
		return ast.Modifier{Kind: ast.ModSus4}, true
	case s.accept("dim7"):
		return ast.Modifier{Kind: ast.ModDim7}, true
	case s.accept("dim"), s.accept("o"):
		return ast.Modifier{Kind: ast.ModDim}, true
	case s.accept("aug7"):
		return ast.Modifier{Kind: ast.ModAug7}, true
	case s.accept("aug"), s.accept("+"):
		return ast.Modifier{Kind: ast.ModAug}, true
	}
	if save := s.pos; s.accept("add") {
		if d, ok := parseDegreeNumber(s); ok {
			return ast.Modifier{Kind: ast.ModAdd, Degree: d}, true
		}
		s.pos = save
	}
	if save := s.pos; s.accept("omit") || s.accept("no") {
		if d, ok := parseDegreeNumber(s); ok {
			return ast.Modifier{Kind: ast.ModOmit, Degree: d}, true
		}
		s.pos = save
	}
	if s.accept("mM7") {
		return ast.Modifier{Kind: ast.ModMinorMajor7}, true
	}
	if s.accept("maj") || s.accept("M") {
		d, ok := parseDegreeNumber(s)
		if !ok {
			d = 5
		}
		return ast.Modifier{Kind: ast.ModMajor, Degree: d}, true
	}
	if s.accept("m") {
		d, ok := parseDegreeNumber(s)
		if !ok {
			d = 5
		}
		return ast.Modifier{Kind: ast.ModMinor, Degree: d}, true
	}
	if d, ok := parseDegreeNumber(s); ok {
		return ast.Modifier{Kind: ast.ModMajor, Degree: d}, true
	}
	return ast.Modifier{}, false
}

func parseTensions(s *scanner) ([]ast.Modifier, error) {
	if !s.accept("(") {
		return nil, nil
	}
	var tensions []ast.Modifier
	for {
		acc := parseAccidental(s)
		d, ok := parseDegreeNumber(s)
		if !ok {
			return nil, s.errorf("tension degree")
		}
		tensions = append(tensions, ast.Modifier{Kind: ast.ModTension, Degree: d, Acc: acc})
		if s.accept(",") {
			continue
		}
		break
	}
	if !s.accept(")") {
		return nil, s.errorf(`")"`)
	}
	return tensions, nil
}
