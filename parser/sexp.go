package parser

import (
	"fmt"
	"strings"

	"github.com/chordsmith/chordsmith/ast"
	"github.com/chordsmith/chordsmith/pitch"
)

// ParseSexp reads a score in the s-expression dialect:
//
//	(score MEASURE...)
//	MEASURE := (NODE...) | (keyed PITCH MEASURE)
//	NODE    := N.C. | _ | = | % | KEY | (chord KEY)
//
// A keyed form pins every relative key in its measure to the given pitch.
// Roman-numeral keys take a trailing accidental here ("I#"), unlike the
// progression notation where the accidental is a prefix.
func ParseSexp(code string) (*ast.Score, error) {
	sx, err := readSexp(code)
	if err != nil {
		return nil, err
	}
	if len(sx.list) == 0 || sx.list[0].atom != "score" {
		return nil, fmt.Errorf("expected (score ...), got %s", sx)
	}
	score := &ast.Score{}
	for _, m := range sx.list[1:] {
		measure, err := sexpMeasure(m)
		if err != nil {
			return nil, err
		}
		score.Items = append(score.Items, ast.Item{Kind: ast.ItemMeasure, Measure: measure})
	}
	return score, nil
}

func sexpMeasure(sx sexp) (ast.Measure, error) {
	if !sx.isList {
		return ast.Measure{}, fmt.Errorf("expected measure list, got %s", sx)
	}
	if len(sx.list) == 3 && sx.list[0].atom == "keyed" {
		key, err := sexpKey(sx.list[1].atom)
		if err != nil {
			return ast.Measure{}, err
		}
		if key.Kind != ast.AbsoluteKey {
			return ast.Measure{}, fmt.Errorf("keyed pitch must be absolute: %s", sx.list[1])
		}
		m, err := sexpMeasure(sx.list[2])
		if err != nil {
			return ast.Measure{}, err
		}
		for _, n := range m.Nodes {
			if n.Kind != ast.NodeChord {
				continue
			}
			n.Chord.Key.AsPitch(key.Pitch)
			if n.Chord.On != nil {
				n.Chord.On.AsPitch(key.Pitch)
			}
		}
		return m, nil
	}
	var m ast.Measure
	for _, n := range sx.list {
		node, err := sexpNode(n)
		if err != nil {
			return ast.Measure{}, err
		}
		m.Nodes = append(m.Nodes, node)
	}
	return m, nil
}

func sexpNode(sx sexp) (ast.Node, error) {
	if sx.isList {
		if len(sx.list) == 2 && sx.list[0].atom == "chord" {
			key, err := sexpKey(sx.list[1].atom)
			if err != nil {
				return ast.Node{}, err
			}
			return ast.Node{Kind: ast.NodeChord, Chord: &ast.ChordNode{Key: key}}, nil
		}
		return ast.Node{}, fmt.Errorf("unexpected form: %s", sx)
	}
	switch sx.atom {
	case "N.C.", "_":
		return ast.Node{Kind: ast.NodeRest}, nil
	case "=":
		return ast.Node{Kind: ast.NodeSustain}, nil
	case "%":
		return ast.Node{Kind: ast.NodeRepeat}, nil
	}
	key, err := sexpKey(sx.atom)
	if err != nil {
		return ast.Node{}, err
	}
	return ast.Node{Kind: ast.NodeChord, Chord: &ast.ChordNode{Key: key}}, nil
}

func sexpKey(atom string) (ast.Key, error) {
	if p, err := pitch.Parse(atom); err == nil {
		return ast.AbsKey(p), nil
	}
	roman := atom
	acc := pitch.Natural
	switch {
	case strings.HasSuffix(atom, "#"):
		roman, acc = atom[:len(atom)-1], pitch.Sharp
	case strings.HasSuffix(atom, "b"):
		roman, acc = atom[:len(atom)-1], pitch.Flat
	}
	d, err := pitch.ParseRoman(roman)
	if err != nil {
		return ast.Key{}, fmt.Errorf("invalid key: %s", atom)
	}
	return ast.RelKey(pitch.Major.Semitone(d) + int(acc)), nil
}

// sexp is one node of the read tree: either an atom or a list.
type sexp struct {
	atom   string
	list   []sexp
	isList bool
}

func (s sexp) String() string {
	if !s.isList {
		return s.atom
	}
	parts := make([]string, 0, len(s.list))
	for _, c := range s.list {
		parts = append(parts, c.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// readSexp reads a single expression and requires the input to be consumed.
func readSexp(code string) (sexp, error) {
	toks := tokenizeSexp(code)
	sx, rest, err := readFrom(toks)
	if err != nil {
		return sexp{}, err
	}
	if len(rest) > 0 {
		return sexp{}, fmt.Errorf("trailing input after expression: %s", rest[0])
	}
	return sx, nil
}

func tokenizeSexp(code string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, c := range code {
		switch c {
		case '(', ')':
			flush()
			toks = append(toks, string(c))
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return toks
}

func readFrom(toks []string) (sexp, []string, error) {
	if len(toks) == 0 {
		return sexp{}, nil, fmt.Errorf("unexpected end of input")
	}
	switch toks[0] {
	case "(":
		sx := sexp{isList: true}
		toks = toks[1:]
		for {
			if len(toks) == 0 {
				return sexp{}, nil, fmt.Errorf(`unexpected end of input, want ")"`)
			}
			if toks[0] == ")" {
				return sx, toks[1:], nil
			}
			child, rest, err := readFrom(toks)
			if err != nil {
				return sexp{}, nil, err
			}
			sx.list = append(sx.list, child)
			toks = rest
		}
	case ")":
		return sexp{}, nil, fmt.Errorf(`unexpected ")"`)
	default:
		return sexp{atom: toks[0]}, toks[1:], nil
	}
}
