package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chordsmith/chordsmith/ast"
	"github.com/chordsmith/chordsmith/pitch"
)

func TestParseSexpScore(t *testing.T) {
	assert := assert.New(t)

	s, err := ParseSexp("(score (C D) (E F))")
	assert.NoError(err)
	assert.Len(s.Items, 2)
	assert.Equal(ast.AbsKey(pitch.C), s.Items[0].Measure.Nodes[0].Chord.Key)
	assert.Equal(ast.AbsKey(pitch.D), s.Items[0].Measure.Nodes[1].Chord.Key)
	assert.Equal(ast.AbsKey(pitch.E), s.Items[1].Measure.Nodes[0].Chord.Key)
	assert.Equal(ast.AbsKey(pitch.F), s.Items[1].Measure.Nodes[1].Chord.Key)
}

func TestParseSexpDegrees(t *testing.T) {
	assert := assert.New(t)

	// accidentals trail the numeral in this dialect
	s, err := ParseSexp("(score (I# IV))")
	assert.NoError(err)
	assert.Equal(ast.RelKey(1), s.Items[0].Measure.Nodes[0].Chord.Key)
	assert.Equal(ast.RelKey(5), s.Items[0].Measure.Nodes[1].Chord.Key)

	s, err = ParseSexp("(score (VIIb))")
	assert.NoError(err)
	assert.Equal(ast.RelKey(10), s.Items[0].Measure.Nodes[0].Chord.Key)
}

func TestParseSexpKeyed(t *testing.T) {
	assert := assert.New(t)

	keyed, err := ParseSexp("(score (keyed C (I IV)) (keyed D (I IV)))")
	assert.NoError(err)
	plain, err := ParseSexp("(score (C F) (D G))")
	assert.NoError(err)
	assert.Equal(plain, keyed)

	_, err = ParseSexp("(score (keyed IV (I)))")
	assert.Error(err)
}

func TestParseSexpNodes(t *testing.T) {
	assert := assert.New(t)

	s, err := ParseSexp("(score (N.C. = _ %) ((chord C)))")
	assert.NoError(err)
	kinds := []ast.NodeKind{}
	for _, n := range s.Items[0].Measure.Nodes {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal([]ast.NodeKind{ast.NodeRest, ast.NodeSustain, ast.NodeRest, ast.NodeRepeat}, kinds)
	assert.Equal(ast.AbsKey(pitch.C), s.Items[1].Measure.Nodes[0].Chord.Key)
}

func TestParseSexpErrors(t *testing.T) {
	assert := assert.New(t)

	for _, code := range []string{
		"",
		"(score (C)",
		"(score (C)))",
		"(measure (C))",
		"(score (X))",
		"C",
	} {
		_, err := ParseSexp(code)
		assert.Error(err, code)
	}
}
