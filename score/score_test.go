package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chordsmith/chordsmith/ast"
	"github.com/chordsmith/chordsmith/parser"
	"github.com/chordsmith/chordsmith/pitch"
)

func interpretSource(t *testing.T, code string, tonic *pitch.Pitch) ([]Note, error) {
	t.Helper()
	s, err := parser.Parse(code)
	assert.NoError(t, err, code)
	return Interpret(s, tonic)
}

func noteSemitones(t *testing.T, n Note) []int {
	t.Helper()
	assert.NotNil(t, n.Chord)
	got, err := n.Chord.Semitones()
	assert.NoError(t, err)
	return got
}

func TestInterpretSingleChord(t *testing.T) {
	assert := assert.New(t)

	notes, err := interpretSource(t, "C\n", nil)
	assert.NoError(err)
	assert.Len(notes, 1)
	assert.Equal(16, notes[0].Duration)
	assert.Equal([]int{60, 64, 67}, noteSemitones(t, notes[0]))
}

func TestInterpretMeasureLengths(t *testing.T) {
	assert := assert.New(t)

	for n, dur := range map[int]int{1: 16, 2: 8, 4: 4, 8: 2, 16: 1} {
		m := ast.Measure{}
		for i := 0; i < n; i++ {
			m.Nodes = append(m.Nodes, ast.Node{
				Kind:  ast.NodeChord,
				Chord: &ast.ChordNode{Key: ast.AbsKey(pitch.C)},
			})
		}
		notes, err := Interpret(&ast.Score{Items: []ast.Item{{Kind: ast.ItemMeasure, Measure: m}}}, nil)
		assert.NoError(err, n)
		assert.Len(notes, n)
		assert.Equal(dur, notes[0].Duration, n)
	}

	for _, n := range []int{3, 5, 17} {
		m := ast.Measure{}
		for i := 0; i < n; i++ {
			m.Nodes = append(m.Nodes, ast.Node{Kind: ast.NodeRest})
		}
		_, err := Interpret(&ast.Score{Items: []ast.Item{{Kind: ast.ItemMeasure, Measure: m}}}, nil)
		var invalid *InvalidMeasureLengthError
		assert.ErrorAs(err, &invalid, n)
		assert.Equal(n, invalid.N)
	}
}

func TestInterpretSustainAndRest(t *testing.T) {
	assert := assert.New(t)

	notes, err := interpretSource(t, "C = _ %\n", nil)
	assert.NoError(err)
	assert.Len(notes, 3)

	// chord held through the sustain slot
	assert.Equal(8, notes[0].Duration)
	assert.Equal([]int{60, 64, 67}, noteSemitones(t, notes[0]))

	// rest slot
	assert.Nil(notes[1].Chord)
	assert.Equal(4, notes[1].Duration)

	// repeat re-emits the held chord as a fresh event
	assert.Equal(4, notes[2].Duration)
	assert.Equal([]int{60, 64, 67}, noteSemitones(t, notes[2]))
}

func TestInterpretSustainBeforeChord(t *testing.T) {
	assert := assert.New(t)

	notes, err := interpretSource(t, "=\n", nil)
	assert.NoError(err)
	assert.Len(notes, 1)
	assert.Nil(notes[0].Chord)
	assert.Equal(16, notes[0].Duration)
}

func TestInterpretTonic(t *testing.T) {
	assert := assert.New(t)

	_, err := interpretSource(t, "IV\n", nil)
	assert.ErrorIs(err, ErrMissingTonic)

	tonic := pitch.C
	notes, err := interpretSource(t, "IV\n", &tonic)
	assert.NoError(err)
	assert.Equal([]int{65, 69, 72}, noteSemitones(t, notes[0]))
}

func TestInterpretDoesNotRewriteTree(t *testing.T) {
	assert := assert.New(t)

	s, err := parser.Parse("IV\n")
	assert.NoError(err)
	tonic := pitch.C
	_, err = Interpret(s, &tonic)
	assert.NoError(err)
	assert.Equal(ast.RelKey(5), s.Items[0].Measure.Nodes[0].Chord.Key)
}

func TestInterpretOctaveContinuity(t *testing.T) {
	assert := assert.New(t)

	notes, err := interpretSource(t, "C | Am F G %\n", nil)
	assert.NoError(err)
	assert.Len(notes, 5)

	assert.Equal(16, notes[0].Duration)
	assert.Equal([]int{60, 64, 67}, noteSemitones(t, notes[0]))

	for _, n := range notes[1:] {
		assert.Equal(4, n.Duration)
	}
	assert.Equal([]int{57, 60, 64}, noteSemitones(t, notes[1])) // Am
	assert.Equal([]int{53, 57, 60}, noteSemitones(t, notes[2])) // F
	assert.Equal([]int{55, 59, 62}, noteSemitones(t, notes[3])) // G
	assert.Equal([]int{55, 59, 62}, noteSemitones(t, notes[4])) // %
}

func TestInterpretSkipsComments(t *testing.T) {
	assert := assert.New(t)

	notes, err := interpretSource(t, "# intro\nC\n", nil)
	assert.NoError(err)
	assert.Len(notes, 1)
}
