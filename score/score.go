// Package score turns a parsed progression into timed note events.
package score

import (
	"errors"
	"fmt"

	"github.com/chordsmith/chordsmith/ast"
	"github.com/chordsmith/chordsmith/chord"
	"github.com/chordsmith/chordsmith/constants"
	"github.com/chordsmith/chordsmith/pitch"
)

// InvalidMeasureLengthError reports a measure whose node count cannot divide
// the measure evenly.
type InvalidMeasureLengthError struct {
	N int
}

func (e *InvalidMeasureLengthError) Error() string {
	return fmt.Sprintf("invalid measure length: %d nodes", e.N)
}

// ErrMissingTonic is returned when a relative-keyed chord is interpreted
// without a tonic to pin it to.
var ErrMissingTonic = errors.New("tonic is not set")

// Note is one emitted event: a chord held for Duration rhythmic units, or a
// rest of that length when Chord is nil.
type Note struct {
	Chord    *chord.Chord
	Duration int
}

// interpreter accumulates at most one pending hold and one pending rest
// while walking the score left to right.
type interpreter struct {
	tonic   *pitch.Pitch
	notes   []Note
	sustain int
	rest    int
	pre     *chord.Chord
}

// Interpret resolves every measure of s into a flat Note list. tonic is
// required only when the score contains relative (roman-numeral) keys.
func Interpret(s *ast.Score, tonic *pitch.Pitch) ([]Note, error) {
	in := &interpreter{tonic: tonic}
	for _, item := range s.Items {
		if item.Kind != ast.ItemMeasure {
			continue
		}
		unit, err := measureUnit(len(item.Measure.Nodes))
		if err != nil {
			return nil, err
		}
		for _, n := range item.Measure.Nodes {
			if err := in.node(n, unit); err != nil {
				return nil, err
			}
		}
	}
	if in.sustain != 0 {
		in.notes = append(in.notes, Note{Chord: in.pre, Duration: in.sustain})
	}
	return in.notes, nil
}

// measureUnit is the length of one node slot, in rhythmic units, for a
// measure of n nodes.
func measureUnit(n int) (int, error) {
	switch n {
	case 1, 2, 4, 8, 16:
		return constants.MeasureLength / n, nil
	default:
		return 0, &InvalidMeasureLengthError{N: n}
	}
}

func (in *interpreter) node(n ast.Node, unit int) error {
	if n.Kind != ast.NodeSustain && in.sustain != 0 {
		in.notes = append(in.notes, Note{Chord: in.pre, Duration: in.sustain})
		in.sustain = 0
	}
	if n.Kind != ast.NodeRest && in.rest != 0 {
		in.notes = append(in.notes, Note{Duration: in.rest})
		in.rest = 0
	}
	switch n.Kind {
	case ast.NodeChord:
		c, err := in.resolve(n.Chord)
		if err != nil {
			return err
		}
		if in.pre != nil {
			if err := c.SetNearestOctave(in.pre); err != nil {
				return err
			}
		}
		in.pre = c
		in.sustain = unit
	case ast.NodeRepeat:
		in.sustain = unit
	case ast.NodeSustain:
		in.sustain += unit
	case ast.NodeRest:
		in.rest += unit
	}
	return nil
}

// resolve pins any relative keys to the tonic before chord resolution. The
// node is copied so interpretation never rewrites the parsed tree.
func (in *interpreter) resolve(node *ast.ChordNode) (*chord.Chord, error) {
	n := *node
	if n.Key.Kind == ast.RelativeKey || (n.On != nil && n.On.Kind == ast.RelativeKey) {
		if in.tonic == nil {
			return nil, ErrMissingTonic
		}
		n.Key.AsPitch(*in.tonic)
		if n.On != nil {
			on := *n.On
			on.AsPitch(*in.tonic)
			n.On = &on
		}
	}
	return chord.Resolve(&n, constants.DefaultOctave)
}
