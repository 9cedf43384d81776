// Package chord resolves parsed chord symbols into playable note sets.
package chord

import (
	"fmt"
	"sort"

	"github.com/chordsmith/chordsmith/ast"
	"github.com/chordsmith/chordsmith/pitch"
	"github.com/chordsmith/chordsmith/util"
)

// UnknownModifierError reports a modifier/degree combination with no defined
// chord shape, such as Major(11).
type UnknownModifierError struct {
	Modifier ast.Modifier
}

func (e *UnknownModifierError) Error() string {
	return fmt.Sprintf("unknown modifier: kind=%d degree=%d", e.Modifier.Kind, e.Modifier.Degree)
}

// KeyTypeMismatchError reports an operation that needed two keys in the same
// frame (both absolute or both relative) but got one of each.
type KeyTypeMismatchError struct {
	Key ast.Key
}

func (e *KeyTypeMismatchError) Error() string {
	return fmt.Sprintf("key type mismatch: %s", e.Key.String())
}

// Chord is a resolved chord: a root key, an optional bass override, and a
// map from scale degree to signed chromatic offset. Offsets are stored
// relative to the major diatonic slot of each degree, so the entry {3: -1}
// is a minor third. Octave is the only field rewritten after resolution,
// by the voicing searches below.
type Chord struct {
	Octave    int
	Inversion int
	Key       ast.Key
	On        *ast.Key
	Degrees   map[int]int
}

// Resolve builds a Chord from a parsed symbol at the given octave. Modifiers
// are applied in canonical order, not textual order, so conflicting spellings
// of the same symbol resolve identically. If the symbol carries a bass
// override, the voicing search pins octave and inversion to it.
func Resolve(node *ast.ChordNode, octave int) (*Chord, error) {
	c := &Chord{
		Octave:  octave,
		Key:     node.Key,
		On:      node.On,
		Degrees: map[int]int{1: 0, 3: 0, 5: 0},
	}
	mods := make([]ast.Modifier, 0, len(node.Modifiers)+len(node.Tensions))
	mods = append(mods, node.Modifiers...)
	mods = append(mods, node.Tensions...)
	for _, m := range canonicalize(mods) {
		if err := c.modify(m); err != nil {
			return nil, err
		}
	}
	if node.On != nil {
		if node.On.Kind != ast.AbsoluteKey {
			return nil, &KeyTypeMismatchError{Key: *node.On}
		}
		target := 12*octave + int(node.On.Pitch)
		oct, inv, err := c.MatchPitches(target)
		if err != nil {
			return nil, err
		}
		c.Octave, c.Inversion = oct, inv
	}
	return c, nil
}

func accRank(a pitch.Accidental) int {
	switch a {
	case pitch.Sharp:
		return 1
	case pitch.Flat:
		return 2
	}
	return 0
}

// canonicalize sorts modifiers by (kind, degree, accidental) and drops exact
// duplicates, reproducing application over an order-independent unique set.
func canonicalize(mods []ast.Modifier) []ast.Modifier {
	sorted := make([]ast.Modifier, len(mods))
	copy(sorted, mods)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Degree != b.Degree {
			return a.Degree < b.Degree
		}
		return accRank(a.Acc) < accRank(b.Acc)
	})
	out := sorted[:0]
	for i, m := range sorted {
		if i > 0 && m == sorted[i-1] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// scaleInForce reports which diatonic pattern later lookups resolve against:
// minor if the chord currently sounds a minor third, major otherwise.
func (c *Chord) scaleInForce() pitch.Scale {
	for d, off := range c.Degrees {
		if pitch.Major.Semitone(d)+off == pitch.Minor.Semitone(3) {
			return pitch.Minor
		}
	}
	return pitch.Major
}

// setShape replaces the degree map with the given degrees at the scale's
// diatonic positions.
func (c *Chord) setShape(s pitch.Scale, degrees ...int) {
	c.Degrees = make(map[int]int, len(degrees))
	for _, d := range degrees {
		c.Degrees[d] = s.Semitone(d) - pitch.Major.Semitone(d)
	}
}

func (c *Chord) modify(m ast.Modifier) error {
	switch m.Kind {
	case ast.ModMajor, ast.ModMinor:
		s := pitch.Major
		if m.Kind == ast.ModMinor {
			s = pitch.Minor
		}
		switch m.Degree {
		case 5:
			c.setShape(s, 1, 3, 5)
		case 6:
			c.setShape(s, 1, 3, 5, 6)
		case 7:
			c.setShape(s, 1, 3, 5, 7)
		case 9:
			c.setShape(s, 1, 3, 5, 7, 9)
		default:
			return &UnknownModifierError{Modifier: m}
		}
	case ast.ModMinorMajor7:
		c.setShape(pitch.Minor, 1, 3, 5)
		c.Degrees[7] = 0
	case ast.ModSus2:
		c.Degrees[3] = -1
	case ast.ModSus4:
		c.Degrees[3] = 1
	case ast.ModFlat5th:
		c.Degrees[5] = -1
	case ast.ModAug:
		c.Degrees[5] = 1
	case ast.ModAug7:
		c.Degrees[5] = 1
		c.Degrees[7] = 1
	case ast.ModDim:
		c.Degrees[3] = -1
		c.Degrees[5] = -1
	case ast.ModDim7:
		c.Degrees[3] = -1
		c.Degrees[5] = -1
		c.Degrees[7] = -2
	case ast.ModOmit:
		delete(c.Degrees, m.Degree)
	case ast.ModAdd:
		s := c.scaleInForce()
		c.Degrees[m.Degree] = s.Semitone(m.Degree) - pitch.Major.Semitone(m.Degree)
	case ast.ModTension:
		s := c.scaleInForce()
		c.Degrees[m.Degree] = s.Semitone(m.Degree) - pitch.Major.Semitone(m.Degree) + int(m.Acc)
	default:
		return &UnknownModifierError{Modifier: m}
	}
	return nil
}

// Intervals returns the sounding semitone distances from the root, sorted
// ascending with duplicates removed.
func (c *Chord) Intervals() []int {
	set := make(map[int]struct{}, len(c.Degrees))
	for d, off := range c.Degrees {
		set[pitch.Major.Semitone(d)+off] = struct{}{}
	}
	return util.SortedKeys(set)
}

// Semitones returns the absolute note numbers of the chord. The root must be
// an absolute key by the time a chord is played.
func (c *Chord) Semitones() ([]int, error) {
	if c.Key.Kind != ast.AbsoluteKey {
		return nil, &KeyTypeMismatchError{Key: c.Key}
	}
	base := 12*c.Octave + int(c.Key.Pitch)
	intervals := c.Intervals()
	out := make([]int, len(intervals))
	for i, s := range intervals {
		out[i] = base + s
	}
	return out, nil
}

// MatchPitches searches octaves 0..7 and every inversion for the voicing
// whose note at the inversion position lands closest to target. Ties go to
// the first candidate in ascending (octave, inversion) order.
func (c *Chord) MatchPitches(target int) (int, int, error) {
	if c.Key.Kind != ast.AbsoluteKey {
		return 0, 0, &KeyTypeMismatchError{Key: c.Key}
	}
	intervals := c.Intervals()
	best, bestOct, bestInv := int(^uint(0)>>1), 0, 0
	for oct := 0; oct < 8; oct++ {
		for inv := 0; inv < len(intervals); inv++ {
			root := 12*oct + int(c.Key.Pitch) + intervals[inv]
			if d := util.Abs(root - target); d < best {
				best, bestOct, bestInv = d, oct, inv
			}
		}
	}
	return bestOct, bestInv, nil
}

// Distance is the voicing distance to another chord: the absolute root
// distance plus pairwise semitone differences, zipped over the shorter of
// the two interval lists. Both chords must use the same key kind.
func (c *Chord) Distance(other *Chord) (int, error) {
	if c.Key.Kind != other.Key.Kind {
		return 0, &KeyTypeMismatchError{Key: other.Key}
	}
	var a, b int
	if c.Key.Kind == ast.AbsoluteKey {
		a = 12*c.Octave + int(c.Key.Pitch)
		b = 12*other.Octave + int(other.Key.Pitch)
	} else {
		a = 12*c.Octave + c.Key.Semitone
		b = 12*other.Octave + other.Key.Semitone
	}
	dist := util.Abs(a - b)
	is, os := c.Intervals(), other.Intervals()
	n := util.Min(len(is), len(os))
	for i := 0; i < n; i++ {
		dist += util.Abs((a + is[i]) - (b + os[i]))
	}
	return dist, nil
}

// SetNearestOctave moves the chord to whichever of pre's neighboring octaves
// minimizes the voicing distance to pre. Ties prefer the smaller octave
// shift, then the lower octave. Candidates never go below octave 0, so a
// long descending progression bottoms out instead of producing negative
// note numbers.
func (c *Chord) SetNearestOctave(pre *Chord) error {
	bestOctave, bestDist, bestOff := c.Octave, -1, 0
	for _, off := range []int{-1, 0, 1} {
		cand := *c
		cand.Octave = pre.Octave + off
		if cand.Octave < 0 {
			cand.Octave = 0
		}
		d, err := cand.Distance(pre)
		if err != nil {
			return err
		}
		better := bestDist < 0 || d < bestDist ||
			(d == bestDist && (util.Abs(off) < util.Abs(bestOff) ||
				(util.Abs(off) == util.Abs(bestOff) && off < bestOff)))
		if better {
			bestOctave, bestDist, bestOff = cand.Octave, d, off
		}
	}
	c.Octave = bestOctave
	return nil
}
