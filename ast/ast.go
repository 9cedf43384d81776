package ast

import (
	"github.com/chordsmith/chordsmith/pitch"
)

// KeyKind distinguishes an absolute pitch root from a tonic-relative one.
type KeyKind int

const (
	AbsoluteKey KeyKind = iota
	RelativeKey
)

// Key names a chord root or bass note, either as a fixed pitch class or as a
// semitone distance from a tonic that is supplied later.
type Key struct {
	Kind     KeyKind
	Pitch    pitch.Pitch // valid when Kind == AbsoluteKey
	Semitone int         // valid when Kind == RelativeKey, in [0, 12)
}

func AbsKey(p pitch.Pitch) Key {
	return Key{Kind: AbsoluteKey, Pitch: p}
}

func RelKey(semitone int) Key {
	return Key{Kind: RelativeKey, Semitone: ((semitone % 12) + 12) % 12}
}

func (k Key) String() string {
	if k.Kind == AbsoluteKey {
		return k.Pitch.String()
	}
	return pitch.DegreeFromSemitone(k.Semitone).String()
}

// AsDegree rewrites an absolute key as a distance from tonic. Relative keys
// are left alone.
func (k *Key) AsDegree(tonic pitch.Pitch) {
	if k.Kind == AbsoluteKey {
		*k = RelKey(k.Pitch.Diff(tonic))
	}
}

// AsPitch pins a relative key to a concrete tonic. Absolute keys are left
// alone.
func (k *Key) AsPitch(tonic pitch.Pitch) {
	if k.Kind == RelativeKey {
		*k = AbsKey(tonic.Add(k.Semitone))
	}
}

// ModifierKind tags a textual chord alteration. The declaration order is the
// canonical application order used by the resolution engine.
type ModifierKind int

const (
	ModMajor ModifierKind = iota
	ModMinor
	ModMinorMajor7
	ModSus2
	ModSus4
	ModFlat5th
	ModAug
	ModAug7
	ModDim
	ModDim7
	ModOmit
	ModAdd
	ModTension
)

// Modifier is a parsed alteration intent. It carries no chord arithmetic;
// the resolution engine interprets it.
type Modifier struct {
	Kind   ModifierKind
	Degree int              // ModMajor, ModMinor, ModOmit, ModAdd, ModTension
	Acc    pitch.Accidental // ModTension
}

// ChordNode is a chord symbol as written: root, modifiers in textual order,
// parenthesized tensions, and an optional bass override.
type ChordNode struct {
	Key       Key
	Modifiers []Modifier
	Tensions  []Modifier
	On        *Key
}

// NodeKind is the kind of one rhythmic slot in a measure.
type NodeKind int

const (
	NodeChord NodeKind = iota
	NodeRest
	NodeSustain
	NodeRepeat
)

type Node struct {
	Kind  NodeKind
	Chord *ChordNode // valid when Kind == NodeChord
}

// Measure is one bar of rhythmic slots. Break records whether the source
// ended the measure with a line break rather than a "|"; it only matters for
// re-rendering.
type Measure struct {
	Nodes []Node
	Break bool
}

type ItemKind int

const (
	ItemComment ItemKind = iota
	ItemMeasure
)

type Item struct {
	Kind    ItemKind
	Comment string
	Measure Measure
}

// Score is the parsed source: a flat sequence of comments and measures.
type Score struct {
	Items []Item
}

// AsDegree rewrites every chord root and bass in place as a distance from
// tonic.
func (s *Score) AsDegree(tonic pitch.Pitch) {
	s.eachChord(func(c *ChordNode) {
		c.Key.AsDegree(tonic)
		if c.On != nil {
			c.On.AsDegree(tonic)
		}
	})
}

// AsPitch pins every relative chord root and bass in place to tonic.
func (s *Score) AsPitch(tonic pitch.Pitch) {
	s.eachChord(func(c *ChordNode) {
		c.Key.AsPitch(tonic)
		if c.On != nil {
			c.On.AsPitch(tonic)
		}
	})
}

func (s *Score) eachChord(f func(*ChordNode)) {
	for i := range s.Items {
		if s.Items[i].Kind != ItemMeasure {
			continue
		}
		nodes := s.Items[i].Measure.Nodes
		for j := range nodes {
			if nodes[j].Kind == NodeChord {
				f(nodes[j].Chord)
			}
		}
	}
}
