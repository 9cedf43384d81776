package pitch

import "fmt"

// Pitch is one of the 12 chromatic pitch classes, C = 0.
type Pitch int

const (
	C Pitch = iota
	Cs
	D
	Ds
	E
	F
	Fs
	G
	Gs
	A
	As
	B
)

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (p Pitch) String() string {
	return pitchNames[int(p)%12]
}

// Parse recognizes a pitch literal with enharmonic folding, e.g. Db == C#.
func Parse(s string) (Pitch, error) {
	switch s {
	case "C":
		return C, nil
	case "C#", "Db":
		return Cs, nil
	case "D":
		return D, nil
	case "D#", "Eb":
		return Ds, nil
	case "E", "Fb":
		return E, nil
	case "F", "E#":
		return F, nil
	case "F#", "Gb":
		return Fs, nil
	case "G":
		return G, nil
	case "G#", "Ab":
		return Gs, nil
	case "A":
		return A, nil
	case "A#", "Bb":
		return As, nil
	case "B":
		return B, nil
	case "B#":
		return Cs, nil
	case "Cb":
		return B, nil
	}
	return 0, fmt.Errorf("invalid pitch: %q", s)
}

// FromInt folds any signed semitone count onto a pitch class.
func FromInt(n int) Pitch {
	return Pitch(((n % 12) + 12) % 12)
}

// Add transposes p by a signed number of semitones, mod 12.
func (p Pitch) Add(semitones int) Pitch {
	return FromInt(int(p) + semitones)
}

// Diff returns the upward distance from other to p in [0, 12).
func (p Pitch) Diff(other Pitch) int {
	return ((int(p) - int(other)) + 12) % 12
}

// Accidental is a chromatic adjustment of a degree or pitch letter.
type Accidental int

const (
	Natural Accidental = 0
	Sharp   Accidental = 1
	Flat    Accidental = -1
)

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	}
	return ""
}

func ParseAccidental(s string) (Accidental, error) {
	switch s {
	case "#":
		return Sharp, nil
	case "b":
		return Flat, nil
	}
	return Natural, fmt.Errorf("invalid accidental: %q", s)
}
