package pitch

import "fmt"

// Scale is a diatonic step pattern mapping scale degrees to semitone
// distances from a tonic.
type Scale int

const (
	Major Scale = iota
	Minor
)

func (s Scale) steps() [7]int {
	if s == Minor {
		return [7]int{2, 1, 2, 2, 1, 2, 2}
	}
	return [7]int{2, 2, 1, 2, 2, 2, 1}
}

// Semitone returns the semitone distance of a scale degree from the tonic.
// Extended degrees (9, 11, 13) continue the pattern into the next octave.
func (s Scale) Semitone(degree int) int {
	steps := s.steps()
	semitone := 0
	for i := 0; i < degree-1; i++ {
		semitone += steps[i%7]
	}
	return semitone
}

var romanNames = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// Degree is a scale position paired with an accidental, used for
// roman-numeral keys and parenthesized tensions.
type Degree struct {
	Value int
	Acc   Accidental
}

func (d Degree) String() string {
	if d.Value < 1 || d.Value > 7 {
		return fmt.Sprintf("?%d", d.Value)
	}
	return d.Acc.String() + romanNames[d.Value-1]
}

// DegreeFromSemitone names a chromatic distance from the tonic as a natural
// or sharpened major-scale degree.
func DegreeFromSemitone(semitone int) Degree {
	s := ((semitone % 12) + 12) % 12
	for d := 7; d >= 1; d-- {
		base := Major.Semitone(d)
		if base == s {
			return Degree{Value: d, Acc: Natural}
		}
		if base == s-1 {
			return Degree{Value: d, Acc: Sharp}
		}
	}
	return Degree{Value: 1, Acc: Natural}
}

// ParseRoman maps a roman numeral I..VII to its degree number.
func ParseRoman(s string) (int, error) {
	switch s {
	case "I":
		return 1, nil
	case "II":
		return 2, nil
	case "III":
		return 3, nil
	case "IV":
		return 4, nil
	case "V":
		return 5, nil
	case "VI":
		return 6, nil
	case "VII":
		return 7, nil
	}
	return 0, fmt.Errorf("invalid roman numeral: %q", s)
}
