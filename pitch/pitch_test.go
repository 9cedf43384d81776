package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePitch(t *testing.T) {
	assert := assert.New(t)

	p, err := Parse("C")
	assert.NoError(err)
	assert.Equal(C, p)

	// enharmonic spellings fold onto the same pitch class
	for in, want := range map[string]Pitch{
		"Db": Cs,
		"Eb": Ds,
		"Fb": E,
		"E#": F,
		"Gb": Fs,
		"Ab": Gs,
		"Bb": As,
		"Cb": B,
	} {
		p, err := Parse(in)
		assert.NoError(err)
		assert.Equal(want, p, in)
	}

	_, err = Parse("H")
	assert.Error(err)
	_, err = Parse("")
	assert.Error(err)
}

func TestPitchArithmetic(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(F, C.Add(5))
	assert.Equal(A, B.Add(-2))
	assert.Equal(C, B.Add(1))

	assert.Equal(5, F.Diff(C))
	assert.Equal(7, C.Diff(F))
	assert.Equal(0, G.Diff(G))

	assert.Equal(B, FromInt(-1))
	assert.Equal(C, FromInt(24))
}

func TestScaleSemitone(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, Major.Semitone(1))
	assert.Equal(2, Major.Semitone(2))
	assert.Equal(4, Major.Semitone(3))
	assert.Equal(5, Major.Semitone(4))
	assert.Equal(7, Major.Semitone(5))
	assert.Equal(9, Major.Semitone(6))
	assert.Equal(11, Major.Semitone(7))

	assert.Equal(3, Minor.Semitone(3))
	assert.Equal(8, Minor.Semitone(6))
	assert.Equal(10, Minor.Semitone(7))

	// extended degrees continue into the next octave
	assert.Equal(14, Major.Semitone(9))
	assert.Equal(17, Major.Semitone(11))
	assert.Equal(21, Major.Semitone(13))
	assert.Equal(14, Minor.Semitone(9))
}

func TestDegreeFromSemitone(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Degree{Value: 1, Acc: Natural}, DegreeFromSemitone(0))
	assert.Equal(Degree{Value: 1, Acc: Sharp}, DegreeFromSemitone(1))
	assert.Equal(Degree{Value: 4, Acc: Natural}, DegreeFromSemitone(5))
	assert.Equal(Degree{Value: 4, Acc: Sharp}, DegreeFromSemitone(6))
	assert.Equal(Degree{Value: 7, Acc: Natural}, DegreeFromSemitone(11))

	assert.Equal("IV", DegreeFromSemitone(5).String())
	assert.Equal("#IV", DegreeFromSemitone(6).String())
}

func TestParseRoman(t *testing.T) {
	assert := assert.New(t)

	for in, want := range map[string]int{
		"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6, "VII": 7,
	} {
		d, err := ParseRoman(in)
		assert.NoError(err)
		assert.Equal(want, d, in)
	}

	_, err := ParseRoman("VIII")
	assert.Error(err)
}
