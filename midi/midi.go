// Package midi serializes interpreted notes into standard MIDI files.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/chordsmith/chordsmith/constants"
	"github.com/chordsmith/chordsmith/score"
)

// WriteSMF writes notes as a single-track SMF. All pitches of one chord
// share the same on and off ticks; rests become delta time carried into the
// next chord's first note-on.
func WriteSMF(w io.Writer, notes []score.Note, bpm float64) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(bpm))

	var skip uint32
	for _, n := range notes {
		dur := uint32(n.Duration * constants.TicksPerUnit)
		if n.Chord == nil {
			skip += dur
			continue
		}
		semitones, err := n.Chord.Semitones()
		if err != nil {
			return err
		}
		for i, st := range semitones {
			var delta uint32
			if i == 0 {
				delta = skip
			}
			tr.Add(delta, midi.NoteOn(constants.Channel, uint8(st), constants.DefaultVelocity))
		}
		skip = 0
		for i, st := range semitones {
			var delta uint32
			if i == 0 {
				delta = dur
			}
			tr.Add(delta, midi.NoteOff(constants.Channel, uint8(st)))
		}
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return err
	}
	_, err := s.WriteTo(w)
	return err
}

// ReadSMF parses an SMF from raw bytes.
func ReadSMF(data []byte) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing midi data: %w", err)
	}
	return res, nil
}
