// Package codec selects import and export dialects by file extension.
package codec

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/chordsmith/chordsmith/ast"
	"github.com/chordsmith/chordsmith/midi"
	"github.com/chordsmith/chordsmith/parser"
	"github.com/chordsmith/chordsmith/pitch"
	"github.com/chordsmith/chordsmith/score"
)

// Importer parses one textual dialect into a score tree.
type Importer interface {
	Import(code string) (*ast.Score, error)
}

// Exporter writes a score tree into one output format.
type Exporter interface {
	Export(w io.Writer, s *ast.Score) error
}

// ProgressionImporter reads the primary chord-progression notation.
type ProgressionImporter struct{}

func (ProgressionImporter) Import(code string) (*ast.Score, error) {
	return parser.Parse(code)
}

// SexpImporter reads the s-expression dialect.
type SexpImporter struct{}

func (SexpImporter) Import(code string) (*ast.Score, error) {
	return parser.ParseSexp(code)
}

// ProgressionExporter renders the score back to progression notation.
type ProgressionExporter struct{}

func (ProgressionExporter) Export(w io.Writer, s *ast.Score) error {
	_, err := io.WriteString(w, s.Render())
	return err
}

// MidiExporter interprets the score and writes a standard MIDI file.
type MidiExporter struct {
	BPM   float64
	Tonic *pitch.Pitch
}

func (e MidiExporter) Export(w io.Writer, s *ast.Score) error {
	notes, err := score.Interpret(s, e.Tonic)
	if err != nil {
		return err
	}
	return midi.WriteSMF(w, notes, e.BPM)
}

// ImporterFor picks the importer for a path by its extension. Anything that
// is not an s-expression file is read as progression notation.
func ImporterFor(path string) Importer {
	if ext(path) == "sexp" {
		return SexpImporter{}
	}
	return ProgressionImporter{}
}

// ExporterFor picks the exporter for a path by its extension.
func ExporterFor(path string, bpm float64, tonic *pitch.Pitch) Exporter {
	switch ext(path) {
	case "mid", "midi":
		return MidiExporter{BPM: bpm, Tonic: tonic}
	}
	return ProgressionExporter{}
}

func ext(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
