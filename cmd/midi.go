package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chordsmith/chordsmith/codec"
	"github.com/chordsmith/chordsmith/constants"
)

var (
	midiInput  string
	midiOutput string
	midiKey    string
	midiBPM    float64
)

func init() {
	midiCmd.Flags().StringVarP(&midiInput, "input", "i", "", "input file (progression notation, or .sexp)")
	midiCmd.Flags().StringVarP(&midiOutput, "output", "o", "", "output .mid file")
	midiCmd.Flags().StringVar(&midiKey, "key", "", "tonic pitch for roman-numeral scores")
	midiCmd.Flags().Float64Var(&midiBPM, "bpm", constants.DefaultBPM, "tempo in beats per minute")
	midiCmd.MarkFlagRequired("input")
	midiCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi",
	Short: "Compiles a score to a MIDI file",
	Long:  `Interprets a score's rhythm and chords and writes a standard MIDI file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := importScore(midiInput)
		if err != nil {
			return err
		}
		tonic, err := tonicFlag(midiKey)
		if err != nil {
			return err
		}
		out, done, err := openOutput(midiOutput)
		if err != nil {
			return err
		}
		defer done()
		return codec.MidiExporter{BPM: midiBPM, Tonic: tonic}.Export(out, s)
	},
}
