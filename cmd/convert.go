package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chordsmith/chordsmith/ast"
	"github.com/chordsmith/chordsmith/codec"
	"github.com/chordsmith/chordsmith/pitch"
)

var (
	convertInput    string
	convertOutput   string
	convertKey      string
	convertAsDegree bool
)

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "input file (progression notation, or .sexp)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file, stdout when omitted")
	convertCmd.Flags().StringVar(&convertKey, "key", "", "tonic pitch, e.g. C or F#")
	convertCmd.Flags().BoolVar(&convertAsDegree, "as-degree", false, "rewrite absolute chords as degrees of --key")
	convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Re-renders a score, optionally transposed",
	Long: `Reads a score, optionally rewrites its keys against a tonic, and renders it
back to progression notation. With --as-degree absolute chords become roman
numerals; with only --key roman numerals become absolute chords.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := importScore(convertInput)
		if err != nil {
			return err
		}
		tonic, err := tonicFlag(convertKey)
		if err != nil {
			return err
		}
		if convertAsDegree {
			if tonic == nil {
				return fmt.Errorf("--as-degree requires --key")
			}
			s.AsDegree(*tonic)
		} else if tonic != nil {
			s.AsPitch(*tonic)
		}
		out, done, err := openOutput(convertOutput)
		if err != nil {
			return err
		}
		defer done()
		return codec.ProgressionExporter{}.Export(out, s)
	},
}

func importScore(path string) (*ast.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return codec.ImporterFor(path).Import(string(data))
}

func tonicFlag(key string) (*pitch.Pitch, error) {
	if key == "" {
		return nil, nil
	}
	p, err := pitch.Parse(key)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
