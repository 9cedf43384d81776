package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chordsmith",
	Short: "Chord progression compiler",
	Long:  `Parses chord progression notation and compiles it to MIDI or transposed notation.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
