package main

import "github.com/chordsmith/chordsmith/cmd"

func main() {
	cmd.Execute()
}
