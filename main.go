package main

import "github.com/ByLCY/fretsketch/cmd"

func main() {
	cmd.Execute()
}
