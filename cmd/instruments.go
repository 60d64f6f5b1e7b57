package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/fretsketch/chord"
)

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Lists the built-in instruments",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listInstruments(cmd.OutOrStdout())
	},
}

func listInstruments(w io.Writer) {
	for _, inst := range chord.Instruments() {
		fmt.Fprintf(w, "%-10s %d  %s\n", inst.Name, inst.Strings, strings.Join(inst.Tuning, " "))
	}
}
