package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/fretsketch/chart"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fretsketch",
	Short: "Chord diagram renderer",
	Long:  `fretsketch draws fretted-instrument chord diagrams from chord sheets or JSON requests.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			chart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
