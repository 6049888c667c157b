package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var debug bool

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ooxmltools",
		Short: "Edit Office Open XML packages",
		Long: `ooxmltools rewrites the XML parts of spreadsheets and word-processing
documents: formula references to a renamed sheet, copies of cell ranges
and slices of a document body.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(
		newExampleCmd(),
		newRunCmd(),
		newRenameSheetRefsCmd(),
		newCopyRangeCmd(),
		newInspectCmd(),
		newWmlCmd(),
	)
	return rootCmd
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
