package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/job"
)

func newRenameSheetRefsCmd() *cobra.Command {
	var from, to, output string

	cmd := &cobra.Command{
		Use:   "rename-sheet-refs <input.xlsx>",
		Short: "Point formula references at a different sheet name",
		Long: `Rename-sheet-refs rewrites cell formulas and defined names so that
references to --from point at --to. The worksheet itself keeps its name.
Names containing spaces or punctuation are quoted as needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, args[0], output, job.Step{
				RenameSheetRefs: &job.RenameSheetRefs{From: from, To: to},
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "sheet name referenced today")
	cmd.Flags().StringVar(&to, "to", "", "sheet name to reference instead")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: next to the input)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newCopyRangeCmd() *cobra.Command {
	var sheet, from, to, output string

	cmd := &cobra.Command{
		Use:   "copy-range <input.xlsx>",
		Short: "Copy a rectangle of cells within a worksheet",
		Long: `Copy-range copies values, styles and formulas of --from so that its
top-left cell lands on --to. Relative references in copied formulas move
with the cells.`,
		Example: `  ooxmltools copy-range Formulas.xlsx --sheet References --from A1:E7 --to H4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, args[0], output, job.Step{
				CopyRange: &job.CopyRange{Sheet: sheet, From: from, To: to},
			})
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (optional when --from has a sheet prefix)")
	cmd.Flags().StringVar(&from, "from", "", "source range, e.g. A1:E7")
	cmd.Flags().StringVar(&to, "to", "", "destination top-left cell, e.g. H4")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: next to the input)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
