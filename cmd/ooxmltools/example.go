package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/job"
	"gitlab.com/tozd/go/errors"
)

func newExampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Run the built-in examples",
	}
	cmd.AddCommand(newFormulasExampleCmd())
	return cmd
}

func newFormulasExampleCmd() *cobra.Command {
	var input, outputDir string

	cmd := &cobra.Command{
		Use:   "formulas",
		Short: "Rename sheet references and copy a cell range in Formulas.xlsx",
		Long: `Formulas loads the input workbook twice. The first copy has every
formula reference to the Source sheet pointed at 'Source 2' and is saved
as FormulasUpdated.xlsx. The second has A1:E7 of the References sheet
copied to H4 and is saved as FormulasCopied.xlsx. Both land in a new
ExampleOutput-YY-MM-DD-HHMMSS directory under the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j := job.FormulasExample(input)
			j.OutputDir = outputDir

			report, err := job.NewRunner().Run(cmd.Context(), j)
			if err != nil {
				return errors.Errorf("formulas example: %w", err)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "Formulas.xlsx", "input workbook")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory (default: timestamped directory)")
	return cmd
}
