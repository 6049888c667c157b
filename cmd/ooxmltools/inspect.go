package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/formula"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/output"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/sml"
	"gitlab.com/tozd/go/errors"
)

func newInspectCmd() *cobra.Command {
	var sheet, rng, outputPath string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "inspect <input.xlsx>",
		Short: "Describe a workbook as JSON",
		Long: `Inspect prints each worksheet's used range, formula count and the sheets
its formulas reference, plus the workbook's defined names. With --range
it prints the non-empty cells of that rectangle instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sml.FromFile(args[0])
			if err != nil {
				return err
			}
			p, err := doc.Open()
			if err != nil {
				return err
			}
			defer p.Close()

			var result any
			if rng == "" {
				if result, err = p.Summarize(); err != nil {
					return errors.Errorf("summarizing: %w", err)
				}
			} else {
				refSheet, bounds, err := formula.ParseRange(rng)
				if err != nil {
					return err
				}
				if sheet == "" {
					sheet = refSheet
				}
				if sheet == "" {
					return ooxml.NewArgumentError("sheet", "--sheet is required when --range has no sheet prefix")
				}
				ws, err := p.Worksheet(sheet)
				if err != nil {
					return err
				}
				if result, err = p.ReadRange(ws, bounds); err != nil {
					return errors.Errorf("reading range: %w", err)
				}
			}

			data, err := output.ToJSON(result, pretty)
			if err != nil {
				return err
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return errors.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet for --range")
	cmd.Flags().StringVar(&rng, "range", "", "print the cells of this range, e.g. A1:E7")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")
	return cmd
}
