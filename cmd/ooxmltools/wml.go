package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/job"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/wml"
)

func newWmlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wml",
		Short: "Work with word-processing documents",
	}
	cmd.AddCommand(newWmlInfoCmd(), newWmlSliceCmd())
	return cmd
}

func newWmlInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input.docx>",
		Short: "List the top-level body elements of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := wml.FromFile(args[0])
			if err != nil {
				return err
			}
			elements, err := doc.BodyElements()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s (%d elements)\n", color.CyanString("document"), doc.Name(), len(elements))
			for i, el := range elements {
				fmt.Fprintf(w, "%*s%-6d %-8s %s\n", indent, "", i, el.Name, color.HiBlackString("%d bytes", el.Size()))
			}
			return nil
		},
	}
}

func newWmlSliceCmd() *cobra.Command {
	var start, count int
	var keepHeadersAndFooters, keepSections bool
	var output string

	cmd := &cobra.Command{
		Use:   "slice <input.docx>",
		Short: "Keep a run of body elements of a document",
		Long: `Slice writes a copy of the document whose body holds --count elements
starting at --start (0-based). Without --count every element from --start
on is kept. The final section properties are always kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slice := &job.WmlSlice{
				Start:                 start,
				KeepHeadersAndFooters: &keepHeadersAndFooters,
				KeepSections:          &keepSections,
			}
			if cmd.Flags().Changed("count") {
				slice.Count = &count
			}
			return runSingle(cmd, args[0], output, job.Step{WmlSlice: slice})
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "index of the first body element")
	cmd.Flags().IntVar(&count, "count", 0, "number of body elements (default: all remaining)")
	cmd.Flags().BoolVar(&keepHeadersAndFooters, "keep-headers-and-footers", true, "keep header and footer references")
	cmd.Flags().BoolVar(&keepSections, "keep-sections", true, "keep section breaks inside the slice")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: next to the input)")
	return cmd
}
