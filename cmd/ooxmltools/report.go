package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/job"
)

const (
	indent    = 2
	nameWidth = 28
	stepWidth = 20
)

func printReport(w io.Writer, report *job.Report) {
	fmt.Fprintf(w, "%s %s\n", color.CyanString("output"), report.OutputDir)
	for _, out := range report.Outputs {
		fmt.Fprintln(w, formatOutput(out))
	}
}

func formatOutput(out job.Output) string {
	prefix := color.GreenString("✓")
	target := filepath.Base(out.Path)
	status := fmt.Sprintf("%d changed", out.Changed)
	if out.Skipped {
		prefix = color.HiBlackString("-")
		target = ""
		status = "skipped"
	}

	return fmt.Sprintf("%s%s %-*s %-*s %s %s",
		strings.Repeat(" ", indent),
		prefix,
		nameWidth, filepath.Base(out.Input),
		stepWidth, out.Step,
		color.HiBlackString(status),
		target,
	)
}
