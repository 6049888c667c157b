package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/job"
	"gitlab.com/tozd/go/errors"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <job.yaml>",
		Short: "Run the steps of a job file",
		Long: `Run loads a YAML or JSON job file and applies each step to each input.
Inputs and the output directory are relative to the job file. Without an
output_dir, results go to a new ExampleOutput-YY-MM-DD-HHMMSS directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := job.Load(args[0])
			if err != nil {
				return errors.Errorf("loading job: %w", err)
			}

			report, err := job.NewRunner().Run(cmd.Context(), j)
			if err != nil {
				return errors.Errorf("running job: %w", err)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

// runSingle applies one step to one input. An empty output writes
// <input-stem>-<step>.<ext> next to the input.
func runSingle(cmd *cobra.Command, input, output string, step job.Step) error {
	j := &job.Job{
		Inputs:    []string{input},
		OutputDir: filepath.Dir(input),
		Steps:     []job.Step{step},
	}
	if output != "" {
		j.OutputDir = filepath.Dir(output)
		j.Steps[0].Output = filepath.Base(output)
	}

	wd, err := os.Getwd()
	if err != nil {
		return errors.WithStack(err)
	}
	runner := job.NewRunner()
	runner.BaseDir = wd

	report, err := runner.Run(cmd.Context(), j)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}
