package job

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/sml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/wml"
	"gitlab.com/tozd/go/errors"
)

// OutputDirName formats the timestamped directory name used when a job
// sets no output directory, e.g. ExampleOutput-26-10-16-093005.
func OutputDirName(t time.Time) string {
	return fmt.Sprintf("ExampleOutput-%02d-%02d-%02d-%02d%02d%02d",
		t.Year()-2000, int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// Runner executes jobs one step at a time.
type Runner struct {
	// BaseDir resolves relative inputs and output directories. Empty
	// means the directory of the job file, or the working directory.
	BaseDir string
	// Now stamps the default output directory.
	Now func() time.Time
}

// NewRunner creates a runner with the wall clock.
func NewRunner() *Runner {
	return &Runner{Now: time.Now}
}

// Report lists what a run produced.
type Report struct {
	OutputDir string
	Outputs   []Output
}

// Output is the result of one step applied to one input.
type Output struct {
	Input string
	Step  string
	// Path is empty when the step was skipped.
	Path string
	// Changed counts rewritten formulas for rename_sheet_refs, cells
	// written for copy_range and kept body elements for wml_slice.
	Changed int
	Skipped bool
}

// Run applies every step to every input. Each step starts from the
// original input bytes. The first failure stops the run.
func (r *Runner) Run(ctx context.Context, j *Job) (*Report, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Ctx(ctx)

	base := r.baseDir(j)
	inputs, err := expandInputs(base, j.Inputs)
	if err != nil {
		return nil, err
	}
	if len(inputs) > 1 {
		for _, step := range j.Steps {
			if step.Output != "" {
				return nil, ooxml.NewArgumentError("output", fmt.Sprintf("step %q sets output but the job has %d inputs", step.Label(), len(inputs)))
			}
		}
	}

	outDir := j.OutputDir
	if outDir == "" {
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		outDir = OutputDirName(now())
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(base, outDir)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Errorf("creating output directory: %w", err)
	}
	logger.Debug().Str("dir", outDir).Int("inputs", len(inputs)).Int("steps", len(j.Steps)).Msg("starting job")

	report := &Report{OutputDir: outDir}
	for _, path := range inputs {
		data, err := ooxml.ReadFile(path)
		if err != nil {
			return report, err
		}
		kind, err := ooxml.Detect(data)
		if err != nil {
			return report, errors.Errorf("%s: %w", path, err)
		}

		for _, step := range j.Steps {
			out := Output{Input: path, Step: step.Label()}
			if step.Kind() != kind {
				out.Skipped = true
				logger.Debug().Str("input", path).Str("step", out.Step).Str("kind", string(kind)).Msg("step does not apply, skipping")
				report.Outputs = append(report.Outputs, out)
				continue
			}

			out.Path = filepath.Join(outDir, outputName(path, step))
			name := filepath.Base(path)
			if kind == ooxml.KindSpreadsheet {
				out.Changed, err = runSpreadsheetStep(name, data, step, out.Path)
			} else {
				out.Changed, err = runDocumentStep(name, data, step, out.Path)
			}
			if err != nil {
				return report, errors.Errorf("step %q on %s: %w", out.Step, path, err)
			}

			logger.Info().Str("input", path).Str("step", out.Step).Str("output", out.Path).Int("changed", out.Changed).Msg("step done")
			report.Outputs = append(report.Outputs, out)
		}
	}
	return report, nil
}

func (r *Runner) baseDir(j *Job) string {
	if r.BaseDir != "" {
		return r.BaseDir
	}
	if j.location != "" {
		return filepath.Dir(j.location)
	}
	return "."
}

// expandInputs resolves each entry against base, expanding doublestar
// patterns. Matches keep the order of the entries; duplicates are dropped.
func expandInputs(base string, entries []string) ([]string, error) {
	var out []string
	for _, entry := range entries {
		full := entry
		if !filepath.IsAbs(full) {
			full = filepath.Join(base, full)
		}

		if !strings.ContainsAny(entry, "*?[{") {
			if _, err := os.Stat(full); err != nil {
				return nil, errors.Errorf("%w: %s", ooxml.ErrFileNotFound, full)
			}
			if !slices.Contains(out, full) {
				out = append(out, full)
			}
			continue
		}

		root, pattern := doublestar.SplitPattern(filepath.ToSlash(full))
		matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", entry, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("%w: no file matches %q", ooxml.ErrFileNotFound, entry)
		}
		slices.Sort(matches)
		for _, m := range matches {
			p := filepath.Join(filepath.FromSlash(root), filepath.FromSlash(m))
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func outputName(input string, step Step) string {
	if step.Output != "" {
		return step.Output
	}
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return stem + "-" + step.Label() + ext
}

func runSpreadsheetStep(name string, data []byte, step Step, dest string) (int, error) {
	doc, err := sml.FromBytes(name, data)
	if err != nil {
		return 0, err
	}
	p, err := doc.Open()
	if err != nil {
		return 0, err
	}
	defer p.Close()

	changed := 0
	switch {
	case step.RenameSheetRefs != nil:
		changed, err = p.FormulaReplaceSheetName(step.RenameSheetRefs.From, step.RenameSheetRefs.To)
		if err != nil {
			return 0, err
		}

	case step.CopyRange != nil:
		sheet, from, to, err := step.CopyRange.resolve()
		if err != nil {
			return 0, err
		}
		ws, err := p.Worksheet(sheet)
		if err != nil {
			return 0, err
		}
		changed, err = p.CopyCellRange(ws, from.R1, from.C1, from.R2, from.C2, to.R1, to.C1)
		if err != nil {
			return 0, err
		}
	}

	modified, err := p.Modified()
	if err != nil {
		return 0, err
	}
	if err := p.Close(); err != nil {
		return 0, errors.Errorf("closing %s: %w", name, err)
	}
	return changed, modified.SaveAs(dest)
}

func runDocumentStep(name string, data []byte, step Step, dest string) (int, error) {
	doc, err := wml.FromBytes(name, data)
	if err != nil {
		return 0, err
	}

	s := step.WmlSlice
	b := wml.NewSourceBuilderFromDocument(doc).Start(s.Start)
	if s.Count != nil {
		b.Count(*s.Count)
	}
	if s.KeepHeadersAndFooters != nil {
		b.KeepHeadersAndFooters(*s.KeepHeadersAndFooters)
	}
	if s.KeepSections != nil {
		b.KeepSections(*s.KeepSections)
	}
	src, err := b.Build()
	if err != nil {
		return 0, err
	}

	out, err := wml.Slice(src)
	if err != nil {
		return 0, err
	}
	elements, err := out.BodyElements()
	if err != nil {
		return 0, err
	}
	return len(elements), out.SaveAs(dest)
}
