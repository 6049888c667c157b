// Package job describes and runs batches of package edits. A job names
// its input files, where results go and the steps applied to each input.
package job

import (
	"fmt"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/formula"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
	"gitlab.com/tozd/go/errors"
)

// Job is a batch of edits loaded from a YAML or JSON file.
type Job struct {
	// Inputs are file paths or doublestar patterns, relative to the job file.
	Inputs []string `yaml:"inputs" json:"inputs"`
	// OutputDir receives every output. Empty means a fresh timestamped
	// directory next to the job file.
	OutputDir string `yaml:"output_dir,omitempty" json:"output_dir,omitempty"`
	Steps     []Step `yaml:"steps" json:"steps"`

	location string
}

// Step is one edit. Exactly one of the action fields is set.
type Step struct {
	// Name labels the step in logs and output file names. It defaults to the action name.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Output overrides the output file name. Only valid for single-input jobs.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`

	RenameSheetRefs *RenameSheetRefs `yaml:"rename_sheet_refs,omitempty" json:"rename_sheet_refs,omitempty"`
	CopyRange       *CopyRange       `yaml:"copy_range,omitempty" json:"copy_range,omitempty"`
	WmlSlice        *WmlSlice        `yaml:"wml_slice,omitempty" json:"wml_slice,omitempty"`
}

// RenameSheetRefs points formula references at another sheet name.
type RenameSheetRefs struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// CopyRange copies a rectangle of cells within one worksheet.
type CopyRange struct {
	// Sheet may be omitted when From carries a sheet prefix.
	Sheet string `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	From  string `yaml:"from" json:"from"` // "A1:E7"
	To    string `yaml:"to" json:"to"`     // top-left destination, "H4"
}

// WmlSlice keeps a run of body elements of a word-processing document.
type WmlSlice struct {
	Start                 int   `yaml:"start,omitempty" json:"start,omitempty"`
	Count                 *int  `yaml:"count,omitempty" json:"count,omitempty"`
	KeepHeadersAndFooters *bool `yaml:"keep_headers_and_footers,omitempty" json:"keep_headers_and_footers,omitempty"`
	KeepSections          *bool `yaml:"keep_sections,omitempty" json:"keep_sections,omitempty"`
}

// Action names.
const (
	ActionRenameSheetRefs = "rename_sheet_refs"
	ActionCopyRange       = "copy_range"
	ActionWmlSlice        = "wml_slice"
)

// Action returns the name of the action the step performs, or "" when
// none or several are set.
func (s Step) Action() string {
	action, n := "", 0
	if s.RenameSheetRefs != nil {
		action, n = ActionRenameSheetRefs, n+1
	}
	if s.CopyRange != nil {
		action, n = ActionCopyRange, n+1
	}
	if s.WmlSlice != nil {
		action, n = ActionWmlSlice, n+1
	}
	if n != 1 {
		return ""
	}
	return action
}

// Label returns the step name, falling back to the action name.
func (s Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Action()
}

// Kind returns the package kind the step applies to.
func (s Step) Kind() ooxml.Kind {
	if s.WmlSlice != nil {
		return ooxml.KindWordprocessing
	}
	return ooxml.KindSpreadsheet
}

// Location returns the path the job was loaded from, if any.
func (j *Job) Location() string {
	return j.location
}

// Validate checks the job without touching the file system.
func (j *Job) Validate() error {
	if len(j.Inputs) == 0 {
		return ooxml.NewArgumentError("inputs", "at least one input is required")
	}
	if len(j.Steps) == 0 {
		return ooxml.NewArgumentError("steps", "at least one step is required")
	}

	labels := make(map[string]bool, len(j.Steps))
	for i, step := range j.Steps {
		if err := step.validate(); err != nil {
			return errors.Errorf("step %d: %w", i+1, err)
		}
		if labels[step.Label()] {
			return errors.Errorf("step %d: %w", i+1,
				ooxml.NewArgumentError("name", fmt.Sprintf("duplicate step name %q", step.Label())))
		}
		labels[step.Label()] = true
	}
	return nil
}

func (s Step) validate() error {
	switch s.Action() {
	case ActionRenameSheetRefs:
		if formula.UnquoteSheetName(s.RenameSheetRefs.From) == "" {
			return ooxml.NewArgumentError("rename_sheet_refs.from", "sheet name cannot be empty")
		}
		if formula.UnquoteSheetName(s.RenameSheetRefs.To) == "" {
			return ooxml.NewArgumentError("rename_sheet_refs.to", "sheet name cannot be empty")
		}

	case ActionCopyRange:
		if _, _, _, err := s.CopyRange.resolve(); err != nil {
			return err
		}

	case ActionWmlSlice:
		if s.WmlSlice.Start < 0 {
			return ooxml.NewArgumentError("wml_slice.start", "start cannot be negative")
		}
		if s.WmlSlice.Count != nil && *s.WmlSlice.Count < 0 {
			return ooxml.NewArgumentError("wml_slice.count", "count cannot be negative")
		}

	default:
		return ooxml.NewArgumentError("step", "exactly one of rename_sheet_refs, copy_range, wml_slice must be set")
	}
	return nil
}

// resolve parses the rectangle and destination of the copy.
func (c *CopyRange) resolve() (sheet string, from, to models.CellRange, err error) {
	fromSheet, from, err := formula.ParseRange(c.From)
	if err != nil {
		return "", from, to, errors.Errorf("copy_range.from: %w", err)
	}
	_, to, err = formula.ParseRange(c.To)
	if err != nil {
		return "", from, to, errors.Errorf("copy_range.to: %w", err)
	}

	sheet = c.Sheet
	if sheet == "" {
		sheet = fromSheet
	}
	if sheet == "" {
		return "", from, to, ooxml.NewArgumentError("copy_range.sheet", "sheet is required when from has no sheet prefix")
	}
	return sheet, from, to, nil
}
