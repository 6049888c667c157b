package ooxml

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.Base("file not found")

// ErrInvalidFormat indicates the input is not an OOXML package of the expected kind.
var ErrInvalidFormat = errors.Base("invalid package format")

// ErrSheetNotFound indicates a worksheet lookup by name failed.
var ErrSheetNotFound = errors.Base("worksheet not found")

// ErrInvalidRange indicates cell coordinates outside the sheet or an inverted rectangle.
var ErrInvalidRange = errors.Base("invalid cell range")

// ErrArgument is matched by every ArgumentError.
var ErrArgument = errors.Base("invalid argument")

// ArgumentError reports a missing or invalid caller-supplied argument.
type ArgumentError struct {
	Param string
	Msg   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Msg)
}

// Is reports whether target is ErrArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// NewArgumentError creates a new ArgumentError.
func NewArgumentError(param, msg string) *ArgumentError {
	return &ArgumentError{Param: param, Msg: msg}
}

// EditError represents an error while editing one part of a package.
type EditError struct {
	SheetName string
	Operation string // "formula_replace_sheet_name", "copy_cell_range", "defined_names", "slice"
	Err       error
}

func (e *EditError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("edit error (%s): %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("edit error in sheet %q (%s): %v", e.SheetName, e.Operation, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// NewEditError creates a new EditError.
func NewEditError(sheetName, operation string, err error) *EditError {
	return &EditError{
		SheetName: sheetName,
		Operation: operation,
		Err:       err,
	}
}
