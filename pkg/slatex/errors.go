package slatex

import (
	"errors"
	"fmt"

	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
)

// ErrFileNotFound indicates the workbook or config file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the workbook could not be read as OOXML.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrSheetNotFound indicates a section's sheet is absent from the workbook.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrNoProjectRoot indicates no candidate directory contains public/.
var ErrNoProjectRoot = errors.New("no project root with /public")

// ErrMissingOutput indicates a section has no output path configured.
var ErrMissingOutput = errors.New("missing output path")

// SectionError is a failure of one export section. Runs log it and carry on
// with the next section.
type SectionError struct {
	Section string
	Sheet   string
	Err     error
}

func (e *SectionError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("%s (sheet %q): %v", e.Section, e.Sheet, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// NewSectionError creates a new SectionError.
func NewSectionError(section, sheet string, err error) *SectionError {
	return &SectionError{
		Section: section,
		Sheet:   sheet,
		Err:     err,
	}
}
