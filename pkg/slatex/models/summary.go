package models

// Output describes one file written during a run.
type Output struct {
	// Section is the exporter section that produced the file.
	Section string `json:"section"`
	// Path is the absolute output path.
	Path string `json:"path"`
	// Rows is the number of top-level records written.
	Rows int `json:"rows"`
}

// Failure records a section that was skipped because of an error.
type Failure struct {
	Section string `json:"section"`
	Error   string `json:"error"`
}

// RunSummary is the result of one export run.
type RunSummary struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Outputs lists written files in order.
	Outputs []Output `json:"outputs"`
	// Failures lists sections that were logged and skipped.
	Failures []Failure `json:"failures,omitempty"`
}

// Add records a written file.
func (s *RunSummary) Add(section, path string, rows int) {
	s.Outputs = append(s.Outputs, Output{Section: section, Path: path, Rows: rows})
}

// Fail records a skipped section.
func (s *RunSummary) Fail(section string, err error) {
	s.Failures = append(s.Failures, Failure{Section: section, Error: err.Error()})
}
