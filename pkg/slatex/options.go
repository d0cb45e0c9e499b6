// Package slatex runs the slate workbook exports: it stages the workbook,
// runs each configured section and records what was written.
package slatex

import (
	"go.uber.org/zap"
)

// Options configures an export run.
type Options struct {
	// Project is the project root; outputs go under Project/public.
	Project string
	// Pretty indents JSON output.
	Pretty bool
	// Logger receives section progress. If nil, logging is disabled.
	Logger *zap.Logger
	// OnlyTasks runs the literal table tasks and nothing else.
	OnlyTasks bool
	// SkipMerge skips the salary and projections merges.
	SkipMerge bool
}

// IDsOptions selects the parts of an ids run.
type IDsOptions struct {
	Options
	// OnlySiteIDs skips the crosswalk.
	OnlySiteIDs bool
	// OnlyXwalk skips writing the site id file.
	OnlyXwalk bool
}

// DefaultOptions returns default run options for the current directory.
func DefaultOptions() Options {
	return Options{
		Project: ".",
		Pretty:  true,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
