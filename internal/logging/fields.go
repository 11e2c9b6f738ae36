// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Render configuration fields.
	FieldFlavor   = "flavor"
	FieldLanguage = "language"
	FieldJobs     = "jobs"
	FieldWatch    = "watch"

	// Engine fields.
	FieldRule    = "rule"
	FieldTokens  = "tokens"
	FieldFigures = "figures"
	FieldMedia   = "media"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesWritten    = "files_written"
	FieldFilesFailed     = "files_failed"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
