package runner

import "time"

// FileOutcome is the result of rendering one source file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is the file the HTML was written to. Empty when nothing was
	// written because of an error.
	Output string

	// Figures is the number of paragraphs promoted to figures.
	Figures int

	// Media is the number of video and audio elements rendered.
	Media int

	// Written is false when the output already held the rendered HTML.
	Written bool

	// Duration is the time spent reading, rendering and writing.
	Duration time.Duration

	// Error is set if the file could not be rendered or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of files rendered without error.
	FilesRendered int

	// FilesWritten is the number of outputs whose content changed.
	FilesWritten int

	// FilesFailed is the number of files that encountered errors.
	FilesFailed int

	// Figures and Media total the per-file counts.
	Figures int
	Media   int

	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// Failed returns the outcomes that carry an error.
func (r *Result) Failed() []FileOutcome {
	if r == nil {
		return nil
	}
	var failed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesRendered++
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	r.Stats.Figures += outcome.Figures
	r.Stats.Media += outcome.Media
}
