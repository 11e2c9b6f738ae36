package configloader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/yaklabco/figmark/pkg/config"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.extension").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Unwrap lets errors.Is match config.ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return config.ErrInvalidConfig
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins every validation error, or returns nil.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.Language != "" {
		if _, err := language.Parse(cfg.Language); err != nil {
			result.fail("language", cfg.Language, "invalid language tag %q: %v", cfg.Language, err)
		}
	}

	validateMediaAttrs(cfg, result)
	validateOutput(cfg, result)

	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns.
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.Figures.CopyAttrs.Enabled() && !cfg.Attributes {
		result.warn("figures.copy_attrs", cfg.Figures.CopyAttrs.String(),
			"attributes is off; only src, alt and title can be copied")
	}

	return result
}

// validateMediaAttrs rejects attribute strings that would close the tag early.
func validateMediaAttrs(cfg *config.Config, result *ValidationResult) {
	fields := []struct{ name, attrs string }{
		{"media.video_attrs", cfg.Media.VideoAttrs},
		{"media.audio_attrs", cfg.Media.AudioAttrs},
	}
	for _, field := range fields {
		if strings.ContainsAny(field.attrs, "<>") {
			result.fail(field.name, field.attrs, "attributes must not contain '<' or '>'")
		}
	}
}

func validateOutput(cfg *config.Config, result *ValidationResult) {
	ext := cfg.Output.Extension
	switch {
	case ext == "":
		result.fail("output.extension", ext, "extension must not be empty")
	case !strings.HasPrefix(ext, "."):
		result.fail("output.extension", ext, "extension %q must start with '.'", ext)
	case strings.ContainsAny(ext, `/\`):
		result.fail("output.extension", ext, "extension %q must not contain a path separator", ext)
	}
}

// ValidateWithFile validates configuration and attributes findings to a file.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
