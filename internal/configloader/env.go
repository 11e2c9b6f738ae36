package configloader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/figmark/pkg/config"
	"github.com/yaklabco/figmark/pkg/figure"
)

// envVarPrefix is the prefix for all figmark environment variables.
const envVarPrefix = "FIGMARK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds one environment variable to a config field.
type envMapping struct {
	suffix string
	typ    envFieldType
	desc   string
	set    func(cfg *config.Config, value any) error
}

func setString(field func(*config.Config) *string) func(*config.Config, any) error {
	return func(cfg *config.Config, value any) error {
		*field(cfg) = value.(string)
		return nil
	}
}

func setBool(field func(*config.Config) *bool) func(*config.Config, any) error {
	return func(cfg *config.Config, value any) error {
		*field(cfg) = value.(bool)
		return nil
	}
}

// envMappings lists every supported environment variable in a fixed order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{"FLAVOR", envTypeString, "Markdown flavor: commonmark or gfm",
		func(cfg *config.Config, value any) error {
			cfg.Flavor = config.Flavor(value.(string))
			return nil
		}},
	{"LANGUAGE", envTypeString, "Language of the media fallback text",
		setString(func(c *config.Config) *string { return &c.Language })},
	{"DATA_TYPE", envTypeBool, "Add data-type to figures: true or false",
		setBool(func(c *config.Config) *bool { return &c.Figures.DataType })},
	{"FIGCAPTION", envTypeBool, "Move image descriptions into <figcaption>: true or false",
		setBool(func(c *config.Config) *bool { return &c.Figures.Figcaption })},
	{"COPY_ATTRS", envTypeString, "Copy image attributes onto figures: true, false or a pattern",
		func(cfg *config.Config, value any) error {
			filter, err := figure.ParseAttrFilter(value.(string))
			if err != nil {
				return err
			}
			cfg.Figures.CopyAttrs = filter
			return nil
		}},
	{"TABINDEX", envTypeBool, "Number figures with tabindex: true or false",
		setBool(func(c *config.Config) *bool { return &c.Figures.TabIndex })},
	{"LINK", envTypeBool, "Wrap bare figure images in links: true or false",
		setBool(func(c *config.Config) *bool { return &c.Figures.Link })},
	{"MEDIA", envTypeBool, "Render video and audio elements: true or false",
		setBool(func(c *config.Config) *bool { return &c.Media.Enabled })},
	{"VIDEO_ATTRS", envTypeString, "Attributes for <video> tags",
		setString(func(c *config.Config) *string { return &c.Media.VideoAttrs })},
	{"AUDIO_ATTRS", envTypeString, "Attributes for <audio> tags",
		setString(func(c *config.Config) *string { return &c.Media.AudioAttrs })},
	{"ATTRIBUTES", envTypeBool, "Accept attribute blocks after images: true or false",
		setBool(func(c *config.Config) *bool { return &c.Attributes })},
	{"LINKIFY", envTypeBool, "Turn bare URLs into links: true or false",
		setBool(func(c *config.Config) *bool { return &c.Linkify })},
	{"XHTML", envTypeBool, "XHTML-style void elements: true or false",
		setBool(func(c *config.Config) *bool { return &c.XHTML })},
	{"DETECT_LANGUAGES", envTypeBool, "Detect fenced code languages: true or false",
		setBool(func(c *config.Config) *bool { return &c.DetectLanguages })},
	{"OUT_DIR", envTypeString, "Directory for rendered files",
		setString(func(c *config.Config) *string { return &c.Output.Dir })},
	{"EXTENSION", envTypeString, "Extension of rendered files",
		setString(func(c *config.Config) *string { return &c.Output.Extension })},
	{"IGNORE", envTypeSlice, "Comma-separated list of ignore patterns",
		func(cfg *config.Config, value any) error {
			cfg.Ignore = value.([]string)
			return nil
		}},
	{"JOBS", envTypeInt, "Number of parallel workers (0 = auto)",
		func(cfg *config.Config, value any) error {
			cfg.Jobs = value.(int)
			return nil
		}},
	{"COLOR", envTypeString, "Color output: auto, always or never",
		func(cfg *config.Config, value any) error {
			cfg.Color = config.ColorMode(value.(string))
			return nil
		}},
}

// LoadFromEnv applies FIGMARK_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadEnv(cfg, os.Getenv)
}

// loadEnv applies every set variable and reports all malformed values at once.
func loadEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	for _, mapping := range envMappings {
		envVar := envVarPrefix + mapping.suffix
		raw := getenv(envVar)
		if raw == "" {
			continue
		}

		value, err := parseEnvValue(mapping.typ, raw, envVar)
		if err == nil {
			err = mapping.set(cfg, value)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", envVar, err))
		}
	}

	return errors.Join(errs...)
}

// parseEnvValue converts a raw variable into the field's type.
func parseEnvValue(typ envFieldType, raw, envVar string) (any, error) {
	switch typ {
	case envTypeString:
		return raw, nil
	case envTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid boolean %q (expected true/false/1/0)", config.ErrInvalidConfig, raw)
		}
		return b, nil
	case envTypeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer %q", config.ErrInvalidConfig, raw)
		}
		return i, nil
	case envTypeSlice:
		return parseSliceValue(raw), nil
	default:
		return nil, fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for _, mapping := range envMappings {
		vars[envVarPrefix+mapping.suffix] = mapping.desc
	}
	return vars
}
