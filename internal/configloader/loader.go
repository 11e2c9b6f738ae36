// Package configloader resolves figmark's configuration. It discovers config
// files, layers them over the defaults, applies environment and command-line
// overrides, and validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/figmark/internal/logging"
	"github.com/yaklabco/figmark/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// Override applies a command-line setting. Overrides run last, in order.
type Override func(cfg *config.Config)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// Overrides carry settings from command-line flags.
	Overrides []Override
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration. Precedence, highest first:
//  1. Command-line overrides (opts.Overrides)
//  2. Environment variables (FIGMARK_*)
//  3. Explicit config file, or the project config (.figmark.yml upward search)
//  4. User config ($XDG_CONFIG_HOME/figmark/config.yaml)
//  5. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths := &ConfigPaths{Explicit: opts.ExplicitPath}
	if (opts.ExplicitPath == "" && !opts.IgnoreProjectConfig) || !opts.IgnoreUserConfig {
		discovered, err := DiscoverPaths(ctx, workDir, getenv)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		paths.User = discovered.User
		paths.Project = discovered.Project
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	var files []string
	if !opts.IgnoreUserConfig && paths.User != "" {
		files = append(files, paths.User)
	}
	switch {
	case opts.ExplicitPath != "":
		files = append(files, opts.ExplicitPath)
	case !opts.IgnoreProjectConfig && paths.Project != "":
		files = append(files, paths.Project)
	}

	log := logging.FromContext(ctx)
	for _, path := range files {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, path)
		log.Debug("config loaded", logging.FieldConfig, path)
	}

	if !opts.IgnoreEnv {
		if err := loadEnv(cfg, getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	for _, override := range opts.Overrides {
		if override != nil {
			override(cfg)
		}
	}

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile overlays a YAML file onto cfg.
func loadConfigFile(path string, cfg *config.Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := config.Decode(content, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteTemplate writes a generated configuration template to path. It refuses
// to replace an existing file unless force is set.
func WriteTemplate(path string, opts config.TemplateOptions, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
