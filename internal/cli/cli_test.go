package cli_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/internal/cli"
	"github.com/yaklabco/figmark/pkg/config"
	"github.com/yaklabco/figmark/pkg/runner"
)

var testInfo = cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "figmark", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"config", "no-user-config", "directory", "color", "debug"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, name := range []string{"render", "tokens", "init", "env", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRenderCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	renderCmd, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)

	tests := []struct {
		flag       string
		defaultVal string
	}{
		{"out-dir", ""},
		{"extension", ".html"},
		{"ignore", "[]"},
		{"jobs", "0"},
		{"watch", "false"},
		{"summary", "false"},
		{"flavor", "commonmark"},
		{"language", "en"},
		{"data-type", "false"},
		{"figcaption", "false"},
		{"copy-attrs", "false"},
		{"tabindex", "false"},
		{"link", "false"},
		{"media", "true"},
		{"video-attrs", "controls class=\"html5-video-player\""},
		{"audio-attrs", "controls class=\"html5-audio-player\""},
		{"attributes", "false"},
		{"linkify", "false"},
		{"xhtml", "false"},
		{"detect-languages", "false"},
	}

	for _, testCase := range tests {
		t.Run(testCase.flag, func(t *testing.T) {
			t.Parallel()

			flag := renderCmd.Flags().Lookup(testCase.flag)
			require.NotNil(t, flag)
			assert.Equal(t, testCase.defaultVal, flag.DefValue)
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"render failed", cli.ErrRenderFailed, cli.ExitFailure},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("load: %w", config.ErrInvalidConfig), cli.ExitConfigError},
		{"missing file", fmt.Errorf("stat: %w", fs.ErrNotExist), cli.ExitIOError},
		{"permission", fs.ErrPermission, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitFailure},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, cli.ExitCode(testCase.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}))
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeFromResult(&runner.Result{Stats: runner.Stats{FilesFailed: 1}}))
}
