package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/pkg/config"
	"github.com/yaklabco/figmark/pkg/figure"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("copies Ignore slice", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"*.md", "vendor/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "*.md", original.Ignore[0])
	})

	t.Run("preserves CLI-only fields", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Jobs = 4
		original.Watch = true
		original.Summary = true
		original.Color = config.ColorNever
		original.Figures.CopyAttrs = figure.MustCopyMatching("^data-")

		clone := original.Clone()

		assert.Equal(t, 4, clone.Jobs)
		assert.True(t, clone.Watch)
		assert.True(t, clone.Summary)
		assert.Equal(t, config.ColorNever, clone.Color)
		assert.True(t, clone.Figures.CopyAttrs.Match("data-x"))
		assert.False(t, clone.Figures.CopyAttrs.Match("class"))
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("round trips through FromYAML", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Flavor = config.FlavorGFM
		cfg.Figures.Figcaption = true
		cfg.Figures.CopyAttrs = figure.MustCopyMatching("^class$")
		cfg.Output.Dir = "site"
		cfg.Jobs = 8

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: gfm")
		assert.Contains(t, string(data), "^class$")
		assert.NotContains(t, string(data), "jobs")

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, parsed.Flavor)
		assert.True(t, parsed.Figures.Figcaption)
		assert.Equal(t, "^class$", parsed.Figures.CopyAttrs.Pattern())
		assert.Equal(t, "site", parsed.Output.Dir)
		assert.Zero(t, parsed.Jobs)
	})

	t.Run("header", func(t *testing.T) {
		t.Parallel()

		data, err := config.NewConfig().ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.Regexp(t, `^# generated\n\nflavor: commonmark\n`, string(data))
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("overlays onto existing values", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		require.NoError(t, config.Decode([]byte("figures:\n  tabindex: true\nmedia:\n  video_attrs: muted\n"), cfg))

		assert.True(t, cfg.Figures.TabIndex)
		assert.Equal(t, "muted", cfg.Media.VideoAttrs)
		assert.True(t, cfg.Media.Enabled, "keys absent from the file keep their value")
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		require.NoError(t, config.Decode(nil, cfg))
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("copy_attrs forms", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("figures:\n  copy_attrs: true\n"))
		require.NoError(t, err)
		assert.True(t, cfg.Figures.CopyAttrs.Match("anything"))

		cfg, err = config.FromYAML([]byte("figures:\n  copy_attrs: '^(class|id)$'\n"))
		require.NoError(t, err)
		assert.True(t, cfg.Figures.CopyAttrs.Match("id"))
		assert.False(t, cfg.Figures.CopyAttrs.Match("width"))
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			data string
		}{
			{"unknown key", "figure: {}\n"},
			{"wrong type", "linkify: [1, 2]\n"},
			{"bad pattern", "figures:\n  copy_attrs: '(unclosed'\n"},
			{"cli-only key", "jobs: 4\n"},
		}

		for _, testCase := range tests {
			_, err := config.FromYAML([]byte(testCase.data))
			require.Error(t, err, testCase.name)
			assert.ErrorIs(t, err, config.ErrInvalidConfig, testCase.name)
		}
	})
}
