package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/pkg/config"
)

func TestLoadEnv(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadEnv(cfg, env(map[string]string{
		"FIGMARK_FLAVOR":      "gfm",
		"FIGMARK_FIGCAPTION":  "1",
		"FIGMARK_COPY_ATTRS":  "^data-",
		"FIGMARK_MEDIA":       "false",
		"FIGMARK_VIDEO_ATTRS": "muted loop",
		"FIGMARK_IGNORE":      " drafts/** , ,CHANGELOG.md",
		"FIGMARK_JOBS":        "3",
		"FIGMARK_COLOR":       "never",
		"FIGMARK_EXTENSION":   ".htm",
	}))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.True(t, cfg.Figures.Figcaption)
	assert.True(t, cfg.Figures.CopyAttrs.Match("data-id"))
	assert.False(t, cfg.Media.Enabled)
	assert.Equal(t, "muted loop", cfg.Media.VideoAttrs)
	assert.Equal(t, []string{"drafts/**", "CHANGELOG.md"}, cfg.Ignore)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, config.ColorNever, cfg.Color)
	assert.Equal(t, ".htm", cfg.Output.Extension)
}

func TestLoadEnv_Errors(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadEnv(cfg, env(map[string]string{
		"FIGMARK_TABINDEX": "yes please",
		"FIGMARK_JOBS":     "many",
	}))

	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "FIGMARK_TABINDEX")
	assert.Contains(t, err.Error(), "FIGMARK_JOBS")
	assert.False(t, cfg.Figures.TabIndex)
}

func TestLoadEnv_NilConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, loadEnv(nil, env(map[string]string{"FIGMARK_FLAVOR": "gfm"})))
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "FIGMARK_COPY_ATTRS")
	for name, desc := range vars {
		assert.NotEmpty(t, desc, name)
	}
}
