package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts config.TemplateOptions
	}{
		{"minimal", config.TemplateOptions{}},
		{"full", config.TemplateOptions{Full: true}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(testCase.opts)
			require.NoError(t, err)

			text := string(data)
			assert.True(t, strings.HasPrefix(text, config.DefaultTemplateHeader()))
			assert.Contains(t, text, "\nflavor: commonmark\n")

			// Both templates describe the defaults.
			cfg, err := config.FromYAML(data)
			require.NoError(t, err)
			assert.Equal(t, config.NewConfig(), cfg)

			for _, line := range strings.Split(text, "\n") {
				assert.LessOrEqual(t, len(line), 80, "line too long: %q", line)
			}
		})
	}
}

func TestGenerateTemplate_Minimal(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "\n# figures:\n")
	assert.Contains(t, text, "\n#   figcaption: false\n")
	assert.NotContains(t, text, "\nfigures:")
}

func TestGenerateTemplate_Full(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "\nfigures:\n")
	assert.Contains(t, text, "\n  figcaption: false\n")
	assert.Contains(t, text, "\n  video_attrs: 'controls class=\"html5-video-player\"'\n")
}
