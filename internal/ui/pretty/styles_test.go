package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, rendered := range []string{
		styles.Bold.Render("test"),
		styles.Error.Render("test"),
		styles.TokenKind.Render("test"),
		styles.TableFailedRow.Render("test"),
	} {
		assert.Equal(t, "test", rendered, "no-color styles must not add formatting")
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may drop ANSI codes without a TTY, so only the text is checked.
	assert.Contains(t, styles.Success.Render("ok"), "ok")
	assert.Contains(t, styles.TokenAttr.Render("src"), "src")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "a buffer is not a terminal")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always ignores NO_COLOR")
}
