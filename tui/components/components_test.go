package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderStatusBarPadsToWidth(t *testing.T) {
	out := RenderStatusBar("left", "right", 30)
	assert.Equal(t, 30, lipgloss.Width(out))
	assert.True(t, strings.HasPrefix(out, "left"))
	assert.True(t, strings.HasSuffix(out, "right"))
}

func TestRenderStatusBarOverflowKeepsBothSides(t *testing.T) {
	out := RenderStatusBar("a very long left side", "right", 10)
	assert.Equal(t, "a very long left side right", out)
}

func TestRenderStatusBarLeftOnly(t *testing.T) {
	out := RenderStatusBar("status", "", 20)
	assert.Equal(t, 20, lipgloss.Width(out))
	assert.True(t, strings.HasPrefix(out, "status"))
}

func TestRenderProgress(t *testing.T) {
	assert.Empty(t, RenderProgress(1, 0, 40))

	full := RenderProgress(300, 300, 40)
	assert.Contains(t, full, "100%")
	assert.Contains(t, full, "█")
	assert.NotContains(t, full, "░")

	half := RenderProgress(150, 300, 40)
	assert.Contains(t, half, "50%")
	assert.Contains(t, half, "░")
}

func TestRenderKeyValue(t *testing.T) {
	out := RenderKeyValue("Bio", "ready")
	assert.Contains(t, out, "Bio:")
	assert.Contains(t, out, "ready")
}

func TestRenderDivider(t *testing.T) {
	assert.Empty(t, RenderDivider(0))
	assert.Equal(t, 12, lipgloss.Width(RenderDivider(12)))
}
