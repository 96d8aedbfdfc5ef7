package ui

import "testing"

func TestNoColorEnvDisablesColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ShouldUseColor() {
		t.Error("ShouldUseColor() = true with NO_COLOR set")
	}
}

func TestRenderMarkdownFallsBackWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	const src = "# Heading\n\nbody"
	if got := RenderMarkdown(src); got != src {
		t.Errorf("RenderMarkdown() = %q, want raw passthrough", got)
	}
}
