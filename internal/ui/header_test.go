package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestHeaderRender(t *testing.T) {
	h := NewHeader("Set LED Color", "rzchroma set logo ff0080", map[string]string{
		"Zone": "logo_color",
	})
	h.Width = 80

	out := h.Render()

	if !strings.Contains(out, "SET LED COLOR") {
		t.Errorf("Render() missing uppercased title:\n%s", out)
	}
	if !strings.Contains(out, "rzchroma set logo ff0080") {
		t.Errorf("Render() missing command line:\n%s", out)
	}
	if !strings.Contains(out, "Zone:") || !strings.Contains(out, "logo_color") {
		t.Errorf("Render() missing params section:\n%s", out)
	}
}

func TestHeaderRenderWithoutParams(t *testing.T) {
	h := NewHeader("Attached Devices", "rzchroma list", nil)
	h.Width = 80

	out := h.Render()

	if !strings.Contains(out, "ATTACHED DEVICES") {
		t.Errorf("Render() missing title:\n%s", out)
	}
	if !strings.Contains(out, "rzchroma list") {
		t.Errorf("Render() missing command line:\n%s", out)
	}
	// No params means a compact two-line body inside the border.
	if got := len(strings.Split(out, "\n")); got != 4 {
		t.Errorf("Render() = %d lines, want 4 (border + title + command + border)", got)
	}
}

func TestHeaderRenderNarrowTerminal(t *testing.T) {
	h := NewHeader("Set LED Color", "rzchroma set logo ff0080", nil)
	h.Width = 10 // below MinTerminalWidth

	out := h.Render()
	lines := strings.Split(out, "\n")
	// The border must span at least the clamped minimum width.
	if w := lipgloss.Width(lines[0]); w < MinTerminalWidth-2 {
		t.Errorf("border width = %d, want >= %d", w, MinTerminalWidth-2)
	}
}

func TestSwatchStyle(t *testing.T) {
	style := SwatchStyle("#ff0080")
	if got := style.GetBackground(); got != lipgloss.Color("#ff0080") {
		t.Errorf("GetBackground() = %v, want #ff0080", got)
	}
}
