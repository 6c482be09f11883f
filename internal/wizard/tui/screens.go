package tui

import (
	"fmt"
	"strings"
)

// View renders the current screen
func (m AppModel) View() string {
	var content, footer string

	switch m.Screen {
	case ScreenDevices:
		content = m.viewDevices()
		footer = m.Help.View(m.Keys)
	case ScreenZone:
		content = m.viewZone()
		footer = m.Help.View(m.Keys)
	case ScreenColor:
		content = m.viewColor()
		footer = "↑/↓ presets · tab hex input · enter apply · esc back"
	case ScreenResult:
		content = m.viewResult()
		footer = "c another color · z zones · d devices · q quit"
	default:
		content = "Unknown screen"
	}

	return RenderApplicationContainer(content, footer, m.Width, m.Height)
}

func (m AppModel) viewDevices() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Select a device"))
	b.WriteString("\n")

	if len(m.Devices) == 0 {
		b.WriteString(RenderSubtitle("No supported devices attached."))
		b.WriteString("\n\n")
		b.WriteString(MenuItemStyle.Render("Plug in a device and press r to rescan."))
		b.WriteString("\n")
		return b.String()
	}

	for i, d := range m.Devices {
		b.WriteString(RenderMenuItem(deviceLine(d), i == m.DeviceCursor))
		b.WriteString("\n")
	}

	return b.String()
}

func (m AppModel) viewZone() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Select an LED zone"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(m.Selected.Label))
	b.WriteString("\n\n")

	for i, zone := range m.zones() {
		b.WriteString(RenderMenuItem(zoneLabel(zone), i == m.ZoneCursor))
		b.WriteString("\n")
	}

	return b.String()
}

func (m AppModel) viewColor() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Pick a color"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf("%s · %s", m.Selected.Label, zoneLabel(m.zones()[m.ZoneCursor]))))
	b.WriteString("\n\n")

	if m.Applying {
		b.WriteString(fmt.Sprintf("  %s Applying %s...\n", m.Spinner.View(), m.LastColor))
		return b.String()
	}

	for i, preset := range presets {
		line := fmt.Sprintf("%s %s  %s", RenderSwatch("#"+preset.Hex), preset.Name, DetailStyle.Render("#"+preset.Hex))
		b.WriteString(RenderMenuItem(line, !m.InputFocused && i == m.PresetCursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.InputFocused {
		b.WriteString(SelectedMenuItemStyle.Render("→ Custom: "))
	} else {
		b.WriteString(MenuItemStyle.Render("  Custom: "))
	}
	b.WriteString(m.Input.View())
	b.WriteString("\n")

	if m.LastError != nil {
		b.WriteString("\n")
		b.WriteString(RenderError(m.LastError.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m AppModel) viewResult() string {
	var b strings.Builder

	if m.LastError != nil {
		b.WriteString(RenderTitle("Update failed"))
		b.WriteString("\n")
		b.WriteString(RenderError(m.LastError.Error()))
		b.WriteString("\n\n")
		b.WriteString(MenuItemStyle.Render("  c - Try again"))
		b.WriteString("\n")
	} else {
		b.WriteString(RenderTitle("LED color updated"))
		b.WriteString("\n")
		b.WriteString(RenderSuccess(fmt.Sprintf("%s set to %s %s",
			zoneLabel(m.LastZone), m.LastColor, RenderSwatch(m.LastColor.String()))))
		b.WriteString("\n\n")
		b.WriteString(MenuItemStyle.Render("  c - Pick another color"))
		b.WriteString("\n")
	}

	b.WriteString(MenuItemStyle.Render("  z - Pick another zone"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("  d - Pick another device"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("  q - Exit"))
	b.WriteString("\n")

	return b.String()
}

// zoneLabel maps an attribute name to a display label.
func zoneLabel(zone string) string {
	switch zone {
	case "logo_color":
		return "Logo"
	case "wheel_color":
		return "Scroll wheel"
	default:
		return zone
	}
}
