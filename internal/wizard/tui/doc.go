// Package tui implements the interactive LED wizard.
//
// The wizard is a bubbletea program that walks the user through picking
// an attached device, one of its LED zones, and a color, then applies
// the color through the shared device registry. Screens:
//
//	devices  pick one of the attached devices
//	zone     pick a writable LED zone (logo or scroll wheel)
//	color    enter a hex color or pick a preset
//	result   success or failure, with shortcuts to continue
//
// Every screen renders inside RenderApplicationContainer so the header,
// footer, and outer border stay consistent while content changes.
package tui
