// Package ui provides shared terminal rendering for the rzchroma CLI.
//
// It defines the color palette and lipgloss styles used across commands,
// plus reusable building blocks: command headers, success/failure result
// boxes, and a confirmation prompt for operations that talk to untested
// hardware. The interactive wizard has its own bubbletea program in
// internal/wizard/tui and shares this palette.
package ui
