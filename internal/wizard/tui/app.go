package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anpep/rzchroma/internal/protocol"
	"github.com/anpep/rzchroma/internal/server"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDevices Screen = "devices"
	ScreenZone    Screen = "zone"
	ScreenColor   Screen = "color"
	ScreenResult  Screen = "result"
)

// colorPreset is a named color offered alongside free-form hex input.
type colorPreset struct {
	Name string
	Hex  string
}

var presets = []colorPreset{
	{"Razer Green", "44d62c"},
	{"Red", "ff0000"},
	{"Blue", "0000ff"},
	{"Purple", "7d56f4"},
	{"Cyan", "00ffff"},
	{"Orange", "ffa500"},
	{"White", "ffffff"},
	{"Off", "000000"},
}

// Messages
type devicesRefreshedMsg struct {
	devices []server.DeviceStatus
}

type applyDoneMsg struct {
	err error
}

// wizardKeyMap defines the key bindings shown in the footer help.
type wizardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Back    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Refresh, k.Quit}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Refresh, k.Quit},
	}
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	registry *server.Registry

	// Current screen state
	Screen Screen

	// Device selection
	Devices      []server.DeviceStatus
	DeviceCursor int
	Selected     *server.DeviceStatus

	// Zone selection
	ZoneCursor int

	// Color selection. The preset list and the free-form hex input share
	// the screen; Tab moves focus between them.
	Input        textinput.Model
	PresetCursor int
	InputFocused bool

	// Apply state
	Applying  bool
	Spinner   spinner.Model
	LastColor protocol.Color
	LastZone  string
	LastError error

	// UI state
	Width  int
	Height int

	Help help.Model
	Keys wizardKeyMap
}

// NewAppModel creates the wizard model over the given device registry.
func NewAppModel(registry *server.Registry) AppModel {
	input := textinput.New()
	input.Placeholder = "rrggbb"
	input.CharLimit = 7 // allow a leading #
	input.Width = 10
	input.Prompt = "# "
	input.PromptStyle = FocusedInputStyle
	input.TextStyle = FocusedInputStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	keys := wizardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	return AppModel{
		registry: registry,
		Screen:   ScreenDevices,
		Input:    input,
		Spinner:  sp,
		Help:     help.New(),
		Keys:     keys,
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.refreshDevices(), m.Spinner.Tick)
}

// refreshDevices re-reads the registry.
func (m AppModel) refreshDevices() tea.Cmd {
	registry := m.registry
	return func() tea.Msg {
		return devicesRefreshedMsg{devices: registry.List()}
	}
}

// applyColor writes the chosen color to the chosen zone.
func (m AppModel) applyColor(color protocol.Color) tea.Cmd {
	registry := m.registry
	id := m.Selected.ID
	zone := m.zones()[m.ZoneCursor]
	return func() tea.Msg {
		_, err := registry.Write(id, zone, color.Bytes())
		return applyDoneMsg{err: err}
	}
}

// zones returns the writable attributes of the selected device.
func (m AppModel) zones() []string {
	if m.Selected == nil {
		return nil
	}
	return m.Selected.Attributes
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case devicesRefreshedMsg:
		m.Devices = msg.devices
		if m.DeviceCursor >= len(m.Devices) {
			m.DeviceCursor = 0
		}
		return m, nil

	case applyDoneMsg:
		m.Applying = false
		m.LastError = msg.err
		m.Screen = ScreenResult
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.Applying {
			// Ignore input while a write is in flight.
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.Screen == ScreenColor && m.InputFocused {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Screen {
	case ScreenDevices:
		return m.handleDevicesKey(msg)
	case ScreenZone:
		return m.handleZoneKey(msg)
	case ScreenColor:
		return m.handleColorKey(msg)
	case ScreenResult:
		return m.handleResultKey(msg)
	}
	return m, nil
}

func (m AppModel) handleDevicesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.DeviceCursor > 0 {
			m.DeviceCursor--
		}
	case "down", "j":
		if m.DeviceCursor < len(m.Devices)-1 {
			m.DeviceCursor++
		}
	case "r":
		return m, m.refreshDevices()
	case "enter":
		if len(m.Devices) > 0 {
			selected := m.Devices[m.DeviceCursor]
			m.Selected = &selected
			m.ZoneCursor = 0
			m.Screen = ScreenZone
		}
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m AppModel) handleZoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.ZoneCursor > 0 {
			m.ZoneCursor--
		}
	case "down", "j":
		if m.ZoneCursor < len(m.zones())-1 {
			m.ZoneCursor++
		}
	case "enter":
		if len(m.zones()) > 0 {
			m.PresetCursor = 0
			m.InputFocused = false
			m.Input.SetValue("")
			m.Input.Blur()
			m.Screen = ScreenColor
		}
	case "esc":
		m.Screen = ScreenDevices
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m AppModel) handleColorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.InputFocused = !m.InputFocused
		if m.InputFocused {
			return m, m.Input.Focus()
		}
		m.Input.Blur()
		return m, nil

	case "esc":
		m.Input.Blur()
		m.InputFocused = false
		m.Screen = ScreenZone
		return m, nil

	case "enter":
		var raw string
		if m.InputFocused {
			raw = m.Input.Value()
		} else {
			raw = presets[m.PresetCursor].Hex
		}
		color, err := protocol.ParseColor(raw)
		if err != nil {
			m.LastError = err
			return m, nil
		}
		m.LastError = nil
		m.LastColor = color
		m.LastZone = m.zones()[m.ZoneCursor]
		m.Applying = true
		return m, tea.Batch(m.applyColor(color), m.Spinner.Tick)
	}

	if m.InputFocused {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.PresetCursor > 0 {
			m.PresetCursor--
		}
	case "down", "j":
		if m.PresetCursor < len(presets)-1 {
			m.PresetCursor++
		}
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m AppModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c", "r":
		// Pick another color for the same zone
		m.Screen = ScreenColor
	case "z":
		m.Screen = ScreenZone
	case "d", "esc":
		m.Screen = ScreenDevices
		return m, m.refreshDevices()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// deviceLine formats one device entry for the list screen.
func deviceLine(d server.DeviceStatus) string {
	return fmt.Sprintf("%s  %s", d.Label, DetailStyle.Render("("+d.ID+")"))
}
