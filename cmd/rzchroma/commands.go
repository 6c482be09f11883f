package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anpep/rzchroma/internal/config"
	"github.com/anpep/rzchroma/internal/device"
	"github.com/anpep/rzchroma/internal/protocol"
	"github.com/anpep/rzchroma/internal/server"
	"github.com/anpep/rzchroma/internal/ui"
	"github.com/anpep/rzchroma/internal/usb"
	wizardtui "github.com/anpep/rzchroma/internal/wizard/tui"
)

// Command flags
var (
	deviceID   string
	allDevices bool
	listenAddr string
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(addDeviceCmd)
}

// attachedDevice pairs a discovered device with its bound session.
type attachedDevice struct {
	info    *usb.DeviceInfo
	session *device.Session
}

// attachAll enumerates supported devices and attaches a session for each
// one, registering write endpoints with the given registry. The returned
// cleanup detaches every session.
func attachAll(registry *server.Registry) ([]attachedDevice, func(), error) {
	cfg, err := config.LoadRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	table := cfg.DeviceTable()

	infos, err := usb.Enumerate(table)
	if err != nil {
		return nil, nil, fmt.Errorf("device enumeration failed: %w", err)
	}

	timeout := time.Duration(cfg.Preferences.TransferTimeoutMS) * time.Millisecond

	var attached []attachedDevice
	cleanup := func() {
		for _, a := range attached {
			a.session.Detach()
		}
	}

	for _, info := range infos {
		dev := usb.NewDevice(info)
		label := info.Label(table)
		session := device.NewSession(label, dev, dev, registry.For(info.ID(), label))
		session.Channel().SetTimeout(timeout)

		if err := session.Attach(); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to attach %s: %w", label, err)
		}
		attached = append(attached, attachedDevice{info: info, session: session})
	}

	return attached, cleanup, nil
}

// listCmd shows supported devices currently attached
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List attached Razer Chroma devices",
	Long: `List supported Razer Chroma devices currently attached over USB.

Devices are matched against the built-in device table plus any extra
entries added with 'rzchroma add-device'.`,
	Example: `  rzchroma list`,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.NewHeader("Attached Devices", "rzchroma list", nil).Render())
	fmt.Println()

	cfg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	table := cfg.DeviceTable()

	infos, err := usb.Enumerate(table)
	if err != nil {
		return fmt.Errorf("device enumeration failed: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No supported devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Check the device is plugged in")
		fmt.Println("  - Check udev rules grant access to /dev/bus/usb nodes")
		fmt.Println("  - Use 'rzchroma add-device' if your device is a supported model")
		fmt.Println("    with an id not yet on the built-in list")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(infos))
	for i, info := range infos {
		fmt.Printf("%d. %s\n", i+1, ui.DeviceIDStyle.Render(info.Label(table)))
		fmt.Printf("   ID:      %s\n", info.ID())
		fmt.Printf("   USB:     %04x:%04x (bus %d, address %d)\n", info.Vendor, info.Product, info.Bus, info.Address)
		fmt.Println()
	}

	fmt.Println("Use 'rzchroma set <zone> <color>' to set an LED color")
	fmt.Println("Use 'rzchroma wizard' for interactive control")

	return nil
}

// setCmd writes a color to one LED zone
var setCmd = &cobra.Command{
	Use:   "set <zone> <color>",
	Short: "Set an LED zone color",
	Long: `Set the color of one LED zone on an attached device.

Zones:
  logo     the logo LED (also: logo_color)
  wheel    the scroll wheel LED (also: wheel_color)

Colors are hex RGB, with or without a leading '#': ff0080, #44d62c.`,
	Example: `  # Set the logo LED on the only attached device
  rzchroma set logo 44d62c

  # Set the scroll wheel LED on a specific device
  rzchroma set wheel ff0000 --device PM1234567890

  # Set the logo LED on every attached device
  rzchroma set logo 000000 --all`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVar(&deviceID, "device", "", "Device id (serial), required when several devices are attached")
	setCmd.Flags().BoolVar(&allDevices, "all", false, "Apply to every attached device")
}

func runSet(cmd *cobra.Command, args []string) error {
	attr, err := protocol.ParseAttribute(args[0])
	if err != nil {
		return err
	}
	color, err := protocol.ParseColor(args[1])
	if err != nil {
		return err
	}

	fmt.Println(ui.NewHeader("Set LED Color",
		fmt.Sprintf("rzchroma set %s %s", args[0], args[1]),
		map[string]string{
			"Zone":  attr.String(),
			"Color": color.String(),
		}).Render())
	fmt.Println()

	registry := server.NewRegistry()
	attached, cleanup, err := attachAll(registry)
	if err != nil {
		fmt.Println(ui.NewFailureResult("Device attach failed", err, ui.USBTroubleshooting()).Render())
		return err
	}
	defer cleanup()

	targets, err := selectTargets(attached)
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, target := range targets {
		target := target
		g.Go(func() error {
			if _, err := target.session.WriteAttribute(attr, color.Bytes()); err != nil {
				return fmt.Errorf("%s: %w", target.session.Label(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Println(ui.NewFailureResult("LED update failed", err, ui.USBTroubleshooting()).Render())
		return err
	}

	result := ui.NewSuccessResult("LED color updated", map[string]string{
		"Zone":  attr.String(),
		"Color": ui.SwatchStyle(color.String()).Render(" " + color.String() + " "),
	})
	if len(targets) == 1 {
		result.AddDetail("Device", targets[0].session.Label())
	} else {
		result.AddDetail("Devices", strconv.Itoa(len(targets)))
	}
	fmt.Println(result.Render())

	return nil
}

// selectTargets narrows the attached devices to those the flags name.
func selectTargets(attached []attachedDevice) ([]attachedDevice, error) {
	if allDevices {
		return attached, nil
	}

	if deviceID != "" {
		for _, a := range attached {
			if a.info.ID() == deviceID {
				return []attachedDevice{a}, nil
			}
		}
		return nil, fmt.Errorf("no attached device with id %q", deviceID)
	}

	if len(attached) == 0 {
		return nil, fmt.Errorf("no supported devices found")
	}
	if len(attached) > 1 {
		var ids []string
		for _, a := range attached {
			ids = append(ids, a.info.ID())
		}
		return nil, fmt.Errorf("multiple devices attached (%s); use --device or --all", strings.Join(ids, ", "))
	}
	return attached, nil
}

// serveCmd runs the HTTP control server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP control server",
	Long: `Attach every supported device and serve the control API over HTTP.

The API exposes device listings, per-zone color writes, and a
WebSocket write stream for animations. See the package documentation
for the route list.`,
	Example: `  # Serve on the configured address (default localhost:9753)
  rzchroma serve

  # Serve on a specific address
  rzchroma serve --listen localhost:8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (defaults to the configured address)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	addr := listenAddr
	if addr == "" {
		addr = cfg.Preferences.ListenAddr
	}

	registry := server.NewRegistry()
	attached, cleanup, err := attachAll(registry)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(attached) == 0 {
		return fmt.Errorf("no supported devices found; nothing to serve")
	}

	srv, err := server.New(&server.Config{
		Addr:     addr,
		LogLevel: "info",
	}, registry)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// wizardCmd launches the interactive TUI wizard
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive LED wizard",
	Long: `Launch an interactive TUI for controlling LED zones.

The wizard walks through picking a device, an LED zone, and a color,
then applies it immediately. This is the recommended interface for
most users.`,
	Example: `  rzchroma wizard
  # Or simply (wizard is default in a terminal):
  rzchroma`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	registry := server.NewRegistry()
	_, cleanup, err := attachAll(registry)
	if err != nil {
		fmt.Println(ui.NewFailureResult("Device attach failed", err, ui.USBTroubleshooting()).Render())
		return err
	}
	defer cleanup()

	model := wizardtui.NewAppModel(registry)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	return nil
}

// addDeviceCmd registers an extra vendor:product id in the user config
var addDeviceCmd = &cobra.Command{
	Use:   "add-device <vendor:product> <name>",
	Short: "Add an untested device id to the supported list",
	Long: `Add a vendor:product id to the user device table.

The built-in table only lists devices this tool was tested against.
If your device is a compatible model with a different product id, you
can add it here. The entry is stored in your user config file and
merged with the built-in table on every run.`,
	Example: `  rzchroma add-device 1532:0046 "Razer DeathAdder Chroma (alt)"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runAddDevice,
}

func runAddDevice(cmd *cobra.Command, args []string) error {
	parts := strings.SplitN(args[0], ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected <vendor:product>, e.g. 1532:0046")
	}
	vendor, err := strconv.ParseUint(parts[0], 16, 16)
	if err != nil {
		return fmt.Errorf("invalid vendor id %q: %w", parts[0], err)
	}
	product, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", parts[1], err)
	}
	name := args[1]

	if !ui.UntestedDeviceConfirmation(args[0]) {
		return nil
	}

	cfg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.AddDevice(name, uint16(vendor), uint16(product)) {
		return fmt.Errorf("device %s is already on the supported list", args[0])
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✓ Added %s (%s) to the device table\n", name, args[0])
	return nil
}
