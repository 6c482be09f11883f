package usb

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anpep/rzchroma/internal/config"
)

const sysfsDevicesDir = "/sys/bus/usb/devices"

// DeviceInfo describes a USB device discovered via sysfs.
type DeviceInfo struct {
	// Name is the sysfs entry name, e.g. "1-2".
	Name string
	// SysfsPath is the absolute sysfs directory for the device.
	SysfsPath string

	Bus     uint8
	Address uint8
	Vendor  uint16
	Product uint16

	Manufacturer string
	ProductName  string
	Serial       string
}

// DevNode returns the usbfs character device node for the device.
func (d *DeviceInfo) DevNode() string {
	return fmt.Sprintf("/dev/bus/usb/%03d/%03d", d.Bus, d.Address)
}

// ID returns a stable identifier for the device: the serial number when
// the device reports one, otherwise the bus-address pair.
func (d *DeviceInfo) ID() string {
	if d.Serial != "" {
		return d.Serial
	}
	return fmt.Sprintf("%d-%d", d.Bus, d.Address)
}

// Label returns a human-readable name for the device, preferring the
// product string over the device table name.
func (d *DeviceInfo) Label(table *config.DeviceTable) string {
	if d.ProductName != "" {
		return d.ProductName
	}
	if entry, ok := table.Lookup(d.Vendor, d.Product); ok {
		return entry.Name
	}
	return fmt.Sprintf("%04x:%04x", d.Vendor, d.Product)
}

// Enumerate scans sysfs and returns the devices listed in table.
func Enumerate(table *config.DeviceTable) ([]*DeviceInfo, error) {
	entries, err := os.ReadDir(sysfsDevicesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sysfs USB directory: %w", err)
	}

	var devices []*DeviceInfo
	for _, entry := range entries {
		name := entry.Name()

		// Skip interface entries (they contain a colon) and root hubs.
		if strings.Contains(name, ":") || !strings.Contains(name, "-") {
			continue
		}

		info, err := loadDeviceInfo(filepath.Join(sysfsDevicesDir, name), name)
		if err != nil {
			continue
		}
		if table.Supports(info.Vendor, info.Product) {
			devices = append(devices, info)
		}
	}

	return devices, nil
}

func loadDeviceInfo(sysfsPath, name string) (*DeviceInfo, error) {
	info := &DeviceInfo{
		Name:      name,
		SysfsPath: sysfsPath,
	}

	readUint8 := func(filename string) (uint8, error) {
		data, err := os.ReadFile(filepath.Join(sysfsPath, filename))
		if err != nil {
			return 0, err
		}
		val, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 8)
		return uint8(val), err
	}

	readUint16Hex := func(filename string) (uint16, error) {
		data, err := os.ReadFile(filepath.Join(sysfsPath, filename))
		if err != nil {
			return 0, err
		}
		val, err := strconv.ParseUint(strings.TrimSpace(string(data)), 16, 16)
		return uint16(val), err
	}

	readString := func(filename string) string {
		data, err := os.ReadFile(filepath.Join(sysfsPath, filename))
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(data))
	}

	var err error
	if info.Bus, err = readUint8("busnum"); err != nil {
		return nil, err
	}
	if info.Address, err = readUint8("devnum"); err != nil {
		return nil, err
	}
	if info.Vendor, err = readUint16Hex("idVendor"); err != nil {
		return nil, err
	}
	if info.Product, err = readUint16Hex("idProduct"); err != nil {
		return nil, err
	}

	info.Manufacturer = readString("manufacturer")
	info.ProductName = readString("product")
	info.Serial = readString("serial")

	return info, nil
}

// reportDescriptorPath locates the HID report descriptor exported by the
// kernel for interface 0 of the device. The hid subsystem nests it under
// <device>/<name>:1.0/<bus>:<vendor>:<product>.<n>/report_descriptor.
func (d *DeviceInfo) reportDescriptorPath() (string, error) {
	ifaceDir := filepath.Join(d.SysfsPath, d.Name+":1.0")
	entries, err := os.ReadDir(ifaceDir)
	if err != nil {
		return "", fmt.Errorf("failed to read interface directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(ifaceDir, entry.Name(), "report_descriptor")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no report descriptor under %s", ifaceDir)
}

// powerControlPath is the sysfs attribute controlling runtime power
// management for the device.
func (d *DeviceInfo) powerControlPath() string {
	return filepath.Join(d.SysfsPath, "power", "control")
}
