package config

import "fmt"

// VendorRazer is the USB vendor ID shared by all supported devices.
const VendorRazer uint16 = 0x1532

// DeviceEntry identifies one USB product known to speak the Chroma
// feature-report protocol.
type DeviceEntry struct {
	Name    string `yaml:"name"`
	Vendor  uint16 `yaml:"vendor"`
	Product uint16 `yaml:"product"`
}

// String returns "vendor:product name" for display.
func (d DeviceEntry) String() string {
	return fmt.Sprintf("%04x:%04x %s", d.Vendor, d.Product, d.Name)
}

// builtinDevices is the immutable base table, loaded at start-up. Adding a
// product here (or via the user registry) is the only way to extend
// matching; there is no runtime mutation.
var builtinDevices = []DeviceEntry{
	{Name: "Razer DeathAdder Chroma", Vendor: VendorRazer, Product: 0x0043},
}

// DeviceTable is the resolved set of supported devices: the built-in table
// plus any user-registered entries. It is immutable after construction.
type DeviceTable struct {
	entries []DeviceEntry
}

// NewDeviceTable builds a table from the built-in entries plus extras.
// Duplicate vendor/product pairs are dropped, built-ins winning.
func NewDeviceTable(extras []DeviceEntry) *DeviceTable {
	seen := make(map[uint32]bool)
	key := func(vendor, product uint16) uint32 {
		return uint32(vendor)<<16 | uint32(product)
	}

	entries := make([]DeviceEntry, 0, len(builtinDevices)+len(extras))
	for _, e := range builtinDevices {
		entries = append(entries, e)
		seen[key(e.Vendor, e.Product)] = true
	}
	for _, e := range extras {
		if seen[key(e.Vendor, e.Product)] {
			continue
		}
		entries = append(entries, e)
		seen[key(e.Vendor, e.Product)] = true
	}
	return &DeviceTable{entries: entries}
}

// Supports reports whether the vendor/product pair speaks the protocol.
func (t *DeviceTable) Supports(vendor, product uint16) bool {
	_, ok := t.Lookup(vendor, product)
	return ok
}

// Lookup returns the table entry for a vendor/product pair.
func (t *DeviceTable) Lookup(vendor, product uint16) (DeviceEntry, bool) {
	for _, e := range t.entries {
		if e.Vendor == vendor && e.Product == product {
			return e, true
		}
	}
	return DeviceEntry{}, false
}

// Entries returns a copy of all table entries.
func (t *DeviceTable) Entries() []DeviceEntry {
	return append([]DeviceEntry(nil), t.entries...)
}

// Registry represents the user configuration file.
type Registry struct {
	Version int `yaml:"version"`
	// ExtraDevices are user-added product IDs that share the protocol.
	ExtraDevices []DeviceEntry `yaml:"extra_devices,omitempty"`
	Preferences  *Preferences  `yaml:"preferences,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	// TransferTimeoutMS bounds a single control transfer, in milliseconds.
	TransferTimeoutMS int `yaml:"transfer_timeout_ms"`
	// ListenAddr is the default control server listen address.
	ListenAddr string `yaml:"listen_addr"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Preferences: &Preferences{
			TransferTimeoutMS: 5000,
			ListenAddr:        "localhost:9753",
		},
	}
}

// DeviceTable resolves the effective device table for this registry.
func (r *Registry) DeviceTable() *DeviceTable {
	return NewDeviceTable(r.ExtraDevices)
}

// AddDevice registers an extra product ID. Returns false if the pair is
// already present (built-in or user-added).
func (r *Registry) AddDevice(name string, vendor, product uint16) bool {
	if r.DeviceTable().Supports(vendor, product) {
		return false
	}
	r.ExtraDevices = append(r.ExtraDevices, DeviceEntry{
		Name:    name,
		Vendor:  vendor,
		Product: product,
	})
	return true
}
