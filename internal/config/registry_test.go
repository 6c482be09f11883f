package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "rzchroma") {
		t.Errorf("GetConfigDir() = %v, should contain 'rzchroma'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}
	if reg.Preferences.TransferTimeoutMS != 5000 {
		t.Errorf("TransferTimeoutMS = %v, want 5000", reg.Preferences.TransferTimeoutMS)
	}
	if reg.Preferences.ListenAddr == "" {
		t.Error("ListenAddr should have a default")
	}
}

func TestDeviceTableBuiltin(t *testing.T) {
	table := NewDeviceTable(nil)

	// Razer DeathAdder Chroma is always supported.
	if !table.Supports(0x1532, 0x0043) {
		t.Error("built-in table should support 1532:0043")
	}

	entry, ok := table.Lookup(0x1532, 0x0043)
	if !ok {
		t.Fatal("Lookup(1532, 0043) not found")
	}
	if entry.Name != "Razer DeathAdder Chroma" {
		t.Errorf("entry name = %q", entry.Name)
	}

	if table.Supports(0x1532, 0x9999) {
		t.Error("unknown product should not be supported")
	}
	if table.Supports(0x046d, 0x0043) {
		t.Error("unknown vendor should not be supported")
	}
}

func TestDeviceTableExtras(t *testing.T) {
	extras := []DeviceEntry{
		{Name: "Razer DeathAdder Chroma (alt)", Vendor: 0x1532, Product: 0x0044},
		// Duplicate of a built-in, must be dropped.
		{Name: "dup", Vendor: 0x1532, Product: 0x0043},
	}
	table := NewDeviceTable(extras)

	if !table.Supports(0x1532, 0x0044) {
		t.Error("extra product 0044 should be supported")
	}

	entry, _ := table.Lookup(0x1532, 0x0043)
	if entry.Name != "Razer DeathAdder Chroma" {
		t.Errorf("built-in entry overridden by duplicate: %q", entry.Name)
	}

	if len(table.Entries()) != 2 {
		t.Errorf("entry count = %d, want 2", len(table.Entries()))
	}
}

func TestRegistryAddDevice(t *testing.T) {
	reg := NewRegistry()

	if !reg.AddDevice("Razer Naga", 0x1532, 0x0040) {
		t.Error("AddDevice() of a new product should succeed")
	}
	if reg.AddDevice("again", 0x1532, 0x0040) {
		t.Error("AddDevice() of a duplicate should fail")
	}
	if reg.AddDevice("builtin dup", 0x1532, 0x0043) {
		t.Error("AddDevice() of a built-in should fail")
	}

	if !reg.DeviceTable().Supports(0x1532, 0x0040) {
		t.Error("resolved table should include the added device")
	}
}

func TestRegistryYAMLRoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.AddDevice("Razer Naga", 0x1532, 0x0040)

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	var loaded Registry
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}

	if loaded.Version != 1 {
		t.Errorf("Version = %d, want 1", loaded.Version)
	}
	if len(loaded.ExtraDevices) != 1 {
		t.Fatalf("ExtraDevices count = %d, want 1", len(loaded.ExtraDevices))
	}
	if loaded.ExtraDevices[0].Product != 0x0040 {
		t.Errorf("Product = 0x%04x, want 0x0040", loaded.ExtraDevices[0].Product)
	}
	if loaded.Preferences.ListenAddr != reg.Preferences.ListenAddr {
		t.Errorf("ListenAddr = %q, want %q", loaded.Preferences.ListenAddr, reg.Preferences.ListenAddr)
	}
}

func TestDeviceEntryString(t *testing.T) {
	e := DeviceEntry{Name: "Razer DeathAdder Chroma", Vendor: 0x1532, Product: 0x0043}
	if got := e.String(); got != "1532:0043 Razer DeathAdder Chroma" {
		t.Errorf("String() = %q", got)
	}
}
