// Package config provides the supported-device table and user configuration
// for rzchroma.
//
// The built-in device table is process-wide immutable data: the USB
// vendor/product identifiers known to speak the Chroma feature-report
// protocol. Users can extend it with additional product IDs through a
// YAML configuration file, without rebuilding.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/rzchroma/config.yaml or $HOME/.config/rzchroma/config.yaml
//   - macOS: $HOME/.config/rzchroma/config.yaml
//   - Windows: %LOCALAPPDATA%\rzchroma\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	table := registry.DeviceTable()
//	if table.Supports(0x1532, 0x0043) {
//	    // device speaks the protocol
//	}
//
// # Thread Safety
//
// LoadRegistry is safe for concurrent use and returns a single shared
// instance. Save performs an atomic write to prevent corruption on crash.
package config
