package device

import "time"

// Transport performs a raw USB control transfer against one device handle.
// It reports the number of bytes actually transferred, or an error for
// transfer-level failures (including timeouts).
//
// internal/usb implements Transport over usbfs on Linux.
type Transport interface {
	ControlTransfer(requestType, request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)
}

// Port is the lifecycle surface of the underlying HID device, in attach
// order. Detach calls Close and Stop in reverse order of bring-up.
type Port interface {
	// ParseReportDescriptor parses the device's HID report descriptor.
	ParseReportDescriptor() error
	// Start allocates transport buffers and starts hardware I/O.
	Start() error
	// Open opens the device for asynchronous event delivery.
	Open() error
	// DisableAutosuspend prevents the device from suspending
	// mid-transfer, which would lose or corrupt pending LED state.
	DisableAutosuspend() error
	// Close closes event delivery.
	Close() error
	// Stop stops hardware I/O and releases transport buffers.
	Stop() error
}

// Control transfer parameters for delivering a feature report, fixed by
// the HID class specification and the device's observed behavior.
const (
	// requestTypeOut is host-to-device, class request, interface recipient.
	requestTypeOut uint8 = 0x21

	// requestSetReport is the HID SET_REPORT request.
	requestSetReport uint8 = 0x09

	// valueFeatureReport encodes the feature-report type in the high byte
	// and report id 0 in the low byte.
	valueFeatureReport uint16 = 0x0300

	// indexInterface0 addresses interface 0.
	indexInterface0 uint16 = 0
)

// DefaultTransferTimeout bounds a single control transfer. This mirrors
// the USB control timeout used by the platform HID stack.
const DefaultTransferTimeout = 5 * time.Second
