package usb

import (
	"fmt"
	"os"
	"syscall"
	"time"
	"unsafe"

	"go.uber.org/zap"

	"github.com/anpep/rzchroma/internal/logging"
)

// usbfs ioctl request codes.
const (
	usbdevfsControl          = 0xc0185500
	usbdevfsClaimInterface   = 0x8004550f
	usbdevfsReleaseInterface = 0x80045510
	usbdevfsDisconnectClaim  = 0x8108551b
)

// usbdevfsDisconnectClaimIfDriver makes DISCONNECT_CLAIM detach whatever
// kernel driver holds the interface before claiming it for us.
const usbdevfsDisconnectClaimIfDriver = 0x01

const controlInterface = 0

// usbCtrlRequest mirrors struct usbdevfs_ctrltransfer. Timeout is in
// milliseconds.
type usbCtrlRequest struct {
	RequestType uint8
	Request     uint8
	Value       uint16
	Index       uint16
	Length      uint16
	Timeout     uint32
	Data        unsafe.Pointer
}

// Device is an open handle to a USB peripheral. It implements both the
// device.Transport and device.Port interfaces: Start/Open/Close/Stop
// drive the usbfs lifecycle, and ControlTransfer delivers reports.
type Device struct {
	info    *DeviceInfo
	fd      int
	claimed bool
}

// NewDevice wraps a discovered device. No I/O happens until Start.
func NewDevice(info *DeviceInfo) *Device {
	return &Device{
		info: info,
		fd:   -1,
	}
}

// Info returns the discovery record for the device.
func (d *Device) Info() *DeviceInfo {
	return d.info
}

// ParseReportDescriptor reads the HID report descriptor the kernel
// exports in sysfs and walks its items to verify it is well formed.
func (d *Device) ParseReportDescriptor() error {
	path, err := d.info.reportDescriptorPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report descriptor: %w", err)
	}
	if err := validateReportDescriptor(data); err != nil {
		return err
	}

	logging.Debug("parsed report descriptor",
		zap.String("device", d.info.ID()),
		zap.Int("descriptor_size", len(data)))
	return nil
}

// Start opens the usbfs device node for I/O.
func (d *Device) Start() error {
	if d.fd >= 0 {
		return nil
	}

	fd, err := syscall.Open(d.info.DevNode(), syscall.O_RDWR, 0)
	if err != nil {
		if err == syscall.EACCES {
			return fmt.Errorf("permission denied opening %s (check udev rules): %w", d.info.DevNode(), err)
		}
		return fmt.Errorf("failed to open %s: %w", d.info.DevNode(), err)
	}

	d.fd = fd
	logging.Debug("opened device node",
		zap.String("device", d.info.ID()),
		zap.String("path", d.info.DevNode()))
	return nil
}

// Open claims the control interface, detaching the kernel HID driver if
// one is bound.
func (d *Device) Open() error {
	if d.fd < 0 {
		return fmt.Errorf("device not started")
	}
	if d.claimed {
		return nil
	}

	claim := struct {
		Interface uint32
		Flags     uint32
		Driver    [256]byte
	}{
		Interface: controlInterface,
		Flags:     usbdevfsDisconnectClaimIfDriver,
	}

	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(d.fd), usbdevfsDisconnectClaim, uintptr(unsafe.Pointer(&claim)))
	if errno == syscall.ENOTTY {
		// Older kernel without DISCONNECT_CLAIM; claim directly.
		iface := uint32(controlInterface)
		_, _, errno = syscall.Syscall(syscall.SYS_IOCTL, uintptr(d.fd), usbdevfsClaimInterface, uintptr(unsafe.Pointer(&iface)))
	}
	if errno != 0 {
		return fmt.Errorf("failed to claim interface %d: %w", controlInterface, errno)
	}

	d.claimed = true
	return nil
}

// DisableAutosuspend pins the device to full power by writing "on" to
// its sysfs power control attribute. Autosuspend mid-transfer would lose
// pending LED state.
func (d *Device) DisableAutosuspend() error {
	path := d.info.powerControlPath()
	if err := os.WriteFile(path, []byte("on"), 0o644); err != nil {
		return fmt.Errorf("failed to disable autosuspend: %w", err)
	}
	return nil
}

// Close releases the control interface.
func (d *Device) Close() error {
	if d.fd < 0 || !d.claimed {
		return nil
	}

	iface := uint32(controlInterface)
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(d.fd), usbdevfsReleaseInterface, uintptr(unsafe.Pointer(&iface)))
	d.claimed = false
	if errno != 0 {
		return fmt.Errorf("failed to release interface %d: %w", controlInterface, errno)
	}
	return nil
}

// Stop closes the device node.
func (d *Device) Stop() error {
	if d.fd < 0 {
		return nil
	}

	err := syscall.Close(d.fd)
	d.fd = -1
	if err != nil {
		return fmt.Errorf("failed to close device node: %w", err)
	}
	return nil
}

// ControlTransfer issues a synchronous control transfer through usbfs
// and returns the number of bytes transferred.
func (d *Device) ControlTransfer(requestType, request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	if d.fd < 0 {
		return 0, fmt.Errorf("device not started")
	}

	var dataPtr unsafe.Pointer
	if len(data) > 0 {
		dataPtr = unsafe.Pointer(&data[0])
	}

	ctrl := usbCtrlRequest{
		RequestType: requestType,
		Request:     request,
		Value:       value,
		Index:       index,
		Length:      uint16(len(data)),
		Timeout:     uint32(timeout / time.Millisecond),
		Data:        dataPtr,
	}

	ret, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(d.fd), usbdevfsControl, uintptr(unsafe.Pointer(&ctrl)))
	if errno != 0 {
		return 0, fmt.Errorf("control transfer failed: %w", errno)
	}

	return int(ret), nil
}
