// Package usb provides Linux USB device access for Razer Chroma peripherals.
//
// Devices are discovered by scanning sysfs (/sys/bus/usb/devices) for
// entries whose vendor and product identifiers appear in the configured
// device table. I/O goes through usbfs (/dev/bus/usb/BBB/DDD): feature
// reports are delivered with the USBDEVFS_CONTROL ioctl, and interface 0
// is claimed for the lifetime of a session.
//
// The Device type implements both device.Transport and device.Port, so a
// discovered device plugs directly into device.NewSession.
package usb
