package usb

import "fmt"

// validateReportDescriptor walks the HID items of a report descriptor
// and rejects truncated or empty input. Short items encode their data
// size in the low two bits of the prefix, with 3 meaning 4 bytes; long
// items (prefix 0xfe) carry an explicit length byte.
func validateReportDescriptor(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty report descriptor")
	}

	pos := 0
	for pos < len(data) {
		prefix := data[pos]
		var size int
		if prefix == 0xfe {
			if pos+2 >= len(data) {
				return fmt.Errorf("truncated long item at offset %d", pos)
			}
			size = int(data[pos+1]) + 2
		} else {
			size = int(prefix & 0x03)
			if size == 3 {
				size = 4
			}
		}
		pos += 1 + size
		if pos > len(data) {
			return fmt.Errorf("truncated item at end of descriptor")
		}
	}

	return nil
}
