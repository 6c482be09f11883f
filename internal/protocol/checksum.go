package protocol

// Checksum computes the 8-bit transfer checksum the device firmware
// recomputes and compares on receipt. It is the XOR of every byte except
// the first two (status, transaction id) and the last two (crc, reserved).
//
// The checksum must be computed only after all other report fields are
// final; the crc and reserved bytes themselves are outside its coverage.
// This is a corruption detector, not a cryptographic digest.
func Checksum(data []byte) byte {
	var crc byte
	for i := 2; i < len(data)-2; i++ {
		crc ^= data[i]
	}
	return crc
}
