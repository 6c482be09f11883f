//go:build ignore

// Decode-frames pretty-prints captured Chroma feature report frames.
//
// Input is one hex-encoded frame per line (89 bytes / 178 hex chars),
// the format produced by usbmon captures or debug-level frame logs.
// Each frame is validated and its fields are printed, flagging checksum
// mismatches.
//
// Usage: go run tools/decode-frames.go <capture-file>
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: decode-frames <capture-file>")
		fmt.Println("Each line: 89 hex-encoded frame bytes")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	lines := strings.Split(string(data), "\n")
	fmt.Printf("=== Chroma Frame Decoder ===\n")
	fmt.Printf("File: %s\n\n", os.Args[1])

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		frame, err := hex.DecodeString(line)
		if err != nil {
			fmt.Printf("Line %d: bad hex: %v\n", i+1, err)
			continue
		}
		decodeFrame(i+1, frame)
	}
}

func decodeFrame(lineNum int, frame []byte) {
	fmt.Printf("--- Frame (line %d) ---\n", lineNum)

	if len(frame) != 89 {
		fmt.Printf("  size: %d bytes (expected 89)\n\n", len(frame))
		return
	}

	fmt.Printf("  status:       0x%02x\n", frame[0])
	fmt.Printf("  txn id:       0x%02x\n", frame[1])
	fmt.Printf("  remaining:    %d\n", frame[2])
	fmt.Printf("  proto type:   0x%02x\n", frame[3])
	fmt.Printf("  args len:     %d\n", frame[4])
	fmt.Printf("  cmd class:    0x%02x\n", frame[5])
	fmt.Printf("  cmd id:       0x%02x\n", frame[6])
	fmt.Printf("  persist:      %d\n", frame[7])
	fmt.Printf("  led:          0x%02x (%s)\n", frame[8], ledName(frame[8]))
	fmt.Printf("  rgb:          #%02x%02x%02x\n", frame[9], frame[10], frame[11])

	// XOR over bytes [2, 86], matching the device's checksum rule.
	var crc byte
	for i := 2; i < 87; i++ {
		crc ^= frame[i]
	}
	if crc == frame[87] {
		fmt.Printf("  crc:          0x%02x (ok)\n", frame[87])
	} else {
		fmt.Printf("  crc:          0x%02x (MISMATCH, computed 0x%02x)\n", frame[87], crc)
	}

	// Unused args should be zero in well-formed frames.
	for i := 12; i < 87; i++ {
		if frame[i] != 0 {
			fmt.Printf("  note:         nonzero arg byte at offset %d: 0x%02x\n", i, frame[i])
		}
	}
	fmt.Println()
}

func ledName(id byte) string {
	switch id {
	case 0x01:
		return "scroll wheel"
	case 0x04:
		return "logo"
	default:
		return "unknown"
	}
}
