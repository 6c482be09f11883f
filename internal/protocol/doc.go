// Package protocol implements the Razer Chroma feature-report wire format.
//
// Chroma-capable devices accept LED configuration through a vendor-defined
// 89-byte feature report delivered over the USB control endpoint. The format
// was reverse engineered from captured transfers; see rzctl
// (https://github.com/anpep/rzctl) for the original protocol notes.
//
// # Report Layout
//
// Every report is exactly 89 bytes:
//
//	[0]      status             always 0 on send
//	[1]      transaction id     randomized per report
//	[2]      remaining packets  always 0
//	[3]      protocol type      always 0
//	[4]      args length        5 for set-color commands
//	[5]      command class      0x03
//	[6]      command id         0x01
//	[7:87]   args               args[0]=persist, args[1]=LED id, args[2:5]=R,G,B
//	[87]     crc                XOR over bytes [2,86]
//	[88]     reserved           always 0
//
// The command class and id bytes carry no documented semantics beyond
// matching what the firmware expects; they are kept as opaque constants.
//
// # Construction
//
//	report, err := protocol.NewSetColorReport(protocol.AttributeWheel,
//	    protocol.Color{R: 10, G: 20, B: 30}, rand.Reader)
//	if err != nil {
//	    return err
//	}
//	frame, err := report.MarshalBinary()
//
// MarshalBinary writes the checksum last, after every other field is final.
// Reports are transient values: one per write request, never reused.
//
// All functions are stateless and safe for concurrent use.
package protocol
