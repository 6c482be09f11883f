package protocol

import (
	"fmt"
	"io"
)

const (
	// ReportSize is the fixed size of every feature report, regardless of
	// the targeted attribute.
	ReportSize = 89

	// ArgsSize is the size of the argument region. Set-color commands use
	// the first five bytes; the remainder is always zero on the wire.
	ArgsSize = 80
)

// Observed firmware constants. No documented meaning beyond "must match
// what the device expects"; do not infer semantics.
const (
	cmdClassChroma byte = 0x03
	cmdIDSetColor  byte = 0x01
)

const (
	setColorArgsLen byte = 5
	persistFlag     byte = 1
)

// Report field offsets inside the marshalled frame. MarshalBinary and
// Unmarshal are the only code that touches these.
const (
	offStatus        = 0
	offTransactionID = 1
	offRemaining     = 2
	offProtocolType  = 3
	offArgsLen       = 4
	offCmdClass      = 5
	offCmdID         = 6
	offArgs          = 7
	offCRC           = 87
	offReserved      = 88
)

// Report is a single feature-report command. It is built per write request
// and discarded once the transfer completes; reports are never cached or
// reused, so stale argument bytes cannot leak into a later transfer.
type Report struct {
	Status           byte
	TransactionID    byte
	RemainingPackets byte
	ProtocolType     byte
	ArgsLen          byte
	CmdClass         byte
	CmdID            byte
	Args             [ArgsSize]byte
	CRC              byte
}

// NewSetColorReport builds a set-color report for one LED zone. The
// transaction id is drawn from rng so that no two reports from a session
// are bit-identical; pass crypto/rand.Reader outside of tests.
//
// The returned report is complete except for the checksum, which
// MarshalBinary computes once the byte layout is final.
func NewSetColorReport(attr Attribute, color Color, rng io.Reader) (*Report, error) {
	var txn [1]byte
	if _, err := io.ReadFull(rng, txn[:]); err != nil {
		return nil, fmt.Errorf("failed to read transaction id: %w", err)
	}

	r := &Report{
		TransactionID: txn[0],
		ArgsLen:       setColorArgsLen,
		CmdClass:      cmdClassChroma,
		CmdID:         cmdIDSetColor,
	}
	r.Args[0] = persistFlag
	r.Args[1] = byte(attr)
	r.Args[2] = color.R
	r.Args[3] = color.G
	r.Args[4] = color.B
	return r, nil
}

// MarshalBinary encodes the report into its fixed 89-byte wire form.
// The buffer is fully zero-initialized before any field is written, and the
// checksum is computed last, over the final content of bytes [2,86].
func (r *Report) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ReportSize)
	buf[offStatus] = r.Status
	buf[offTransactionID] = r.TransactionID
	buf[offRemaining] = r.RemainingPackets
	buf[offProtocolType] = r.ProtocolType
	buf[offArgsLen] = r.ArgsLen
	buf[offCmdClass] = r.CmdClass
	buf[offCmdID] = r.CmdID
	copy(buf[offArgs:offCRC], r.Args[:])

	r.CRC = Checksum(buf)
	buf[offCRC] = r.CRC
	buf[offReserved] = 0
	return buf, nil
}

// Validate checks that data is a well-formed report frame: exact size and
// a checksum matching the covered region. Used before handing a frame to
// the transport and when logging captured frames.
func Validate(data []byte) error {
	if len(data) != ReportSize {
		return fmt.Errorf("invalid report size: %d bytes (want %d)", len(data), ReportSize)
	}
	if got, want := data[offCRC], Checksum(data); got != want {
		return fmt.Errorf("checksum mismatch: frame has 0x%02x, computed 0x%02x", got, want)
	}
	return nil
}

// Unmarshal decodes a marshalled frame back into a Report. The device
// protocol is write-only, so this exists for tests and frame inspection,
// not for parsing device responses.
func Unmarshal(data []byte) (*Report, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	r := &Report{
		Status:           data[offStatus],
		TransactionID:    data[offTransactionID],
		RemainingPackets: data[offRemaining],
		ProtocolType:     data[offProtocolType],
		ArgsLen:          data[offArgsLen],
		CmdClass:         data[offCmdClass],
		CmdID:            data[offCmdID],
		CRC:              data[offCRC],
	}
	copy(r.Args[:], data[offArgs:offCRC])
	return r, nil
}

// String returns a debug representation of the report.
func (r *Report) String() string {
	return fmt.Sprintf("Report{txn=0x%02x, class=0x%02x, id=0x%02x, args_len=%d, led=0x%02x, rgb=#%02x%02x%02x}",
		r.TransactionID, r.CmdClass, r.CmdID, r.ArgsLen, r.Args[1], r.Args[2], r.Args[3], r.Args[4])
}
