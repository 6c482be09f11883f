package protocol

import (
	"bytes"
	"crypto/rand"
	"testing"
)

// fixedRand always yields the same transaction id byte.
type fixedRand byte

func (f fixedRand) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(f)
	}
	return len(p), nil
}

func TestNewSetColorReport(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attribute
		color Color
	}{
		{"wheel", AttributeWheel, Color{R: 10, G: 20, B: 30}},
		{"logo", AttributeLogo, Color{R: 0xFF, G: 0x00, B: 0x7F}},
		{"black", AttributeWheel, Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := NewSetColorReport(tt.attr, tt.color, fixedRand(0x5A))
			if err != nil {
				t.Fatalf("NewSetColorReport() error = %v", err)
			}

			frame, err := report.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary() error = %v", err)
			}

			if len(frame) != ReportSize {
				t.Fatalf("frame length = %d, want %d", len(frame), ReportSize)
			}
			if frame[4] != 5 {
				t.Errorf("args_len = %d, want 5", frame[4])
			}
			if frame[5] != 0x03 || frame[6] != 0x01 {
				t.Errorf("cmd class/id = 0x%02x/0x%02x, want 0x03/0x01", frame[5], frame[6])
			}
			if frame[7] != 1 {
				t.Errorf("persist flag = %d, want 1", frame[7])
			}
			if frame[8] != byte(tt.attr) {
				t.Errorf("led id = 0x%02x, want 0x%02x", frame[8], byte(tt.attr))
			}
			if frame[9] != tt.color.R || frame[10] != tt.color.G || frame[11] != tt.color.B {
				t.Errorf("rgb = %d,%d,%d, want %d,%d,%d",
					frame[9], frame[10], frame[11], tt.color.R, tt.color.G, tt.color.B)
			}
			if frame[1] != 0x5A {
				t.Errorf("transaction id = 0x%02x, want injected 0x5a", frame[1])
			}
		})
	}
}

func TestMarshalBinaryUnusedArgsAreZero(t *testing.T) {
	report, err := NewSetColorReport(AttributeLogo, Color{R: 0xFF, G: 0xFF, B: 0xFF}, fixedRand(0xFF))
	if err != nil {
		t.Fatalf("NewSetColorReport() error = %v", err)
	}
	frame, err := report.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	// args[5..79] live at frame offsets 12..86 and must always be zero.
	for i := 12; i < 87; i++ {
		if frame[i] != 0 {
			t.Errorf("frame[%d] = 0x%02x, want 0 (unused args must stay zeroed)", i, frame[i])
		}
	}
	if frame[0] != 0 || frame[2] != 0 || frame[3] != 0 {
		t.Error("status, remaining_packets and protocol_type must be zero on send")
	}
	if frame[88] != 0 {
		t.Errorf("reserved byte = 0x%02x, want 0", frame[88])
	}
}

func TestMarshalBinaryChecksumRoundTrip(t *testing.T) {
	colors := []Color{
		{},
		{R: 1, G: 2, B: 3},
		{R: 0xFF, G: 0xFF, B: 0xFF},
		{R: 0x80, G: 0x40, B: 0x20},
	}

	for _, attr := range []Attribute{AttributeWheel, AttributeLogo} {
		for _, c := range colors {
			report, err := NewSetColorReport(attr, c, rand.Reader)
			if err != nil {
				t.Fatalf("NewSetColorReport() error = %v", err)
			}
			frame, err := report.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary() error = %v", err)
			}

			if got := Checksum(frame); frame[87] != got {
				t.Errorf("frame crc = 0x%02x, recomputed 0x%02x (attr=%s color=%s)",
					frame[87], got, attr, c)
			}
			if err := Validate(frame); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		}
	}
}

func TestTransactionIDRandomness(t *testing.T) {
	// Not a bit-exact check: across many reports the transaction id must
	// not be constant.
	seen := make(map[byte]bool)
	for i := 0; i < 64; i++ {
		report, err := NewSetColorReport(AttributeWheel, Color{R: 1}, rand.Reader)
		if err != nil {
			t.Fatalf("NewSetColorReport() error = %v", err)
		}
		seen[report.TransactionID] = true
	}
	if len(seen) < 2 {
		t.Errorf("transaction ids constant across 64 reports (saw %d distinct values)", len(seen))
	}
}

func TestUnmarshal(t *testing.T) {
	report, err := NewSetColorReport(AttributeWheel, Color{R: 10, G: 20, B: 30}, fixedRand(0x77))
	if err != nil {
		t.Fatalf("NewSetColorReport() error = %v", err)
	}
	frame, err := report.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	decoded, err := Unmarshal(frame)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.TransactionID != 0x77 {
		t.Errorf("TransactionID = 0x%02x, want 0x77", decoded.TransactionID)
	}
	if !bytes.Equal(decoded.Args[:5], []byte{1, 0x01, 10, 20, 30}) {
		t.Errorf("Args[:5] = %v, want [1 1 10 20 30]", decoded.Args[:5])
	}
	if decoded.CRC != frame[87] {
		t.Errorf("CRC = 0x%02x, want 0x%02x", decoded.CRC, frame[87])
	}
}

func TestValidateRejectsBadFrames(t *testing.T) {
	report, _ := NewSetColorReport(AttributeLogo, Color{R: 5}, fixedRand(1))
	frame, _ := report.MarshalBinary()

	t.Run("wrong size", func(t *testing.T) {
		if err := Validate(frame[:80]); err == nil {
			t.Error("Validate() accepted an 80-byte frame")
		}
	})

	t.Run("corrupted payload", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[9] ^= 0xFF
		if err := Validate(bad); err == nil {
			t.Error("Validate() accepted a frame with a corrupted payload byte")
		}
	})
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"ff8000", Color{R: 0xFF, G: 0x80, B: 0x00}, false},
		{"#00ff00", Color{G: 0xFF}, false},
		{"  0a141e ", Color{R: 10, G: 20, B: 30}, false},
		{"fff", Color{}, true},
		{"gggggg", Color{}, true},
		{"", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		in      string
		want    Attribute
		wantErr bool
	}{
		{"wheel_color", AttributeWheel, false},
		{"wheel", AttributeWheel, false},
		{"logo_color", AttributeLogo, false},
		{"logo", AttributeLogo, false},
		{"underglow", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAttribute(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAttribute(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAttribute(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
