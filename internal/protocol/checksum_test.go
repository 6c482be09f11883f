package protocol

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{
			name: "all zeros",
			data: make([]byte, ReportSize),
			want: 0x00,
		},
		{
			name: "single covered byte",
			data: []byte{0xFF, 0xFF, 0x42, 0x00, 0x00},
			want: 0x42,
		},
		{
			name: "excluded head and tail bytes do not affect result",
			data: []byte{0xAA, 0xBB, 0x01, 0x02, 0x03, 0xCC, 0xDD},
			want: 0x01 ^ 0x02 ^ 0x03,
		},
		{
			name: "xor cancels pairs",
			data: []byte{0x00, 0x00, 0x5A, 0x5A, 0x00, 0x00},
			want: 0x00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%02x, want 0x%02x", got, tt.want)
			}
		})
	}
}

func TestChecksumCoverage(t *testing.T) {
	// Flipping a bit inside [2, len-3] must change the checksum; flipping a
	// bit outside that range must not.
	base := make([]byte, ReportSize)
	for i := range base {
		base[i] = byte(i)
	}
	want := Checksum(base)

	for _, i := range []int{0, 1, ReportSize - 2, ReportSize - 1} {
		data := append([]byte(nil), base...)
		data[i] ^= 0x80
		if got := Checksum(data); got != want {
			t.Errorf("flipping uncovered byte %d changed checksum: 0x%02x != 0x%02x", i, got, want)
		}
	}

	for _, i := range []int{2, 40, ReportSize - 3} {
		data := append([]byte(nil), base...)
		data[i] ^= 0x80
		if got := Checksum(data); got == want {
			t.Errorf("flipping covered byte %d did not change checksum", i)
		}
	}
}
