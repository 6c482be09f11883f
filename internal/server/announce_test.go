package server

import "testing"

func TestAnnouncePort(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		want    int
		wantErr bool
	}{
		{
			name: "host and port",
			addr: "localhost:9753",
			want: 9753,
		},
		{
			name: "port only",
			addr: ":8080",
			want: 8080,
		},
		{
			name:    "missing port",
			addr:    "localhost",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			addr:    "localhost:http",
			wantErr: true,
		},
		{
			name:    "port out of range",
			addr:    "localhost:70000",
			wantErr: true,
		},
		{
			name:    "empty address",
			addr:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := announcePort(tt.addr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("announcePort(%q) = %d, want error", tt.addr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("announcePort(%q) error = %v", tt.addr, err)
			}
			if got != tt.want {
				t.Errorf("announcePort(%q) = %d, want %d", tt.addr, got, tt.want)
			}
		})
	}
}

func TestAnnounceTXT(t *testing.T) {
	txt := announceTXT(2)
	want := []string{"api=v1", "devices=2"}
	if len(txt) != len(want) {
		t.Fatalf("announceTXT(2) = %v, want %v", txt, want)
	}
	for i := range want {
		if txt[i] != want[i] {
			t.Errorf("announceTXT(2)[%d] = %q, want %q", i, txt[i], want[i])
		}
	}
}
