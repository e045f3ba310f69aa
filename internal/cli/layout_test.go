package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		fallback int
		want     int
		wantErr  bool
	}{
		{"", 480, 480, false},
		{"00:00", 0, 0, false},
		{"08:00", 0, 480, false},
		{"09:30", 0, 570, false},
		{"24:00", 0, 1440, false},
		{"8", 0, 0, true},
		{"25:00", 0, 0, true},
		{"08:60", 0, 0, true},
		{"noon", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseClock(tt.input, tt.fallback)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestLayoutBasePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-03-15.layout.json", "2024-03-15"},
		{"work.json", "work"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := layoutBasePath(tt.input); got != tt.want {
			t.Errorf("layoutBasePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		format string
		multi  bool
		want   string
	}{
		{"default from input", "day.layout.json", "", "svg", false, "day.svg"},
		{"explicit output", "day.layout.json", "out.svg", "svg", false, "out.svg"},
		{"multi uses base", "day.layout.json", "out", "png", true, "out.png"},
		{"multi default", "day.layout.json", "", "png", true, "day.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderOutputPath(tt.input, tt.output, tt.format, tt.multi); got != tt.want {
				t.Errorf("renderOutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := writeFileAtomic(path, []byte("<svg/>")); err != nil {
		t.Fatalf("writeFileAtomic: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("content = %q", data)
	}

	// Overwrite keeps the new content
	if err := writeFileAtomic(path, []byte("<svg>2</svg>")); err != nil {
		t.Fatalf("writeFileAtomic overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "<svg>2</svg>" {
		t.Errorf("content after overwrite = %q", data)
	}
}
