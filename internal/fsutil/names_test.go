package fsutil

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"5cm", "5cm"},
		{"5cm\nTotal messages: 177", "5cm_Total_messages_177"},
		{"../../etc/passwd", "etc_passwd"},
		{"...", "unknown"},
		{"run-01_a.csv", "run-01_a.csv"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 500))
	if len(got) != maxNameLen {
		t.Errorf("expected length %d, got %d", maxNameLen, len(got))
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"/data/aperture_5cm.csv": "aperture_5cm",
		"run.tar.gz":             "run.tar",
		"noext":                  "noext",
	}
	for in, want := range tests {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
