package util

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := HomeDir()
	if home == "" {
		t.Skip("no home directory available")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde prefix", "~/activities", filepath.Join(home, "activities")},
		{"absolute untouched", "/data/activities", "/data/activities"},
		{"relative untouched", "activities", "activities"},
		{"tilde mid-path untouched", "/data/~/x", "/data/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
