package cmd

import (
	"path/filepath"
	"testing"
)

func TestResolveManifestPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		output string
		args   []string
		want   string
	}{
		{"empty means stdout", "", []string{"photos"}, ""},
		{"explicit file is kept", filepath.Join(dir, "out.sha1"), []string{"photos"}, filepath.Join(dir, "out.sha1")},
		{"directory gets derived name", dir, []string{"photos"}, filepath.Join(dir, "photos.sha1")},
		{"directory with path input", dir, []string{"/data/media library/"}, filepath.Join(dir, "media_library.sha1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveManifestPath(tt.output, tt.args); got != tt.want {
				t.Errorf("resolveManifestPath(%q, %v) = %q, want %q", tt.output, tt.args, got, tt.want)
			}
		})
	}
}
