package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
)

// FormatHashRate returns a human readable throughput for bytes hashed
// over dur.
func FormatHashRate(bytes int64, dur time.Duration) string {
	seconds := dur.Seconds()
	if seconds <= 0 || bytes <= 0 {
		return "0 B/s"
	}
	return fmt.Sprintf("%s/s", humanize.IBytes(uint64(float64(bytes)/seconds)))
}

// SanitizeFilename removes characters that are invalid in filenames
func SanitizeFilename(input string) string {
	// replace characters that are problematic in filenames
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(input)
}

// DefaultManifestName derives a manifest filename from the first input
// path, e.g. "photos/" -> "photos.sha1".
func DefaultManifestName(inputPath string) string {
	base := filepath.Base(strings.TrimSuffix(inputPath, "/"))
	base = SanitizeFilename(base)
	if base == "" || base == "." || base == "_" {
		base = "checksums"
	}
	return base + ".sha1"
}
