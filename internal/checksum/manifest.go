package checksum

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashbrr/hashbrr/internal/sha1"
)

// ManifestEntry is one line of a checksum manifest.
type ManifestEntry struct {
	Digest [sha1.Size]byte
	Path   string
}

// Manifest is a parsed checksum file in the coreutils sha1sum format:
// 40 hex digits, two spaces (or space-asterisk for binary mode), then
// the path. Blank lines and '#' comments are skipped.
type Manifest struct {
	Entries []ManifestEntry
}

// ParseManifest reads manifest lines from r.
func ParseManifest(r io.Reader) (*Manifest, error) {
	m := &Manifest{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseManifestLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		m.Entries = append(m.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read manifest: %w", err)
	}

	if len(m.Entries) == 0 {
		return nil, fmt.Errorf("no checksum entries found")
	}
	return m, nil
}

func parseManifestLine(line string) (ManifestEntry, error) {
	var entry ManifestEntry

	if len(line) < 2*sha1.Size+2 {
		return entry, fmt.Errorf("malformed checksum line %q", line)
	}

	digest, err := hex.DecodeString(line[:2*sha1.Size])
	if err != nil || len(digest) != sha1.Size {
		return entry, fmt.Errorf("malformed digest in line %q", line)
	}

	rest := line[2*sha1.Size:]
	switch {
	case strings.HasPrefix(rest, "  "), strings.HasPrefix(rest, " *"):
		rest = rest[2:]
	default:
		return entry, fmt.Errorf("malformed separator in line %q", line)
	}
	if rest == "" {
		return entry, fmt.Errorf("missing path in line %q", line)
	}

	copy(entry.Digest[:], digest)
	entry.Path = rest
	return entry, nil
}

// LoadManifest parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open manifest: %w", err)
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", path, err)
	}
	return m, nil
}

// WriteManifest writes results to w in sha1sum format. Results carrying
// an error are skipped; callers report those separately.
func WriteManifest(w io.Writer, results []FileResult) error {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%x  %s\n", res.Digest, res.Path); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatLine renders a single manifest line without the trailing
// newline.
func FormatLine(digest [sha1.Size]byte, path string) string {
	return fmt.Sprintf("%x  %s", digest, path)
}
