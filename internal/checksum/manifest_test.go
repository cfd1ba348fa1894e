package checksum

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseManifest(t *testing.T) {
	t.Run("valid manifest", func(t *testing.T) {
		input := strings.Join([]string{
			"# generated by hashbrr",
			"da39a3ee5e6b4b0d3255bfef95601890afd80709  empty.bin",
			"",
			"2ef7bde608ce5404e97d5f042f95f89f1c232871 *hello.bin",
			"a9993e364706816aba3e25717850c26c9cd0d89d  sub/abc.bin",
		}, "\n")

		m, err := ParseManifest(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseManifest failed: %v", err)
		}
		if len(m.Entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(m.Entries))
		}
		if m.Entries[0].Path != "empty.bin" {
			t.Errorf("entry 0 path = %q", m.Entries[0].Path)
		}
		if m.Entries[1].Path != "hello.bin" {
			t.Errorf("binary-mode entry path = %q", m.Entries[1].Path)
		}
		if m.Entries[2].Path != "sub/abc.bin" {
			t.Errorf("entry 2 path = %q", m.Entries[2].Path)
		}
		if got := FormatLine(m.Entries[0].Digest, m.Entries[0].Path); got != "da39a3ee5e6b4b0d3255bfef95601890afd80709  empty.bin" {
			t.Errorf("FormatLine round trip = %q", got)
		}
	})

	t.Run("malformed lines", func(t *testing.T) {
		bad := []string{
			"da39a3ee",
			"zz39a3ee5e6b4b0d3255bfef95601890afd80709  x",
			"da39a3ee5e6b4b0d3255bfef95601890afd80709-x",
			"da39a3ee5e6b4b0d3255bfef95601890afd80709  ",
		}
		for _, line := range bad {
			if _, err := ParseManifest(strings.NewReader(line)); err == nil {
				t.Errorf("expected error for line %q", line)
			}
		}
	})

	t.Run("empty manifest", func(t *testing.T) {
		if _, err := ParseManifest(strings.NewReader("# only comments\n")); err == nil {
			t.Error("expected error for manifest without entries")
		}
	})
}

func TestWriteManifest(t *testing.T) {
	results := []FileResult{
		{Path: "a.bin", Digest: [20]byte{0xda, 0x39}},
		{Path: "broken.bin", Err: errors.New("short read")},
		{Path: "b.bin", Digest: [20]byte{0x2e, 0xf7}},
	}

	var buf bytes.Buffer
	if err := WriteManifest(&buf, results); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	m, err := ParseManifest(&buf)
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	// the failed entry is skipped
	if len(m.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.Entries))
	}
	if m.Entries[0].Path != "a.bin" || m.Entries[1].Path != "b.bin" {
		t.Errorf("unexpected paths: %q, %q", m.Entries[0].Path, m.Entries[1].Path)
	}
	if m.Entries[0].Digest != results[0].Digest {
		t.Errorf("digest mismatch after round trip")
	}
}
