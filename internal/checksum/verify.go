package checksum

import (
	"fmt"
	"os"
	"path/filepath"
)

// VerifyOptions configures a manifest verification run.
type VerifyOptions struct {
	ManifestPath string
	// Root is prepended to relative manifest paths; empty means the
	// manifest's own directory, matching sha1sum -c run from there.
	Root    string
	Workers int
	Quiet   bool
	Verbose bool
}

// EntryStatus is the per-file verification outcome.
type EntryStatus int

const (
	StatusOK EntryStatus = iota
	StatusFailed
	StatusMissing
)

func (s EntryStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusFailed:
		return "FAILED"
	case StatusMissing:
		return "MISSING"
	}
	return "UNKNOWN"
}

// EntryResult pairs a manifest entry with its verification outcome.
type EntryResult struct {
	Path   string
	Status EntryStatus
	Err    error
}

// VerificationResult summarizes a manifest verification run.
type VerificationResult struct {
	Entries    []EntryResult
	Checked    int
	Good       int
	Bad        int
	Missing    int
	Completion float64
	TotalBytes int64
}

// Verify hashes every file named by the manifest and compares digests.
// Unreadable or absent files are reported as missing rather than
// aborting the run, so a partial tree still yields a completion figure.
func Verify(opts VerifyOptions, display Displayer) (*VerificationResult, error) {
	manifest, err := LoadManifest(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	root := opts.Root
	if root == "" {
		root = filepath.Dir(opts.ManifestPath)
	}

	result := &VerificationResult{
		Entries: make([]EntryResult, len(manifest.Entries)),
		Checked: len(manifest.Entries),
	}

	// resolve paths first so missing files don't occupy workers
	entries := make([]FileEntry, 0, len(manifest.Entries))
	indices := make([]int, 0, len(manifest.Entries))
	for i, me := range manifest.Entries {
		path := me.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		result.Entries[i] = EntryResult{Path: me.Path}

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			result.Entries[i].Status = StatusMissing
			result.Entries[i].Err = err
			result.Missing++
			continue
		}

		entries = append(entries, FileEntry{Path: path, Size: info.Size()})
		indices = append(indices, i)
		result.TotalBytes += info.Size()
	}

	hashed, err := HashFiles(entries, Options{Workers: opts.Workers}, display)
	if err != nil {
		return nil, fmt.Errorf("verification failed: %w", err)
	}

	for j, res := range hashed {
		i := indices[j]
		switch {
		case res.Err != nil:
			result.Entries[i].Status = StatusMissing
			result.Entries[i].Err = res.Err
			result.Missing++
		case res.Digest == manifest.Entries[i].Digest:
			result.Entries[i].Status = StatusOK
			result.Good++
		default:
			result.Entries[i].Status = StatusFailed
			result.Bad++
		}
	}

	if result.Checked > 0 {
		result.Completion = float64(result.Good) / float64(result.Checked) * 100
	}
	return result, nil
}
