// Package checksum computes and verifies SHA-1 checksums for sets of
// files, spreading the work across a pool of hashing workers.
package checksum

import (
	"bufio"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/klauspost/cpuid/v2"

	"github.com/hashbrr/hashbrr/internal/sha1"
)

// Displayer receives progress while files are being hashed. The display
// package provides the terminal implementation.
type Displayer interface {
	ShowProgress(totalBytes int64)
	UpdateProgress(completedBytes int64, hashrate float64)
	FinishProgress()
}

// FileEntry is a single file selected for hashing.
type FileEntry struct {
	Path string
	Size int64
}

// FileResult is the outcome of hashing one file. Err is set when the
// file could not be read; Digest is only meaningful when Err is nil.
type FileResult struct {
	Path   string
	Size   int64
	Digest [sha1.Size]byte
	Err    error
}

// Options controls the hashing engine.
type Options struct {
	// Workers overrides the automatic worker count when > 0.
	Workers int
}

// hasherPool reuses engines across files to avoid per-file allocations.
var hasherPool = sync.Pool{
	New: func() interface{} {
		return sha1.New()
	},
}

// readBufSize is the per-worker read buffer.
const readBufSize = 1 << 20

// CollectFiles expands paths into the flat list of files to hash.
// Directories are walked recursively; include and exclude are glob
// patterns matched against the base name, with exclude taking
// precedence. The result is sorted by path so output order is stable.
func CollectFiles(paths []string, include, exclude []string) ([]FileEntry, error) {
	var entries []FileEntry
	seen := make(map[string]bool)

	add := func(path string, size int64) {
		if seen[path] {
			return
		}
		if !matches(filepath.Base(path), include, exclude) {
			return
		}
		seen[path] = true
		entries = append(entries, FileEntry{Path: path, Size: size})
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", p, err)
		}

		if !info.IsDir() {
			add(p, info.Size())
			continue
		}

		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.Mode().IsRegular() {
				add(path, fi.Size())
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not walk %q: %w", p, err)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func matches(name string, include, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pattern := range include {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// optimizeForWorkload determines the worker count from the
// characteristics of the input files (size and count) and the CPU:
// - single vs multiple files
// - average file size
// - logical core count
func optimizeForWorkload(entries []FileEntry, override int) int {
	if len(entries) == 0 {
		return 0
	}
	if override > 0 {
		if override > len(entries) {
			return len(entries)
		}
		return override
	}

	var totalSize int64
	for _, e := range entries {
		totalSize += e.Size
	}
	avgFileSize := totalSize / int64(len(entries))

	cores := cpuid.CPU.LogicalCores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}

	var numWorkers int
	switch {
	case len(entries) == 1:
		numWorkers = 1
	case avgFileSize < 1<<20:
		numWorkers = min(8, cores)
	case avgFileSize < 10<<20:
		numWorkers = min(4, cores)
	default:
		numWorkers = min(2, cores)
	}

	if numWorkers > len(entries) {
		numWorkers = len(entries)
	}
	return numWorkers
}

// HashFiles hashes every entry and returns results in entry order.
// Per-file read errors are reported in the matching FileResult, not as
// the function error, so one unreadable file does not abort the run.
func HashFiles(entries []FileEntry, opts Options, display Displayer) ([]FileResult, error) {
	results := make([]FileResult, len(entries))

	numWorkers := optimizeForWorkload(entries, opts.Workers)
	if numWorkers == 0 {
		// nothing to hash
		if display != nil {
			display.ShowProgress(0)
			display.FinishProgress()
		}
		return results, nil
	}

	var totalBytes int64
	for _, e := range entries {
		totalBytes += e.Size
	}

	var bytesDone atomicCounter

	if display != nil {
		display.ShowProgress(totalBytes)
	}

	// progress reporter polls the shared counter so workers never touch
	// the terminal
	progressDone := make(chan struct{})
	var progressWG sync.WaitGroup
	if display != nil {
		progressWG.Add(1)
		go func() {
			defer progressWG.Done()
			ticker := time.NewTicker(200 * time.Millisecond)
			defer ticker.Stop()
			start := time.Now()
			for {
				select {
				case <-progressDone:
					display.UpdateProgress(int64(bytesDone.Load()), 0)
					return
				case <-ticker.C:
					done := int64(bytesDone.Load())
					rate := float64(done) / time.Since(start).Seconds()
					display.UpdateProgress(done, rate)
				}
			}
		}()
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, readBufSize)
			for i := range jobs {
				results[i] = hashFile(entries[i], buf, &bytesDone)
			}
		}()
	}

	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	close(progressDone)
	progressWG.Wait()
	if display != nil {
		display.FinishProgress()
	}

	return results, nil
}

// hashFile hashes a single file, counting every read byte into counter.
func hashFile(entry FileEntry, buf []byte, counter *atomicCounter) FileResult {
	result := FileResult{Path: entry.Path, Size: entry.Size}

	f, err := os.Open(entry.Path)
	if err != nil {
		result.Err = fmt.Errorf("could not open %q: %w", entry.Path, err)
		return result
	}
	defer f.Close()

	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)
	h.Reset()

	r := bufio.NewReaderSize(f, readBufSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			counter.Add(uint64(n))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Err = fmt.Errorf("could not read %q: %w", entry.Path, err)
			return result
		}
	}

	copy(result.Digest[:], h.Sum(nil))
	return result
}
