// Package fileutil provides atomic file output.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// AtomicFile stages output next to its destination and renames it into
// place on Commit. Callers must defer Abort.
type AtomicFile struct {
	// Source describes the input the output is derived from.
	Source os.FileInfo

	*os.File

	dest      string
	committed bool
}

// Create stats src and opens a temporary file in the directory of dest.
func Create(src, dest string) (*AtomicFile, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".spha-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &AtomicFile{Source: info, File: tmp, dest: dest}, nil
}

// Executable reports whether any execute bit is set on the source.
func (a *AtomicFile) Executable() bool {
	return a.Source.Mode()&executableBits != 0
}

// Commit sets the output's permissions (0600, plus execute bits when
// executable), renames it to the destination and optionally copies the
// source's modification time. It returns the size of the written file.
func (a *AtomicFile) Commit(executable, preserveTimestamps bool) (int64, error) {
	perm := os.FileMode(ownerReadWrite)
	if executable {
		perm |= executableBits
	}

	if err := os.Chmod(a.Name(), perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := a.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(a.Name(), a.dest); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	a.committed = true

	if preserveTimestamps {
		modTime := a.Source.ModTime()
		if err := os.Chtimes(a.dest, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(a.dest)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", a.dest, err)
	}

	return info.Size(), nil
}

// Abort closes and removes the temporary file unless Commit succeeded.
func (a *AtomicFile) Abort() {
	a.Close() //nolint:errcheck,gosec // best-effort cleanup

	if !a.committed {
		os.Remove(a.Name()) //nolint:errcheck,gosec // best-effort cleanup
	}
}
