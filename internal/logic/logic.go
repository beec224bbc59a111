// Package logic implements the sealing, opening and derivation workflows.
package logic

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/spha/internal/config"
	"github.com/idelchi/spha/internal/encryption"
)

// Stdio is the positional argument that selects standard input and output.
const Stdio = "-"

// Run seals or opens the files named in cfg.
func Run(cfg *config.Config) error {
	if len(cfg.Files) == 1 && cfg.Files[0] == Stdio {
		return RunStdio(cfg, os.Stdin, os.Stdout)
	}

	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.Dry {
		dryRun(cfg, scanned, excluded, start)

		return nil
	}

	params, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("resolving parameters: %w", err)
	}

	proc, err := encryption.NewProcessor(cfg, params)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// resolveFiles expands directories and keeps the files the current command
// applies to: opening takes only sealed files, sealing skips them.
// Returns the total number of files scanned before selection.
func resolveFiles(cfg *config.Config) (int, error) {
	candidates, err := collectFiles(cfg.Files)
	if err != nil {
		return 0, err
	}

	files := make([]string, 0, len(candidates))

	for _, file := range candidates {
		if strings.HasPrefix(filepath.Base(file), ".spha-") {
			continue
		}

		if strings.HasSuffix(file, cfg.Suffixes.Seal) == cfg.Decrypt {
			files = append(files, file)
		}
	}

	cfg.Files = files

	return len(candidates), nil
}

// collectFiles walks all positional args and returns every file path found.
func collectFiles(args []string) ([]string, error) {
	var paths []string

	seen := make(map[string]struct{})

	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; !ok {
			seen[clean] = struct{}{}
			paths = append(paths, clean)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.Type().IsRegular() {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	return paths, nil
}

// dryRun previews what would be processed without sealing or opening anything.
func dryRun(cfg *config.Config, scanned, excluded int, start time.Time) {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Processed %q -> %q\n", file, encryption.OutputPath(file, cfg)) //nolint:forbidigo
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, excluded, len(cfg.Files), 0, totalSize, time.Since(start))
	}
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
