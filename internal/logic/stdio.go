package logic

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/idelchi/spha/internal/config"
	"github.com/idelchi/spha/internal/encryption"
)

// ErrTerminalOutput is returned when raw sealed bytes would be written to a terminal.
var ErrTerminalOutput = errors.New("refusing to write sealed binary data to a terminal, use --base64 or redirect output")

// RunStdio seals or opens a single stream from in to out.
// With cfg.Base64 the sealed side is base64 text.
func RunStdio(cfg *config.Config, in io.Reader, out io.Writer) error {
	if !cfg.Decrypt && !cfg.Base64 && isTerminal(out) {
		return ErrTerminalOutput
	}

	params, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("resolving parameters: %w", err)
	}

	proc, err := encryption.NewProcessor(cfg, params)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	if cfg.Decrypt {
		if cfg.Base64 {
			in = base64.NewDecoder(base64.StdEncoding, in)
		}

		if _, err := proc.Open(in, out); err != nil {
			return fmt.Errorf("opening standard input: %w", err)
		}

		return nil
	}

	if !cfg.Base64 {
		if err := proc.Seal(in, out, false); err != nil {
			return fmt.Errorf("sealing standard input: %w", err)
		}

		return nil
	}

	encoder := base64.NewEncoder(base64.StdEncoding, out)

	if err := proc.Seal(in, encoder, false); err != nil {
		return fmt.Errorf("sealing standard input: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("flushing base64 output: %w", err)
	}

	if _, err := io.WriteString(out, "\n"); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
