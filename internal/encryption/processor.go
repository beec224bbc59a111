package encryption

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/spha/internal/config"
	"github.com/idelchi/spha/internal/fileutil"
	"github.com/idelchi/spha/pkg/spha"
)

// Processor seals or opens files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// sealWith is the variant new envelopes are written with
	sealWith variant

	// ciphers holds one cipher per variant this processor may need;
	// read-only after construction
	ciphers map[variant]spha.Cipher

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor derives the ciphers for params.
// When opening, a cipher for every known variant is prepared since each file
// names its own; when sealing, only the configured one.
func NewProcessor(cfg *config.Config, params spha.Params) (*Processor, error) {
	processor := &Processor{
		cfg:     cfg,
		ciphers: make(map[variant]spha.Cipher, len(knownVariants)),
		results: make(chan Result, len(cfg.Files)),
	}

	wanted := knownVariants

	if !cfg.Decrypt {
		suite, err := cfg.Suite()
		if err != nil {
			return nil, fmt.Errorf("selecting suite: %w", err)
		}

		processor.sealWith = variant{mode: cfg.Mode(), suite: suite}
		if processor.sealWith.mode == spha.ModeStream {
			processor.sealWith.suite = 0
		}

		wanted = []variant{processor.sealWith}
	}

	for _, v := range wanted {
		c, err := spha.New(params, v.mode, spha.WithSuite(v.suite))
		if err != nil {
			return nil, fmt.Errorf("creating %s cipher: %w", v, err)
		}

		processor.ciphers[v] = c
	}

	return processor, nil
}

// ProcessFiles concurrently processes all files in the configuration.
// It returns the number of successfully processed files, the number of
// failures and the total size of the outputs.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			processed++

			totalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
			}

			if p.cfg.Delete {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// Seal reads all of r, seals it and writes envelope and payload to w.
func (p *Processor) Seal(r io.Reader, w io.Writer, executable bool) error {
	c, ok := p.ciphers[p.sealWith]
	if !ok {
		return fmt.Errorf("%w: %s", ErrVariant, p.sealWith)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	payload, err := c.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("sealing: %w", err)
	}

	if _, err := w.Write(newEnvelopeHeader(p.sealWith, executable)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}

	return nil
}

// Open reads an envelope from r, opens its payload with the variant the
// envelope names and writes the plaintext to w.
// It reports whether the sealed file was executable.
func (p *Processor) Open(r io.Reader, w io.Writer) (bool, error) {
	header := make([]byte, envelopeHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return false, fmt.Errorf("%w: reading header: %w", ErrEnvelope, err)
	}

	v, executable, err := parseEnvelopeHeader(header)
	if err != nil {
		return false, err
	}

	c, ok := p.ciphers[v]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrVariant, v)
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return false, fmt.Errorf("reading payload: %w", err)
	}

	plaintext, err := c.Decrypt(payload)
	if err != nil {
		return false, fmt.Errorf("opening: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return false, fmt.Errorf("writing plaintext: %w", err)
	}

	return executable, nil
}

// processFile seals or opens a single file into a temporary file and
// renames it to outPath on success.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	out, err := fileutil.Create(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer out.Abort()

	in, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer in.Close()

	executable := out.Executable()

	if p.cfg.Decrypt {
		if executable, err = p.Open(in, out); err != nil {
			return 0, fmt.Errorf("opening file: %w", err)
		}
	} else if err := p.Seal(in, out, executable); err != nil {
		return 0, fmt.Errorf("sealing file: %w", err)
	}

	if err := in.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	return out.Commit(executable, p.cfg.PreserveTimestamps)
}

// OutputPath returns where the output for filename is written.
// Sealing appends the seal suffix; opening strips it and appends the open suffix.
func OutputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Seal

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Seal)
		ext = cfg.Suffixes.Open
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}
