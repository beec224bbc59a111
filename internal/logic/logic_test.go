package logic_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/spha/internal/config"
	"github.com/idelchi/spha/internal/logic"
)

const referenceKey = "8c9cb8dc37ffd5760da8d280f17443935d791d0fb6f1246ec0b4a381b6e739c4"

func newConfig(files ...string) *config.Config {
	return &config.Config{
		Parallel: 2,
		Quiet:    true,
		Parameters: config.Parameters{
			Point:      "1,2,3",
			Axis:       "0,1,0",
			Iterations: 10,
			Strength:   "0.1",
		},
		Suffixes: config.Suffixes{Seal: ".sealed"},
		Files:    files,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("creating directory: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func TestRunDirectoryRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	files := map[string]string{
		filepath.Join(dir, "a.txt"):        "alpha",
		filepath.Join(dir, "sub", "b.txt"): "bravo",
	}

	for path, content := range files {
		writeFile(t, path, content)
	}

	sealCfg := newConfig(dir)
	sealCfg.Delete = true

	if err := logic.Run(sealCfg); err != nil {
		t.Fatalf("sealing: %v", err)
	}

	for path := range files {
		if exists(path) {
			t.Errorf("%s survived sealing with delete", path)
		}

		if !exists(path + ".sealed") {
			t.Errorf("%s.sealed was not written", path)
		}
	}

	openCfg := newConfig(dir)
	openCfg.Decrypt = true
	openCfg.Delete = true

	if err := logic.Run(openCfg); err != nil {
		t.Fatalf("opening: %v", err)
	}

	for path, want := range files {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}

		if string(got) != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}

		if exists(path + ".sealed") {
			t.Errorf("%s.sealed survived opening with delete", path)
		}
	}
}

func TestRunSealSkipsSealedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "already.sealed"), "not touched")

	if err := logic.Run(newConfig(dir)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if exists(filepath.Join(dir, "already.sealed.sealed")) {
		t.Error("sealed file was sealed again")
	}
}

func TestRunDry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	writeFile(t, path, "alpha")

	cfg := newConfig(path)
	cfg.Dry = true

	if err := logic.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if exists(path + ".sealed") {
		t.Error("dry run wrote output")
	}
}

func TestRunMissingPath(t *testing.T) {
	t.Parallel()

	cfg := newConfig(filepath.Join(t.TempDir(), "missing"))

	if err := logic.Run(cfg); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Run() error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestRunStdio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base64 bool
		stream bool
		suite  string
	}{
		{name: "binary"},
		{name: "base64", base64: true},
		{name: "aes-256-gcm base64", base64: true, suite: "aes-256-gcm"},
		{name: "stream", stream: true},
	}

	plaintext := "Hello, World!"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sealCfg := newConfig(logic.Stdio)
			sealCfg.Base64 = tt.base64
			sealCfg.Cipher = config.Cipher{Stream: tt.stream, Suite: tt.suite}

			var sealed bytes.Buffer
			if err := logic.RunStdio(sealCfg, strings.NewReader(plaintext), &sealed); err != nil {
				t.Fatalf("sealing: %v", err)
			}

			if tt.base64 && !strings.HasPrefix(sealed.String(), "U1BIQQ") {
				t.Errorf("base64 output %q does not start with the encoded magic", sealed.String())
			}

			openCfg := newConfig(logic.Stdio)
			openCfg.Base64 = tt.base64
			openCfg.Decrypt = true

			var opened bytes.Buffer
			if err := logic.RunStdio(openCfg, &sealed, &opened); err != nil {
				t.Fatalf("opening: %v", err)
			}

			if opened.String() != plaintext {
				t.Errorf("round trip = %q, want %q", opened.String(), plaintext)
			}
		})
	}
}

func TestRunDerive(t *testing.T) {
	t.Parallel()

	t.Run("prints key", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		if err := logic.RunDerive(newConfig(), &out); err != nil {
			t.Fatalf("RunDerive() error = %v", err)
		}

		if got := strings.TrimSpace(out.String()); got != referenceKey {
			t.Errorf("RunDerive() = %q, want %q", got, referenceKey)
		}
	})

	t.Run("prints parameters unless quiet", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig()
		cfg.Quiet = false

		var out bytes.Buffer
		if err := logic.RunDerive(cfg, &out); err != nil {
			t.Fatalf("RunDerive() error = %v", err)
		}

		want := "point=(1, 2, 3) axis=(0, 1, 0) iterations=10 strength=0.1\n" + referenceKey + "\n"
		if out.String() != want {
			t.Errorf("RunDerive() = %q, want %q", out.String(), want)
		}
	})

	t.Run("expect match", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig()
		cfg.Expect = referenceKey

		if err := logic.RunDerive(cfg, &bytes.Buffer{}); err != nil {
			t.Fatalf("RunDerive() error = %v", err)
		}
	})

	t.Run("expect mismatch", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig()
		cfg.Expect = strings.Repeat("00", 32)

		if err := logic.RunDerive(cfg, &bytes.Buffer{}); !errors.Is(err, logic.ErrKeyMismatch) {
			t.Fatalf("RunDerive() error = %v, want %v", err, logic.ErrKeyMismatch)
		}
	})

	for _, ext := range []string{".yml", ".json"} {
		t.Run("save "+ext, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "params"+ext)

			cfg := newConfig()
			cfg.Save = path

			if err := logic.RunDerive(cfg, &bytes.Buffer{}); err != nil {
				t.Fatalf("RunDerive() error = %v", err)
			}

			fromFile := newConfig()
			fromFile.Parameters = config.Parameters{File: path}

			var out bytes.Buffer
			if err := logic.RunDerive(fromFile, &out); err != nil {
				t.Fatalf("RunDerive() from saved file error = %v", err)
			}

			if got := strings.TrimSpace(out.String()); got != referenceKey {
				t.Errorf("key from saved file = %q, want %q", got, referenceKey)
			}
		})
	}
}
