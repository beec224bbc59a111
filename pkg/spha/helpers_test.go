package spha_test

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/spha/pkg/spha"
)

// Vector is a known-answer case from testdata/vectors.yml.
type Vector struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Params      spha.Params  `yaml:"params"`
	Encoding    string       `yaml:"encoding"`
	Key         string       `yaml:"key"`
	Stream      []StreamCase `yaml:"stream,omitempty"`
	Sealed      []SealedCase `yaml:"sealed,omitempty"`
}

// StreamCase pins the stream variant's output.
type StreamCase struct {
	Plaintext  string `yaml:"plaintext"`
	Ciphertext string `yaml:"ciphertext"`
}

// SealedCase pins a ChaCha20-Poly1305 payload for a fixed nonce.
type SealedCase struct {
	Plaintext string `yaml:"plaintext"`
	Nonce     string `yaml:"nonce"`
	Payload   string `yaml:"payload"`
}

func loadVectors(t *testing.T) []Vector {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "vectors.yml"))
	if err != nil {
		t.Fatalf("reading vectors: %v", err)
	}

	var vectors []Vector
	if err := yaml.Unmarshal(data, &vectors); err != nil {
		t.Fatalf("parsing vectors: %v", err)
	}

	if len(vectors) == 0 {
		t.Fatal("no vectors found")
	}

	return vectors
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decoding hex %q: %v", s, err)
	}

	return b
}

func referenceParams() spha.Params {
	return spha.NewParams(
		spha.Point{X: 1.0, Y: 2.0, Z: 3.0},
		spha.Axis{X: 0.0, Y: 1.0, Z: 0.0},
		10,
		0.1,
	)
}

// countingReader yields 0, 1, 2, ... so nonces are predictable.
type countingReader struct{ b byte }

func (r *countingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
		r.b++
	}

	return len(p), nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy pool drained")
}
