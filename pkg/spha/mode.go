package spha

import (
	"fmt"
	"strings"
)

// Mode selects the cipher variant.
type Mode byte

const (
	// ModeAuthenticated seals payloads with an AEAD and a fresh nonce. It is the default.
	ModeAuthenticated Mode = iota + 1
	// ModeStream XORs data with a keystream seeded by the derived key.
	// It provides no integrity and must not be reused across messages.
	ModeStream
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuthenticated:
		return "authenticated"
	case ModeStream:
		return "stream"
	default:
		return fmt.Sprintf("mode(%d)", byte(m))
	}
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "authenticated", "aead":
		return ModeAuthenticated, nil
	case "stream":
		return ModeStream, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Suite selects the AEAD construction used by a Sealer.
// Every suite takes a 256-bit key, a 96-bit nonce and appends a 128-bit tag.
type Suite byte

const (
	// SuiteChaCha20Poly1305 is the default suite.
	SuiteChaCha20Poly1305 Suite = iota + 1
	// SuiteAES256GCM uses AES-256-GCM through a Tink keyset.
	// Tink draws its own nonces, so WithRand does not apply to it.
	SuiteAES256GCM
)

// String returns the suite name.
func (s Suite) String() string {
	switch s {
	case SuiteChaCha20Poly1305:
		return "chacha20-poly1305"
	case SuiteAES256GCM:
		return "aes-256-gcm"
	default:
		return fmt.Sprintf("suite(%d)", byte(s))
	}
}

// ParseSuite parses a suite name as produced by Suite.String.
func ParseSuite(name string) (Suite, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "chacha20-poly1305", "chacha20poly1305":
		return SuiteChaCha20Poly1305, nil
	case "aes-256-gcm", "aes256gcm":
		return SuiteAES256GCM, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSuite, name)
	}
}
