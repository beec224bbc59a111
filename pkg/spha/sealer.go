package spha

import (
	"crypto/cipher"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/tink-crypto/tink-go/v2/tink"
)

const (
	// NonceSize is the size of the nonce prefixed to every sealed payload.
	NonceSize = 12
	// TagSize is the size of the authentication tag appended to every sealed payload.
	TagSize = 16
)

// Sealer is the authenticated variant.
// It holds no mutable state and may be shared between goroutines.
type Sealer struct {
	params Params
	suite  Suite
	rand   io.Reader

	// exactly one of aead or tink is set, depending on suite
	aead cipher.AEAD
	tink tink.AEAD
}

// NewSealer derives the key from params once and prepares the AEAD.
func NewSealer(params Params, opts ...Option) (*Sealer, error) {
	o := defaultOptions()

	for _, opt := range opts {
		opt(&o)
	}

	key := params.Key()

	sealer := &Sealer{
		params: params,
		suite:  o.suite,
		rand:   o.rand,
	}

	switch o.suite {
	case SuiteChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key[:])
		if err != nil {
			return nil, fmt.Errorf("creating ChaCha20-Poly1305: %w", err)
		}

		sealer.aead = aead
	case SuiteAES256GCM:
		primitive, err := newAESGCM(key)
		if err != nil {
			return nil, err
		}

		sealer.tink = primitive
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSuite, byte(o.suite))
	}

	return sealer, nil
}

// Seal encrypts plaintext under a fresh random nonce and returns
// nonce ‖ ciphertext ‖ tag. The only possible error wraps ErrEntropy.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	if s.tink != nil {
		payload, err := s.tink.Encrypt(plaintext, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEntropy, err)
		}

		return payload, nil
	}

	payload := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	if _, err := io.ReadFull(s.rand, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropy, err)
	}

	return s.aead.Seal(payload, payload[:NonceSize], plaintext, nil), nil
}

// Open verifies and decrypts a payload produced by Seal.
// It fails with ErrMalformedPayload when the payload is shorter than a nonce
// and with ErrAuthenticationFailed when the tag does not verify.
// No plaintext is returned on failure.
func (s *Sealer) Open(payload []byte) ([]byte, error) {
	if len(payload) < NonceSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedPayload, len(payload), NonceSize)
	}

	var (
		plaintext []byte
		err       error
	)

	if s.tink != nil {
		plaintext, err = s.tink.Decrypt(payload, nil)
	} else {
		plaintext, err = s.aead.Open(nil, payload[:NonceSize], payload[NonceSize:], nil)
	}

	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}

// Encrypt is Seal.
func (s *Sealer) Encrypt(data []byte) ([]byte, error) { return s.Seal(data) }

// Decrypt is Open.
func (s *Sealer) Decrypt(data []byte) ([]byte, error) { return s.Open(data) }

// Mode returns ModeAuthenticated.
func (s *Sealer) Mode() Mode { return ModeAuthenticated }

// Suite returns the AEAD suite in use.
func (s *Sealer) Suite() Suite { return s.suite }

// Params returns the parameter set the key was derived from.
func (s *Sealer) Params() Params { return s.params }

// Overhead returns how many bytes Seal adds to a plaintext.
func (s *Sealer) Overhead() int { return NonceSize + TagSize }
