package spha

import (
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// Stream is the unauthenticated variant: data is XORed with a ChaCha20
// keystream keyed by the derived key under an all-zero nonce.
//
// The keystream depends on the parameters alone. Ciphertexts carry no nonce
// and no tag, any input decrypts to something, and two messages under the
// same parameters reveal their XOR. Prefer Sealer.
type Stream struct {
	params Params
	key    Key
}

// NewStream derives the key from params.
func NewStream(params Params) *Stream {
	return &Stream{
		params: params,
		key:    params.Key(),
	}
}

// Encrypt XORs data with the keystream. The output has the same length as data.
func (s *Stream) Encrypt(data []byte) ([]byte, error) {
	var nonce [chacha20.NonceSize]byte

	keystream, err := chacha20.NewUnauthenticatedCipher(s.key[:], nonce[:])
	if err != nil {
		return nil, fmt.Errorf("creating keystream: %w", err)
	}

	out := make([]byte, len(data))
	keystream.XORKeyStream(out, data)

	return out, nil
}

// Decrypt regenerates the keystream and XORs again.
func (s *Stream) Decrypt(data []byte) ([]byte, error) {
	return s.Encrypt(data)
}

// Mode returns ModeStream.
func (s *Stream) Mode() Mode { return ModeStream }

// Params returns the parameter set the key was derived from.
func (s *Stream) Params() Params { return s.params }
