package spha

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Cipher is the capability shared by both variants.
// For a Sealer, Encrypt and Decrypt are Seal and Open.
type Cipher interface {
	Encrypt(data []byte) ([]byte, error)
	Decrypt(data []byte) ([]byte, error)
	Mode() Mode
	Params() Params
}

var (
	_ Cipher = (*Sealer)(nil)
	_ Cipher = (*Stream)(nil)
)

// New returns the cipher variant selected by mode.
// Options only affect ModeAuthenticated.
func New(params Params, mode Mode, opts ...Option) (Cipher, error) {
	switch mode {
	case ModeAuthenticated:
		return NewSealer(params, opts...)
	case ModeStream:
		return NewStream(params), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, byte(mode))
	}
}

// Option configures a Sealer.
type Option func(*options)

type options struct {
	rand  io.Reader
	suite Suite
}

func defaultOptions() options {
	return options{
		rand:  rand.Reader,
		suite: SuiteChaCha20Poly1305,
	}
}

// WithRand sets the source of nonces. The default is crypto/rand.Reader.
// The reader must be safe for concurrent use if the Sealer is shared.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

// WithSuite selects the AEAD suite. The default is SuiteChaCha20Poly1305.
func WithSuite(s Suite) Option {
	return func(o *options) {
		o.suite = s
	}
}
