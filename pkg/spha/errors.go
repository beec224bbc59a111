package spha

import "errors"

var (
	// ErrMalformedPayload is returned when a sealed payload is too short to hold a nonce.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrAuthenticationFailed is returned when a payload does not verify, either because
	// it was altered or because it was sealed under different parameters.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrEntropy is returned when the random source cannot supply a nonce.
	ErrEntropy = errors.New("reading random source")
	// ErrUnknownMode is returned for an unrecognized cipher mode.
	ErrUnknownMode = errors.New("unknown cipher mode")
	// ErrUnknownSuite is returned for an unrecognized AEAD suite.
	ErrUnknownSuite = errors.New("unknown AEAD suite")
	// ErrMalformedParams is returned when a serialized parameter set cannot be decoded.
	ErrMalformedParams = errors.New("malformed parameter set")
)
