package encryption

import "errors"

var (
	// ErrEnvelope is returned when a sealed file's envelope header is missing or invalid.
	ErrEnvelope = errors.New("invalid envelope")
	// ErrVariant is returned when no cipher is available for the requested variant.
	ErrVariant = errors.New("unsupported cipher variant")
)
