// Package spha derives a reproducible 256-bit key from a set of spatial
// parameters (a point, an axis, an iteration count and a strength) and uses
// it to seal and open byte payloads.
//
// Two cipher variants share the Cipher interface:
//   - Sealer: authenticated encryption. Payloads are nonce ‖ ciphertext ‖ tag
//     with a fresh 12-byte nonce per call.
//   - Stream: a keystream XOR with no nonce and no integrity protection.
//     Two messages under the same parameters form a two-time pad. It exists
//     for compatibility only.
//
// Key derivation is a single SHA-256 pass over the little-endian bit patterns
// of the parameters; see Params.Encode for the exact layout.
package spha
