package spha

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

const (
	// KeySize is the size of a derived key in bytes.
	KeySize = 32

	// EncodedSize is the length of the canonical parameter encoding.
	EncodedSize = 6*8 + 4 + 8
)

// Key is a derived 256-bit key.
type Key [KeySize]byte

// String returns the key as lowercase hex.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Encode returns the canonical byte encoding hashed by DeriveKey:
//
//	point.x point.y point.z axis.x axis.y axis.z  (8 bytes each, IEEE-754 bits)
//	iterations                                    (4 bytes)
//	strength                                      (8 bytes, IEEE-754 bits)
//
// All values are little-endian regardless of the host.
func (p Params) Encode() [EncodedSize]byte {
	var buf [EncodedSize]byte

	floats := p.floats()

	off := 0

	for _, f := range floats[:6] {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(f))
		off += 8
	}

	binary.LittleEndian.PutUint32(buf[off:], p.iterations)
	off += 4

	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(floats[6]))

	return buf
}

// Key derives the parameter set's key. See DeriveKey.
func (p Params) Key() Key {
	return DeriveKey(p)
}

// DeriveKey hashes the canonical encoding of p with SHA-256.
// Iterations and strength are hashed once like every other field; they do
// not drive any loop.
func DeriveKey(p Params) Key {
	encoded := p.Encode()

	return sha256.Sum256(encoded[:])
}
