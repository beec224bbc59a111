package encryption

import (
	"bytes"
	"fmt"

	"github.com/idelchi/spha/pkg/spha"
)

// Envelope layout:
//
//	magic "SPHA" | version | flags | mode | suite | payload...
//
// The payload is exactly what the library's Encrypt returns.
const (
	envelopeMagic   = "SPHA"
	envelopeVersion = byte(1)

	envelopeFlagExec = 0x01

	envelopeHeaderSize = len(envelopeMagic) + 4
)

// variant identifies a cipher configuration. Stream ciphers carry suite 0.
type variant struct {
	mode  spha.Mode
	suite spha.Suite
}

func (v variant) String() string {
	if v.mode == spha.ModeStream {
		return v.mode.String()
	}

	return v.mode.String() + "/" + v.suite.String()
}

//nolint:gochecknoglobals
var knownVariants = []variant{
	{mode: spha.ModeAuthenticated, suite: spha.SuiteChaCha20Poly1305},
	{mode: spha.ModeAuthenticated, suite: spha.SuiteAES256GCM},
	{mode: spha.ModeStream},
}

func newEnvelopeHeader(v variant, executable bool) []byte {
	header := make([]byte, envelopeHeaderSize)
	copy(header, envelopeMagic)

	header[len(envelopeMagic)] = envelopeVersion

	var flags byte

	if executable {
		flags |= envelopeFlagExec
	}

	header[len(envelopeMagic)+1] = flags
	header[len(envelopeMagic)+2] = byte(v.mode)
	header[len(envelopeMagic)+3] = byte(v.suite)

	return header
}

func parseEnvelopeHeader(header []byte) (variant, bool, error) {
	if len(header) != envelopeHeaderSize {
		return variant{}, false, fmt.Errorf("%w: header too short", ErrEnvelope)
	}

	if !bytes.Equal(header[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return variant{}, false, fmt.Errorf("%w: bad magic", ErrEnvelope)
	}

	if version := header[len(envelopeMagic)]; version != envelopeVersion {
		return variant{}, false, fmt.Errorf("%w: unsupported version %d", ErrEnvelope, version)
	}

	flags := header[len(envelopeMagic)+1]
	v := variant{
		mode:  spha.Mode(header[len(envelopeMagic)+2]),
		suite: spha.Suite(header[len(envelopeMagic)+3]),
	}

	for _, known := range knownVariants {
		if v == known {
			return v, flags&envelopeFlagExec != 0, nil
		}
	}

	return variant{}, false, fmt.Errorf("%w: mode %d suite %d", ErrEnvelope, v.mode, v.suite)
}
