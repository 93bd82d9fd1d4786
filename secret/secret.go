package secret

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"regexp"

	"github.com/MrEthical07/goCred/fault"
)

const (
	// DefaultByteLength is the draw size used for sign secrets.
	DefaultByteLength = 16
	// SignSecretLength is the encoded length of a sign secret.
	SignSecretLength = DefaultByteLength * 2
)

var signSecretPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// Generator draws random material from an io.Reader. The zero value uses crypto/rand.
//
// A Generator holds no mutable state; one value can be shared across goroutines as long
// as its reader is safe for concurrent reads, which crypto/rand.Reader is.
type Generator struct {
	reader io.Reader
}

// NewGenerator returns a Generator reading from r. A nil r selects crypto/rand.Reader.
func NewGenerator(r io.Reader) Generator {
	return Generator{reader: r}
}

var defaultGenerator Generator

func (g Generator) source() io.Reader {
	if g.reader == nil {
		return rand.Reader
	}
	return g.reader
}

// RandomBytes returns n bytes read from the generator's source.
func (g Generator) RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fault.New(fault.InvalidInput, "secret.RandomBytes", nil)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(g.source(), buf); err != nil {
		return nil, fault.New(fault.EntropyUnavailable, "secret.RandomBytes", err)
	}
	return buf, nil
}

// GenerateSignSecret returns a fresh 32-character lower-case hex sign secret.
func (g Generator) GenerateSignSecret() (string, error) {
	raw, err := g.RandomBytes(DefaultByteLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// RandomBytes returns n bytes from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	return defaultGenerator.RandomBytes(n)
}

// GenerateSignSecret returns a fresh sign secret drawn from crypto/rand.
func GenerateSignSecret() (string, error) {
	return defaultGenerator.GenerateSignSecret()
}

// IsValidSignSecret returns nil iff s is exactly 32 hexadecimal characters, in either case.
func IsValidSignSecret(s string) error {
	if !signSecretPattern.MatchString(s) {
		return fault.New(fault.InvalidSecretFormat, "secret.IsValidSignSecret", nil)
	}
	return nil
}
