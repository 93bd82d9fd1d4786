package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrEthical07/goCred/fault"
	"github.com/MrEthical07/goCred/validate"
)

const (
	// DefaultCost matches the work factor of hashes produced by the original service.
	DefaultCost = 10
	// MinCost is the lowest accepted work factor.
	MinCost = bcrypt.MinCost
	// MaxCost is the highest accepted work factor.
	MaxCost = bcrypt.MaxCost
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

// Config defines the bcrypt work factor.
//
// Config instances are intended to be configured during initialization and then treated as immutable.
type Config struct {
	Cost int
}

// DefaultConfig returns a Config using DefaultCost.
func DefaultConfig() Config {
	return Config{Cost: DefaultCost}
}

// Hasher hashes and compares passwords with a fixed bcrypt cost.
//
// Hasher holds no mutable state and can be used concurrently.
type Hasher struct {
	config Config
}

// NewHasher validates cfg and returns a Hasher.
func NewHasher(cfg Config) (*Hasher, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Hasher{config: cfg}, nil
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int {
	return h.config.Cost
}

// Hash returns a bcrypt hash of password with a fresh random salt.
//
// Hash is CPU-bound by design; callers on latency-sensitive paths should run it on a
// worker rather than inline.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	// Password processing uses raw string bytes exactly as provided (no Unicode normalization).
	if password == "" {
		return "", fault.New(fault.InvalidInput, op, nil)
	}
	if len(password) > MaxPasswordBytes {
		return "", fault.New(fault.InvalidInput, op, bcrypt.ErrPasswordTooLong)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.config.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fault.New(fault.InvalidInput, op, err)
		}
		// GenerateFromPassword only fails otherwise when it cannot read a salt.
		return "", fault.New(fault.EntropyUnavailable, op, err)
	}
	return string(hash), nil
}

// Compare returns nil when password matches hash. The hash shape is checked before any
// bcrypt work is done.
func (h *Hasher) Compare(password, hash string) error {
	return compare(password, hash)
}

// Compare checks password against hash without a configured Hasher; the cost is read from
// the hash.
func Compare(password, hash string) error {
	return compare(password, hash)
}

func compare(password, hash string) error {
	const op = "password.Compare"
	if ok, _ := validate.BcryptHash(hash, validate.WithReject(false)); !ok {
		return fault.New(fault.InvalidHashFormat, op, nil)
	}
	if password == "" {
		return fault.New(fault.InvalidInput, op, nil)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return fault.New(fault.PasswordMismatch, op, nil)
	default:
		// Shape-valid strings can still carry an unparsable cost or salt.
		return fault.New(fault.InvalidHashFormat, op, err)
	}
}

// NeedsUpgrade reports whether hash was produced with a lower cost than the Hasher uses.
func (h *Hasher) NeedsUpgrade(hash string) (bool, error) {
	cost, err := Cost(hash)
	if err != nil {
		return false, err
	}
	return cost < h.config.Cost, nil
}

// Cost returns the work factor embedded in hash.
func Cost(hash string) (int, error) {
	const op = "password.Cost"
	if ok, _ := validate.BcryptHash(hash, validate.WithReject(false)); !ok {
		return 0, fault.New(fault.InvalidHashFormat, op, nil)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return 0, fault.New(fault.InvalidHashFormat, op, err)
	}
	return cost, nil
}

func validateConfig(cfg Config) error {
	if cfg.Cost < MinCost || cfg.Cost > MaxCost {
		return fmt.Errorf("password cost must be between %d and %d", MinCost, MaxCost)
	}
	return nil
}
