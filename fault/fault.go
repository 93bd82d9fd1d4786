package fault

import (
	"errors"
	"strings"
)

// Kind classifies a goCred failure.
type Kind uint8

const (
	// Unknown is the kind reported for errors that did not originate in goCred.
	Unknown Kind = iota
	// InvalidInput reports an absent or empty required argument.
	InvalidInput
	// FormatMismatch reports a present value that fails a shape check.
	FormatMismatch
	// InvalidSecretFormat reports a sign secret that is not 32 hexadecimal characters.
	InvalidSecretFormat
	// SignatureInvalid reports a token whose signature does not match the secret.
	SignatureInvalid
	// TokenExpired reports a token whose exp claim has lapsed.
	TokenExpired
	// ClaimConstraintViolation reports any other configured claim or algorithm constraint failure.
	ClaimConstraintViolation
	// MalformedToken reports a token that cannot be split or decoded.
	MalformedToken
	// PasswordMismatch reports a plaintext that does not match a stored hash.
	PasswordMismatch
	// InvalidHashFormat reports a stored hash that is not bcrypt shaped.
	InvalidHashFormat
	// InvalidTokenFormat reports a push token that matches no known platform.
	InvalidTokenFormat
	// MissingOrInvalidDeviceID reports an absent or non-UUID deviceId claim.
	MissingOrInvalidDeviceID
	// EntropyUnavailable reports a CSPRNG read failure. It is the only fatal kind.
	EntropyUnavailable
)

var kindNames = [...]string{
	Unknown:                  "unknown",
	InvalidInput:             "invalid input",
	FormatMismatch:           "format mismatch",
	InvalidSecretFormat:      "invalid secret format",
	SignatureInvalid:         "signature invalid",
	TokenExpired:             "token expired",
	ClaimConstraintViolation: "claim constraint violation",
	MalformedToken:           "malformed token",
	PasswordMismatch:         "password mismatch",
	InvalidHashFormat:        "invalid hash format",
	InvalidTokenFormat:       "invalid token format",
	MissingOrInvalidDeviceID: "missing or invalid device id",
	EntropyUnavailable:       "entropy unavailable",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[Unknown]
}

// Fatal reports whether callers should treat the kind as non-recoverable.
func (k Kind) Fatal() bool {
	return k == EntropyUnavailable
}

// Error is the typed failure returned by goCred operations.
type Error struct {
	Kind Kind
	// Op names the failing operation, e.g. "jwt.Verify". Optional.
	Op string
	// Err is the underlying cause, if any. It is never secret material.
	Err error
}

// New returns an *Error of kind k raised by op, wrapping cause.
func New(k Kind, op string, cause error) *Error {
	return &Error{Kind: k, Op: op, Err: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error of the same kind, so the package sentinels work with errors.Is
// regardless of Op and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels, one per kind, for use with errors.Is.
var (
	ErrInvalidInput             = &Error{Kind: InvalidInput}
	ErrFormatMismatch           = &Error{Kind: FormatMismatch}
	ErrInvalidSecretFormat      = &Error{Kind: InvalidSecretFormat}
	ErrSignatureInvalid         = &Error{Kind: SignatureInvalid}
	ErrTokenExpired             = &Error{Kind: TokenExpired}
	ErrClaimConstraintViolation = &Error{Kind: ClaimConstraintViolation}
	ErrMalformedToken           = &Error{Kind: MalformedToken}
	ErrPasswordMismatch         = &Error{Kind: PasswordMismatch}
	ErrInvalidHashFormat        = &Error{Kind: InvalidHashFormat}
	ErrInvalidTokenFormat       = &Error{Kind: InvalidTokenFormat}
	ErrMissingOrInvalidDeviceID = &Error{Kind: MissingOrInvalidDeviceID}
	ErrEntropyUnavailable       = &Error{Kind: EntropyUnavailable}
)

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) && fe != nil {
		return fe.Kind
	}
	return Unknown
}

// IsFatal reports whether err carries a fatal kind.
func IsFatal(err error) bool {
	return KindOf(err).Fatal()
}
