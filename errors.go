package goCred

import (
	"github.com/MrEthical07/goCred/fault"
	"github.com/MrEthical07/goCred/internal/worker"
)

var (
	// ErrInvalidInput reports an absent or empty required argument.
	ErrInvalidInput = fault.ErrInvalidInput
	// ErrFormatMismatch reports a value rejected by a shape validator.
	ErrFormatMismatch = fault.ErrFormatMismatch
	// ErrInvalidSecretFormat reports a sign secret that is not 32 hexadecimal characters.
	ErrInvalidSecretFormat = fault.ErrInvalidSecretFormat
	// ErrSignatureInvalid reports a token signed with a different secret or tampered with.
	ErrSignatureInvalid = fault.ErrSignatureInvalid
	// ErrTokenExpired reports a token past its exp claim, or older than the configured max age.
	ErrTokenExpired = fault.ErrTokenExpired
	// ErrClaimConstraintViolation reports a failed issuer, audience, subject, nbf, iat, or algorithm check.
	ErrClaimConstraintViolation = fault.ErrClaimConstraintViolation
	// ErrMalformedToken reports a token that is not three decodable segments.
	ErrMalformedToken = fault.ErrMalformedToken
	// ErrPasswordMismatch reports a plaintext that does not match the stored hash.
	ErrPasswordMismatch = fault.ErrPasswordMismatch
	// ErrInvalidHashFormat reports a stored hash that is not a bcrypt hash.
	ErrInvalidHashFormat = fault.ErrInvalidHashFormat
	// ErrInvalidTokenFormat reports a device token that matches no platform.
	ErrInvalidTokenFormat = fault.ErrInvalidTokenFormat
	// ErrMissingOrInvalidDeviceID reports verified claims without a canonical UUID deviceId.
	ErrMissingOrInvalidDeviceID = fault.ErrMissingOrInvalidDeviceID
	// ErrEntropyUnavailable reports a failed read from the system CSPRNG. Treat it as fatal.
	ErrEntropyUnavailable = fault.ErrEntropyUnavailable
)

// IsFatal reports whether err must stop the caller rather than be handled per request.
func IsFatal(err error) bool {
	return fault.IsFatal(err)
}

// ErrClosed is returned by the password and async token methods after Toolkit.Close.
var ErrClosed = worker.ErrClosed
