// Package secret draws cryptographically secure random material and manages HMAC sign
// secrets.
//
// # Sign secret format
//
// A sign secret is 16 CSPRNG bytes rendered as 32 hexadecimal characters:
//
//	^[0-9a-fA-F]{32}$
//
// [IsValidSignSecret] is the mandatory precondition of every jwt sign and verify call.
//
// # What this package must NOT do
//
//   - Log, cache, or persist generated secrets.
//   - Fall back to a non-cryptographic source when the CSPRNG fails; such failures are
//     reported as fault.EntropyUnavailable.
package secret
