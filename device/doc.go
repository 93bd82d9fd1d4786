// Package device classifies opaque push-notification tokens by delivery platform.
//
// Classification is a pure function of the token's shape, evaluated in a fixed order:
//
//  1. an already classified [Token] returns its cached [Platform]
//  2. a nil [Candidate] fails with fault.InvalidInput
//  3. prefix "http" is WNS
//  4. "amzn" or "adm", case-insensitive, anywhere is ADM
//  5. longer than 64 bytes is GCM
//  6. exactly 64 bytes is APN
//
// Anything else fails with fault.InvalidTokenFormat. The ADM rule runs before the length
// rules so a long Amazon token is never reported as GCM.
//
// # Architecture boundaries
//
// This package is independent of the signing and hashing packages. It never contacts a
// push service; a valid classification says nothing about whether the token is live.
package device
