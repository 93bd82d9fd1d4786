// Package jwt decodes, verifies, and issues HMAC-signed compact JWTs keyed by goCred sign
// secrets.
//
// [Decode] is unauthenticated introspection: it never needs a secret and its output must
// not drive trust decisions. [Codec.Verify] and [Codec.Sign] check the secret format with
// secret.IsValidSignSecret before any cryptography runs.
//
// # Payload unwrapping
//
// Earlier revisions of the service accepted an envelope object carrying the compact token
// in a "payload" field, and later revisions dropped that. Both behaviours are supported,
// but only explicitly: [VerifyOptions.UnwrapPayload] is off by default.
package jwt
