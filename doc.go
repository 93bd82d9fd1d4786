// Package goCred bundles the credential primitives an API service needs: random material and
// sign secrets, bcrypt password hashing, HMAC-signed JSON Web Tokens, push-notification device
// tokens, and input-shape validators.
//
// The leaf packages (secret, password, jwt, device, validate) are usable on their own. This
// package wires them into a [Toolkit] built through [Builder], adding configuration, bounded
// offloading of bcrypt work, structured logging, metrics, and audit events.
//
// # Architecture boundaries
//
// goCred is the public facade. Every failure returned by it or by the leaf packages is a
// *fault.Error; the sentinels in this package alias the fault sentinels for errors.Is checks.
//
// # What this package must NOT do
//
//   - Log or audit secret material: sign secrets, plaintext passwords, hashes, or tokens.
//   - Persist anything. The toolkit is stateless apart from counters.
//   - Cancel a bcrypt job once it has started.
package goCred
