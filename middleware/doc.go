// Package middleware exposes net/http adapters that authenticate bearer tokens through a
// goCred.Toolkit.
//
// # Guards
//
//   - [Guard] verifies the token and requires a valid deviceId claim (Toolkit.Authenticate).
//   - [GuardFunc] is Guard with the sign secret resolved per request.
//   - [RequireToken] verifies the token only and injects its claims.
//
// Every rejection is a bare 401; the failure kind is never revealed to the client.
//
// # What this package must NOT do
//
//   - Parse or sign tokens directly (delegates to the Toolkit).
//   - Make authorization decisions beyond pass/reject.
package middleware
