// Package fault defines the single error-kind enumeration shared by every goCred package.
//
// Every failure returned by secret, password, jwt, device, and validate is a [*Error]
// carrying one [Kind]. Callers branch on the kind with [errors.Is] against the exported
// sentinels or with [KindOf]; no caller needs to parse messages.
//
// # Architecture boundaries
//
// This package is a leaf. It owns the taxonomy only; mapping kinds to HTTP statuses or
// other transport representations belongs to the caller.
//
// # What this package must NOT do
//
//   - Import any other goCred package.
//   - Carry secret material, plaintext passwords, or raw tokens in error messages.
package fault
