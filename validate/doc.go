// Package validate implements shape checks for passwords, bcrypt hashes, compact JWT
// strings, and the deviceId claim.
//
// Each check accepts [WithReject]. In reject mode (the default) a failing value returns
// false with a fault error; in report mode it returns false with a nil error.
//
// These checks are structural only. [JWT] does not verify signatures and [Password] is a
// strength policy, independent of how the password package hashes.
package validate
