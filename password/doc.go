// Package password implements password hashing and verification with bcrypt.
//
// # Output format
//
// Hashes are standard modular-crypt bcrypt strings, 60 characters:
//
//	$2a$<cost>$<22-char salt><31-char hash>
//
// The [Hasher] supports transparent cost upgrades: if the stored hash was produced with a
// lower cost, [Hasher.NeedsUpgrade] returns true so the caller can re-hash on the next
// successful comparison.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password strength policy lives in
// the validate package and is applied by the caller before hashing.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords. Callers supply plaintext and receive hashes.
//   - Truncate plaintexts longer than 72 bytes; they are rejected instead.
//   - Log plaintext passwords or hashes at runtime.
package password
