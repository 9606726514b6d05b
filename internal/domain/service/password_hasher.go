// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying derivation scheme, keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a self-describing salted hash record from a plaintext
	// password. Every call uses a fresh random salt.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash record. Malformed
	// records report false rather than an error; verification fails closed.
	Check(password, record string) bool
}
