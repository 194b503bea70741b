// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "conduit/internal/domain/entity"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password using the
	// service's configured work factor.
	Hash(password entity.Password) (entity.PasswordHash, error)

	// Check compares a plaintext password with a hash. The comparison runs in
	// time independent of where a mismatch occurs, and a malformed hash yields
	// false rather than an error.
	Check(password entity.Password, hash entity.PasswordHash) bool
}
