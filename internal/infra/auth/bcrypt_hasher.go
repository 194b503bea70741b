// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"conduit/config"
	"conduit/internal/domain/entity"
	"conduit/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// The work factor comes from configuration; bcrypt.DefaultCost applies when
// the configured value is absent or out of range.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil &&
		cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// NewBcryptHasherWithCost builds a hasher with an explicit work factor.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation; it fails only on resource
// exhaustion or an invalid cost.
func (h *bcryptHasher) Hash(password entity.Password) (entity.PasswordHash, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return entity.PasswordHash(bytes), err
}

// Check compares a plaintext password with a bcrypt hash. The comparison is
// constant-time within bcrypt, and a malformed hash yields false, never an error.
func (h *bcryptHasher) Check(password entity.Password, hash entity.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}
