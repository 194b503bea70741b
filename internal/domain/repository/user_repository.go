// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"conduit/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when an account is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Implementations translate store-level unique-constraint violations into
// domain errors; uniqueness under concurrent inserts is enforced by the
// database constraint, never by application-level locking.
type UserRepository interface {
	// FindByEmail retrieves a single account by its email address.
	// Returns ErrUserNotFound when no record exists; absence is not a fault.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new account. Fails with the domain's account-exists
	// error if the email or username is already taken.
	Create(ctx context.Context, user *entity.User) error

	// Update rewrites the account row currently keyed by email with the
	// staged field values, including a possible change of the email key
	// itself. Returns ErrUserNotFound if the target row no longer exists.
	Update(ctx context.Context, email string, user *entity.User) error
}
