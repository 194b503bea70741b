// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the persisted account record, keyed by email. Exactly one record
// exists per email and per username.
type User struct {
	Email        string       // Primary identifier, also the token subject.
	Username     string       // Secondary unique identifier.
	PasswordHash PasswordHash // Opaque hashed credential, never serialized outbound.
	Bio          string       // Free text, defaults to empty.
	Image        *string      // Optional avatar URL. Nil means no avatar.
	CreatedAt    time.Time    // Timestamp of when this account was created.
	UpdatedAt    time.Time    // Timestamp of the last modification.
}
