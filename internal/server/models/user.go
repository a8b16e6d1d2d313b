// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is the local identity record, keyed by email.
type User struct {
	// Email is the primary key. Immutable after creation.
	Email string
	// Name is the display name.
	Name string
	// UserName is the secondary unique key. Immutable after creation.
	UserName string
	// PasswordHash is the bcrypt hash of the password. It is never equal to
	// the plaintext and never leaves the server.
	PasswordHash string
	// ExternalID is the opaque identifier assigned by the identity provider.
	// It stays nil until the provider confirms creation and is set exactly
	// once; a record without it is in the partial-creation state.
	ExternalID *string
	CreatedAt  time.Time
}
