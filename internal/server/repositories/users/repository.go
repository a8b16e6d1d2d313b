// Package users provides the user-record store: one row per account, keyed
// by email, with a secondary unique lookup by username.
package users

import (
	"context"

	"github.com/dmitrijs2005/authd/internal/server/models"
)

// Repository is the persistence contract for user records.
type Repository interface {
	// GetByEmail returns the record keyed by email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByUserName returns the record holding the username, or
	// common.ErrorNotFound. At most one row is expected.
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	// Create inserts a new record. The email primary key makes a concurrent
	// duplicate insert fail at the store.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// SetExternalID links the provider identity to the record. Called exactly
	// once, after the provider confirms creation.
	SetExternalID(ctx context.Context, email string, externalID string) error
	// GetUnlinked lists records still missing a provider identity, the
	// input for out-of-band reconciliation.
	GetUnlinked(ctx context.Context) ([]*models.User, error)
}
