// Package services contains server-side business logic. This file implements
// UserService, which handles account registration (local record plus the
// provider-managed identity) and login with JWT issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/logging"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/config"
	"github.com/dmitrijs2005/authd/internal/server/hashing"
	"github.com/dmitrijs2005/authd/internal/server/identity"
	"github.com/dmitrijs2005/authd/internal/server/models"
	"github.com/dmitrijs2005/authd/internal/server/repositories/repomanager"
)

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	UserName string
	Name     string
	Token    string
}

// UserService provides the account operations:
// - Register: create the local record, then the provider identity
// - Login: verify credentials and mint a token
// - Unlinked: list records whose provider identity is still missing
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	provider              identity.Provider
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, the identity
// provider, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, p identity.Provider, l logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		provider:              p,
		logger:                l,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates an account in two sequential steps: the local record first,
// then the provider-managed identity. A provider failure after the record is
// written is reported as ErrProvider but the record is kept; Unlinked exposes
// such records for out-of-band reconciliation.
func (s *UserService) Register(ctx context.Context, email, password, name, userName string) (*models.User, error) {
	if email == "" || password == "" || name == "" || userName == "" {
		return nil, common.ErrValidation
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if _, err := repo.GetByUserName(ctx, userName); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	hash, err := hashing.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		UserName:     userName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	// The provider keeps its own credential store, so it receives the
	// plaintext password, not the local hash.
	externalID, err := s.provider.CreateIdentity(ctx, email, password, name)
	if err != nil {
		s.logger.Warn(ctx, "provider identity creation failed, record kept unlinked",
			"email", email, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrProvider, err)
	}

	if err := repo.SetExternalID(ctx, email, externalID); err != nil {
		s.logger.Warn(ctx, "provider identity created but not linked",
			"email", email, "external_id", externalID, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrProvider, err)
	}
	user.ExternalID = &externalID

	return user, nil
}

// Login verifies email and password and, on success, returns the account's
// username, display name, and a signed token. Unknown email and wrong password
// collapse into the same ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := hashing.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &LoginResult{UserName: user.UserName, Name: user.Name, Token: token}, nil
}

// Unlinked lists records still missing a provider identity.
func (s *UserService) Unlinked(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	list, err := repo.GetUnlinked(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return list, nil
}
