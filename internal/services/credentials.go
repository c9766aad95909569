package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/dmitrijs2005/docqa/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docqa/internal/secrets"
)

// CredentialStore creates accounts and checks secrets through the
// configured secrets.Codec.
type CredentialStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       secrets.Codec
	log         logging.Logger
}

func NewCredentialStore(db *sql.DB, m repomanager.RepositoryManager, codec secrets.Codec, log logging.Logger) *CredentialStore {
	return &CredentialStore{
		db:          db,
		repomanager: m,
		codec:       codec,
		log:         log.With("component", "credentials"),
	}
}

// CreateAccount stores identity with its encoded secret. A duplicate
// identity yields common.ErrorAlreadyExists and leaves the existing account
// untouched; uniqueness is left to the store's primary key.
func (s *CredentialStore) CreateAccount(ctx context.Context, identity, secret string) error {
	encoded, err := s.codec.Encode([]byte(secret))
	if err != nil {
		return fmt.Errorf("encode secret: %w", err)
	}

	err = s.repomanager.Users(s.db).Create(ctx, &models.User{Identity: identity, Secret: encoded})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		return storeErr(fmt.Errorf("error creating user: %w", err))
	}

	s.log.Info(ctx, "account created", "identity", identity)
	return nil
}

// Verify reports whether identity exists and secret matches what was
// supplied at signup.
func (s *CredentialStore) Verify(ctx context.Context, identity, secret string) (bool, error) {
	user, err := s.repomanager.Users(s.db).GetByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, storeErr(fmt.Errorf("error loading user: %w", err))
	}

	ok, err := s.codec.Verify(user.Secret, []byte(secret))
	if err != nil {
		s.log.Error(ctx, "stored secret unreadable", "identity", identity, "error", err)
		return false, err
	}
	return ok, nil
}

// Exists reports whether identity has an account.
func (s *CredentialStore) Exists(ctx context.Context, identity string) (bool, error) {
	ok, err := s.repomanager.Users(s.db).Exists(ctx, identity)
	if err != nil {
		return false, storeErr(fmt.Errorf("error checking user: %w", err))
	}
	return ok, nil
}

// EndSession acknowledges a logout. No session state exists to discard.
func (s *CredentialStore) EndSession(identity string) string {
	return fmt.Sprintf(common.MessageLogout, identity)
}
