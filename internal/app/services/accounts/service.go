// Package accounts implements account registration and credential
// authentication over the account store.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"microblog/internal/app/domain/account"
	"microblog/internal/app/storage"
	"microblog/pkg/logger"
)

// MinPasswordLength is the minimum accepted password length in characters.
const MinPasswordLength = 4

// ErrInvalidRegistration indicates the candidate account failed a
// registration rule.
var ErrInvalidRegistration = errors.New("invalid registration")

// ErrUnauthenticated indicates a credential mismatch. It is deliberately the
// same value whether the username is unknown or the password is wrong.
var ErrUnauthenticated = errors.New("invalid username or password")

// Service manages account registration and login.
type Service struct {
	store storage.AccountStore
	log   *logger.Logger
}

// New constructs an account service.
func New(store storage.AccountStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("accounts")
	}
	return &Service{store: store, log: log}
}

// ExistsByUsername reports whether an account with the given username is
// stored. No side effects.
func (s *Service) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.store.AccountExists(ctx, username)
}

// Register validates and persists a new account, returning it with its
// assigned ID. It does not check for duplicate usernames itself: callers are
// expected to pre-check with ExistsByUsername, and the store's unique index
// rejects whatever races past that check.
func (s *Service) Register(ctx context.Context, candidate account.Account) (account.Account, error) {
	if strings.TrimSpace(candidate.Username) == "" {
		return account.Account{}, fmt.Errorf("%w: username must not be blank", ErrInvalidRegistration)
	}
	if utf8.RuneCountInString(candidate.Password) < MinPasswordLength {
		return account.Account{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRegistration, MinPasswordLength)
	}

	saved, err := s.store.SaveAccount(ctx, candidate)
	if err != nil {
		return account.Account{}, err
	}
	s.log.Infof("account %d registered", saved.ID)
	return saved, nil
}

// Authenticate looks the candidate up by username and succeeds only on an
// exact password match. Comparison is case-sensitive and unhashed, matching
// the stored data format.
func (s *Service) Authenticate(ctx context.Context, candidate account.Account) (account.Account, error) {
	stored, found, err := s.store.FindAccountByUsername(ctx, candidate.Username)
	if err != nil {
		return account.Account{}, err
	}
	if !found || stored.Password != candidate.Password {
		return account.Account{}, ErrUnauthenticated
	}
	return stored, nil
}
