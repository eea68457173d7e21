// Package messages implements validation, creation, retrieval, update and
// deletion of messages over the message store.
package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"microblog/internal/app/domain/message"
	"microblog/internal/app/storage"
	"microblog/pkg/logger"
)

// MaxTextLength is the exclusive upper bound on message text length.
// Counting is in Unicode code points; see IsValidText.
const MaxTextLength = 255

// ErrInvalidMessage indicates a message operation failed a business rule:
// blank or over-long text, an author that does not exist, or an update of a
// message that does not exist.
var ErrInvalidMessage = errors.New("invalid message")

// Service manages messages. Creation checks the author against the account
// store; that is the only cross-component read.
type Service struct {
	accounts storage.AccountStore
	store    storage.MessageStore
	log      *logger.Logger
}

// New constructs a message service.
func New(accounts storage.AccountStore, store storage.MessageStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("messages")
	}
	return &Service{accounts: accounts, store: store, log: log}
}

// IsValidText reports whether text is non-blank and strictly shorter than
// MaxTextLength. Length is counted in Unicode code points, which matches the
// Java String.length semantics of the original data for all BMP text; a
// 254-rune text is valid, a 255-rune text is not.
func IsValidText(text string) bool {
	return strings.TrimSpace(text) != "" && utf8.RuneCountInString(text) < MaxTextLength
}

// Create validates and persists a new message, returning it with its
// assigned ID. The author must exist at creation time; referential integrity
// is not re-checked afterwards.
func (s *Service) Create(ctx context.Context, msg message.Message) (message.Message, error) {
	if !IsValidText(msg.MessageText) {
		return message.Message{}, fmt.Errorf("%w: text must be non-blank and under %d characters", ErrInvalidMessage, MaxTextLength)
	}

	exists, err := s.accounts.AccountExistsByID(ctx, msg.PostedBy)
	if err != nil {
		return message.Message{}, err
	}
	if !exists {
		return message.Message{}, fmt.Errorf("%w: account %d does not exist", ErrInvalidMessage, msg.PostedBy)
	}

	saved, err := s.store.SaveMessage(ctx, msg)
	if err != nil {
		return message.Message{}, err
	}
	s.log.Infof("message %d created by account %d", saved.ID, saved.PostedBy)
	return saved, nil
}

// GetByID returns the message and true if present, false otherwise. Absence
// is not an error.
func (s *Service) GetByID(ctx context.Context, id int64) (message.Message, bool, error) {
	return s.store.FindMessageByID(ctx, id)
}

// ListAll returns every stored message.
func (s *Service) ListAll(ctx context.Context) ([]message.Message, error) {
	return s.store.FindAllMessages(ctx)
}

// ListByAccount returns the messages posted by the given account. The result
// is empty when the account has no messages or does not exist; neither case
// is an error.
func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]message.Message, error) {
	return s.store.FindMessagesByPostedBy(ctx, accountID)
}

// Update replaces the text of an existing message, leaving identity and
// author unchanged. Repeating the call with the same valid text succeeds.
func (s *Service) Update(ctx context.Context, id int64, text string) error {
	if !IsValidText(text) {
		return fmt.Errorf("%w: text must be non-blank and under %d characters", ErrInvalidMessage, MaxTextLength)
	}

	exists, err := s.store.MessageExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: message %d does not exist", ErrInvalidMessage, id)
	}

	if err := s.store.UpdateMessageText(ctx, id, text); err != nil {
		return err
	}
	s.log.Infof("message %d updated", id)
	return nil
}

// DeleteByID removes the message and returns true if it existed, false
// otherwise. A second delete of the same id returns false.
func (s *Service) DeleteByID(ctx context.Context, id int64) (bool, error) {
	exists, err := s.store.MessageExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.store.DeleteMessageByID(ctx, id); err != nil {
		return false, err
	}
	s.log.Infof("message %d deleted", id)
	return true, nil
}
