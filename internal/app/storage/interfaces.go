package storage

import (
	"context"

	"microblog/internal/app/domain/account"
	"microblog/internal/app/domain/message"
)

// AccountStore persists account records. Lookups report absence through the
// boolean return rather than an error so callers can tell "not found" apart
// from a store fault.
type AccountStore interface {
	AccountExists(ctx context.Context, username string) (bool, error)
	AccountExistsByID(ctx context.Context, id int64) (bool, error)
	FindAccountByUsername(ctx context.Context, username string) (account.Account, bool, error)

	// SaveAccount inserts a new account and returns it with its assigned ID.
	// Username uniqueness is enforced here (unique index in the relational
	// schema); a duplicate insert fails as a store error.
	SaveAccount(ctx context.Context, acct account.Account) (account.Account, error)
}

// MessageStore persists message records.
type MessageStore interface {
	FindAllMessages(ctx context.Context) ([]message.Message, error)
	FindMessageByID(ctx context.Context, id int64) (message.Message, bool, error)
	MessageExistsByID(ctx context.Context, id int64) (bool, error)
	FindMessagesByPostedBy(ctx context.Context, accountID int64) ([]message.Message, error)

	// SaveMessage inserts a new message and returns it with its assigned ID.
	SaveMessage(ctx context.Context, msg message.Message) (message.Message, error)

	// UpdateMessageText replaces the text of an existing message, leaving
	// identity and author untouched.
	UpdateMessageText(ctx context.Context, id int64, text string) error

	DeleteMessageByID(ctx context.Context, id int64) error
}
