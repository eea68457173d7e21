package postgres

import (
	"context"
	"database/sql"
	"errors"

	"microblog/internal/app/domain/account"
	"microblog/internal/app/domain/message"
	"microblog/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.AccountStore = (*Store)(nil)
var _ storage.MessageStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- AccountStore -----------------------------------------------------------

func (s *Store) AccountExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM account WHERE username = $1)
	`, username).Scan(&exists)
	return exists, err
}

func (s *Store) AccountExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM account WHERE account_id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (s *Store) FindAccountByUsername(ctx context.Context, username string) (account.Account, bool, error) {
	var acct account.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1
	`, username).Scan(&acct.ID, &acct.Username, &acct.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return account.Account{}, false, nil
	}
	if err != nil {
		return account.Account{}, false, err
	}
	return acct, true, nil
}

func (s *Store) SaveAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	// The unique index on username makes a duplicate insert fail here even
	// when two registrations race past the dispatcher's pre-check.
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id
	`, acct.Username, acct.Password).Scan(&acct.ID)
	if err != nil {
		return account.Account{}, err
	}
	return acct, nil
}

// --- MessageStore -----------------------------------------------------------

func (s *Store) FindAllMessages(ctx context.Context) ([]message.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		ORDER BY message_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (s *Store) FindMessageByID(ctx context.Context, id int64) (message.Message, bool, error) {
	var msg message.Message
	err := s.db.QueryRowContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE message_id = $1
	`, id).Scan(&msg.ID, &msg.PostedBy, &msg.MessageText, &msg.TimePostedEpoch)
	if errors.Is(err, sql.ErrNoRows) {
		return message.Message{}, false, nil
	}
	if err != nil {
		return message.Message{}, false, err
	}
	return msg, true, nil
}

func (s *Store) MessageExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM message WHERE message_id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (s *Store) FindMessagesByPostedBy(ctx context.Context, accountID int64) ([]message.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE posted_by = $1
		ORDER BY message_id
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (s *Store) SaveMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO message (posted_by, message_text, time_posted_epoch)
		VALUES ($1, $2, $3)
		RETURNING message_id
	`, msg.PostedBy, msg.MessageText, msg.TimePostedEpoch).Scan(&msg.ID)
	if err != nil {
		return message.Message{}, err
	}
	return msg, nil
}

func (s *Store) UpdateMessageText(ctx context.Context, id int64, text string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE message
		SET message_text = $2
		WHERE message_id = $1
	`, id, text)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) DeleteMessageByID(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM message
		WHERE message_id = $1
	`, id)
	return err
}

func scanMessages(rows *sql.Rows) ([]message.Message, error) {
	result := make([]message.Message, 0)
	for rows.Next() {
		var msg message.Message
		if err := rows.Scan(&msg.ID, &msg.PostedBy, &msg.MessageText, &msg.TimePostedEpoch); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
