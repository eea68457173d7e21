package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"microblog/internal/app/domain/account"
	"microblog/internal/app/domain/message"
	"microblog/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local
// development. It enforces the same username uniqueness rule as the
// relational schema so conflict behaviour matches the Postgres store.
type Store struct {
	mu                 sync.RWMutex
	nextAccountID      int64
	nextMessageID      int64
	accounts           map[int64]account.Account
	accountsByUsername map[string]int64
	messages           map[int64]message.Message
}

var _ storage.AccountStore = (*Store)(nil)
var _ storage.MessageStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextAccountID:      1,
		nextMessageID:      1,
		accounts:           make(map[int64]account.Account),
		accountsByUsername: make(map[string]int64),
		messages:           make(map[int64]message.Message),
	}
}

// AccountStore implementation -------------------------------------------------

func (s *Store) AccountExists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accountsByUsername[username]
	return ok, nil
}

func (s *Store) AccountExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[id]
	return ok, nil
}

func (s *Store) FindAccountByUsername(_ context.Context, username string) (account.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountsByUsername[username]
	if !ok {
		return account.Account{}, false, nil
	}
	return s.accounts[id], true, nil
}

func (s *Store) SaveAccount(_ context.Context, acct account.Account) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accountsByUsername[acct.Username]; exists {
		return account.Account{}, fmt.Errorf("account %q already exists", acct.Username)
	}

	acct.ID = s.nextAccountID
	s.nextAccountID++

	s.accounts[acct.ID] = acct
	s.accountsByUsername[acct.Username] = acct.ID
	return acct, nil
}

// MessageStore implementation -------------------------------------------------

func (s *Store) FindAllMessages(_ context.Context) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]message.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		result = append(result, msg)
	}
	sortByID(result)
	return result, nil
}

func (s *Store) FindMessageByID(_ context.Context, id int64) (message.Message, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[id]
	return msg, ok, nil
}

func (s *Store) MessageExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.messages[id]
	return ok, nil
}

func (s *Store) FindMessagesByPostedBy(_ context.Context, accountID int64) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]message.Message, 0)
	for _, msg := range s.messages {
		if msg.PostedBy == accountID {
			result = append(result, msg)
		}
	}
	sortByID(result)
	return result, nil
}

func (s *Store) SaveMessage(_ context.Context, msg message.Message) (message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = s.nextMessageID
	s.nextMessageID++

	s.messages[msg.ID] = msg
	return msg, nil
}

func (s *Store) UpdateMessageText(_ context.Context, id int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return fmt.Errorf("message %d not found", id)
	}
	msg.MessageText = text
	s.messages[id] = msg
	return nil
}

func (s *Store) DeleteMessageByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, id)
	return nil
}

// sortByID keeps listings in insertion order, matching the ORDER BY of the
// Postgres store.
func sortByID(msgs []message.Message) {
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].ID < msgs[j].ID })
}
