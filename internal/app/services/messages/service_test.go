package messages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/app/domain/account"
	"microblog/internal/app/domain/message"
	"microblog/internal/app/storage/memory"
)

func newFixture(t *testing.T) (*Service, *memory.Store, account.Account) {
	t.Helper()
	store := memory.New()
	acct, err := store.SaveAccount(context.Background(), account.Account{Username: "alice", Password: "pass1"})
	require.NoError(t, err)
	return New(store, store, nil), store, acct
}

func TestIsValidText(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		valid bool
	}{
		{"simple", "hello", true},
		{"empty", "", false},
		{"whitespace only", "   \t\n  ", false},
		{"254 chars", strings.Repeat("a", 254), true},
		{"255 chars", strings.Repeat("a", 255), false},
		{"254 multibyte runes", strings.Repeat("é", 254), true},
		{"255 multibyte runes", strings.Repeat("é", 255), false},
		{"long whitespace", strings.Repeat(" ", 300), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidText(tc.text))
		})
	}
}

func TestCreate(t *testing.T) {
	svc, _, acct := newFixture(t)

	msg, err := svc.Create(context.Background(), message.Message{
		PostedBy:        acct.ID,
		MessageText:     "hello",
		TimePostedEpoch: 1000,
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, acct.ID, msg.PostedBy)
	assert.Equal(t, int64(1000), msg.TimePostedEpoch)

	byAccount, err := svc.ListByAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
	assert.Equal(t, msg, byAccount[0])
}

func TestCreateRejectsInvalidText(t *testing.T) {
	svc, store, acct := newFixture(t)

	for _, text := range []string{"", "  ", strings.Repeat("x", 255)} {
		_, err := svc.Create(context.Background(), message.Message{PostedBy: acct.ID, MessageText: text})
		assert.ErrorIs(t, err, ErrInvalidMessage)
	}

	all, err := store.FindAllMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateRejectsUnknownAuthor(t *testing.T) {
	svc, store, _ := newFixture(t)

	// Text validity does not rescue a dangling author reference.
	_, err := svc.Create(context.Background(), message.Message{PostedBy: 9999, MessageText: "hi"})
	require.ErrorIs(t, err, ErrInvalidMessage)

	all, err := store.FindAllMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetByIDAbsent(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, found, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateReplacesOnlyText(t *testing.T) {
	svc, _, acct := newFixture(t)

	created, err := svc.Create(context.Background(), message.Message{PostedBy: acct.ID, MessageText: "before", TimePostedEpoch: 7})
	require.NoError(t, err)

	require.NoError(t, svc.Update(context.Background(), created.ID, "after"))

	got, found, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "after", got.MessageText)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.PostedBy, got.PostedBy)
	assert.Equal(t, created.TimePostedEpoch, got.TimePostedEpoch)

	// Repeating the same valid update succeeds.
	assert.NoError(t, svc.Update(context.Background(), created.ID, "after"))
}

func TestUpdateRejectsInvalidTextAndKeepsOriginal(t *testing.T) {
	svc, _, acct := newFixture(t)

	created, err := svc.Create(context.Background(), message.Message{PostedBy: acct.ID, MessageText: "original"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Update(context.Background(), created.ID, ""), ErrInvalidMessage)
	require.ErrorIs(t, svc.Update(context.Background(), created.ID, strings.Repeat("z", 255)), ErrInvalidMessage)

	got, found, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "original", got.MessageText)
}

func TestUpdateRejectsUnknownMessage(t *testing.T) {
	svc, _, _ := newFixture(t)

	assert.ErrorIs(t, svc.Update(context.Background(), 42, "valid text"), ErrInvalidMessage)
}

func TestDeleteByIDIsIdempotent(t *testing.T) {
	svc, _, acct := newFixture(t)

	created, err := svc.Create(context.Background(), message.Message{PostedBy: acct.ID, MessageText: "bye"})
	require.NoError(t, err)

	deleted, err := svc.DeleteByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, found, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListByAccountUnknownAccountIsEmpty(t *testing.T) {
	svc, _, _ := newFixture(t)

	msgs, err := svc.ListByAccount(context.Background(), 9999)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
