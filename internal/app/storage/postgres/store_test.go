package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"microblog/internal/app/domain/account"
	"microblog/internal/app/domain/message"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestSaveAccountReturnsAssignedID(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO account`).
		WithArgs("alice", "pass1").
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(int64(7)))

	acct, err := store.SaveAccount(context.Background(), account.Account{Username: "alice", Password: "pass1"})
	if err != nil {
		t.Fatalf("save account: %v", err)
	}
	if acct.ID != 7 {
		t.Fatalf("expected id 7, got %d", acct.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindAccountByUsernameAbsent(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`SELECT account_id, username, password`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, found, err := store.FindAccountByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	if found {
		t.Fatalf("expected absent account")
	}
}

func TestSaveMessageReturnsAssignedID(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO message`).
		WithArgs(int64(1), "hello", int64(1000)).
		WillReturnRows(sqlmock.NewRows([]string{"message_id"}).AddRow(int64(3)))

	msg, err := store.SaveMessage(context.Background(), message.Message{PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1000})
	if err != nil {
		t.Fatalf("save message: %v", err)
	}
	if msg.ID != 3 {
		t.Fatalf("expected id 3, got %d", msg.ID)
	}
}

func TestUpdateMessageTextMissingRow(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(`UPDATE message`).
		WithArgs(int64(42), "text").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdateMessageText(context.Background(), 42, "text")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestFindAllMessagesScansRows(t *testing.T) {
	store, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"message_id", "posted_by", "message_text", "time_posted_epoch"}).
		AddRow(int64(1), int64(1), "first", int64(10)).
		AddRow(int64(2), int64(1), "second", int64(20))
	mock.ExpectQuery(`SELECT message_id, posted_by, message_text, time_posted_epoch`).
		WillReturnRows(rows)

	msgs, err := store.FindAllMessages(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(msgs) != 2 || msgs[1].MessageText != "second" {
		t.Fatalf("unexpected result: %+v", msgs)
	}
}

func TestMessageExistsByID(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := store.MessageExistsByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected message to exist")
	}
}
