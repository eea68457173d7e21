package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"microblog/internal/app/domain/account"
	"microblog/internal/app/domain/message"
	"microblog/internal/platform/migrations"
)

// Integration test against a real Postgres to ensure migrations and core
// flows work with persistence.
func TestStoreIntegration(t *testing.T) {
	_ = godotenv.Load() // allow .env for local runs
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migrations.Apply(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	store := New(db)

	acct, err := store.SaveAccount(ctx, account.Account{Username: "integration-user", Password: "pass1"})
	if err != nil {
		t.Fatalf("save account: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM message WHERE posted_by = $1`, acct.ID)
		_, _ = db.ExecContext(ctx, `DELETE FROM account WHERE account_id = $1`, acct.ID)
	})

	// The unique index rejects a duplicate username.
	if _, err := store.SaveAccount(ctx, account.Account{Username: "integration-user", Password: "other"}); err == nil {
		t.Fatalf("expected duplicate username to fail")
	}

	msg, err := store.SaveMessage(ctx, message.Message{PostedBy: acct.ID, MessageText: "hello", TimePostedEpoch: 1000})
	if err != nil {
		t.Fatalf("save message: %v", err)
	}

	byAccount, err := store.FindMessagesByPostedBy(ctx, acct.ID)
	if err != nil {
		t.Fatalf("find by posted_by: %v", err)
	}
	if len(byAccount) != 1 || byAccount[0].ID != msg.ID {
		t.Fatalf("unexpected messages: %+v", byAccount)
	}

	if err := store.DeleteMessageByID(ctx, msg.ID); err != nil {
		t.Fatalf("delete message: %v", err)
	}
	if _, found, err := store.FindMessageByID(ctx, msg.ID); err != nil || found {
		t.Fatalf("expected message gone, found=%v err=%v", found, err)
	}
}
