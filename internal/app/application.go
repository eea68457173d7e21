// Package app composes stores and services into a running application. It
// holds no business logic itself; validation rules live in the service
// packages and transport concerns in httpapi.
package app

import (
	"microblog/internal/app/services/accounts"
	"microblog/internal/app/services/messages"
	"microblog/internal/app/storage"
	"microblog/internal/app/storage/memory"
	"microblog/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Accounts storage.AccountStore
	Messages storage.MessageStore
}

// Application ties the domain services together.
type Application struct {
	log *logger.Logger

	Accounts *accounts.Service
	Messages *messages.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Accounts == nil {
		stores.Accounts = mem
	}
	if stores.Messages == nil {
		stores.Messages = mem
	}

	return &Application{
		log:      log,
		Accounts: accounts.New(stores.Accounts, log),
		Messages: messages.New(stores.Accounts, stores.Messages, log),
	}
}
