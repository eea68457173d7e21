package account

// Account is a registered user identity. The ID is assigned by the store on
// first save and is immutable afterwards; usernames are unique across all
// accounts.
//
// Passwords are stored and compared in plaintext for compatibility with the
// persisted data format. Hashing would require migrating existing rows.
type Account struct {
	ID       int64  `json:"accountId"`
	Username string `json:"username"`
	Password string `json:"password"`
}
