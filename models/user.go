package models

import "time"

// User represents an identity resolved from the external identity store.
// It is referenced by issued tokens and threaded into mutating resource
// operations; this framework never modifies it.
type User struct {
	// UserID is the internal unique identifier of the user. It is encoded
	// as the "sub" claim of every token issued for this account.
	UserID int64 `json:"id"`

	// Email is the unique login identifier used during token crafting.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Never exposed via JSON and never compared with plain equality.
	PasswordHash string `json:"-"`

	// Role is the coarse permission label attached to the account
	// (e.g. "admin", "editor"). Interpreted by resource services,
	// opaque to the framework itself.
	Role string `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials carries a login attempt. It is transient: consumed once by the
// token service and never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
