package auth

import "context"

// UserRepository defines data access methods for API users.
type UserRepository interface {
	// GetByEmail returns ErrUserNotFound on no match.
	GetByEmail(ctx context.Context, email string) (User, error)

	// Upsert inserts the user or, when the email exists, refreshes the
	// password hash and admin flag. Used by the startup admin bootstrap.
	Upsert(ctx context.Context, u User) (User, error)
}
