package auth

import "context"

// UserRepository defines persistence operations for identities.
// Lookups return ErrUserNotFound when no document matches.
type UserRepository interface {
	Create(ctx context.Context, identity *Identity) (string, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	GetByUUID(ctx context.Context, uuid string) (*Identity, error)
	List(ctx context.Context) ([]*Identity, error)
}
