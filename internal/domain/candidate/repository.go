package candidate

import "context"

// Repository defines persistence behaviours for candidates.
// Create returns the store-assigned document id.
type Repository interface {
	Create(ctx context.Context, candidate *Candidate) (string, error)
	GetByUUID(ctx context.Context, uuid string) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	Replace(ctx context.Context, uuid string, candidate *Candidate) error
	Delete(ctx context.Context, uuid string) error
	List(ctx context.Context) ([]*Candidate, error)
	Search(ctx context.Context, field SearchField, value string) ([]*Candidate, error)
}
