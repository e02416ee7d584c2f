// Package memory provides in-process document collections for identities and
// candidates. It backs local development and the HTTP tests.
package memory

import (
	"context"
	"slices"
	"sync"

	authdomain "talentpool/backend/internal/domain/auth"
	candidatedomain "talentpool/backend/internal/domain/candidate"

	"github.com/google/uuid"
)

// UserRepository keeps identities in insertion order.
type UserRepository struct {
	mu    sync.RWMutex
	items []*authdomain.Identity
}

var _ authdomain.UserRepository = (*UserRepository)(nil)

// NewUserRepository constructs an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create appends a copy of identity and returns a fresh document id.
func (r *UserRepository) Create(_ context.Context, identity *authdomain.Identity) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dup := *identity
	r.items = append(r.items, &dup)
	return uuid.NewString(), nil
}

// GetByEmail returns the first identity with an exactly matching email.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*authdomain.Identity, error) {
	return r.find(func(i *authdomain.Identity) bool { return i.Email == email })
}

// GetByUUID returns the identity with the given identifier.
func (r *UserRepository) GetByUUID(_ context.Context, id string) (*authdomain.Identity, error) {
	return r.find(func(i *authdomain.Identity) bool { return i.UUID == id })
}

// List returns copies of every identity.
func (r *UserRepository) List(_ context.Context) ([]*authdomain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*authdomain.Identity, 0, len(r.items))
	for _, item := range r.items {
		dup := *item
		out = append(out, &dup)
	}
	return out, nil
}

func (r *UserRepository) find(match func(*authdomain.Identity) bool) (*authdomain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if match(item) {
			dup := *item
			return &dup, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}

// CandidateRepository keeps candidates in insertion order.
type CandidateRepository struct {
	mu    sync.RWMutex
	items []*candidatedomain.Candidate
}

var _ candidatedomain.Repository = (*CandidateRepository)(nil)

// NewCandidateRepository constructs an empty repository.
func NewCandidateRepository() *CandidateRepository {
	return &CandidateRepository{}
}

// Create appends a copy of the candidate and returns a fresh document id.
func (r *CandidateRepository) Create(_ context.Context, c *candidatedomain.Candidate) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, cloneCandidate(c))
	return uuid.NewString(), nil
}

// GetByUUID fetches a candidate by UUID.
func (r *CandidateRepository) GetByUUID(_ context.Context, id string) (*candidatedomain.Candidate, error) {
	return r.find(func(c *candidatedomain.Candidate) bool { return c.UUID == id })
}

// GetByEmail fetches a candidate by email.
func (r *CandidateRepository) GetByEmail(_ context.Context, email string) (*candidatedomain.Candidate, error) {
	return r.find(func(c *candidatedomain.Candidate) bool { return c.Email == email })
}

// Replace swaps the stored document for c.
func (r *CandidateRepository) Replace(_ context.Context, id string, c *candidatedomain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.UUID == id {
			r.items[i] = cloneCandidate(c)
			return nil
		}
	}
	return candidatedomain.ErrNotFound
}

// Delete removes a candidate by UUID.
func (r *CandidateRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.UUID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return candidatedomain.ErrNotFound
}

// List returns copies of every candidate.
func (r *CandidateRepository) List(_ context.Context) ([]*candidatedomain.Candidate, error) {
	return r.filter(func(*candidatedomain.Candidate) bool { return true }), nil
}

// Search returns candidates whose field contains value, ignoring case.
func (r *CandidateRepository) Search(_ context.Context, field candidatedomain.SearchField, value string) ([]*candidatedomain.Candidate, error) {
	return r.filter(func(c *candidatedomain.Candidate) bool { return field.Matches(c, value) }), nil
}

func (r *CandidateRepository) find(match func(*candidatedomain.Candidate) bool) (*candidatedomain.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if match(item) {
			return cloneCandidate(item), nil
		}
	}
	return nil, candidatedomain.ErrNotFound
}

func (r *CandidateRepository) filter(match func(*candidatedomain.Candidate) bool) []*candidatedomain.Candidate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*candidatedomain.Candidate, 0, len(r.items))
	for _, item := range r.items {
		if match(item) {
			out = append(out, cloneCandidate(item))
		}
	}
	return out
}

func cloneCandidate(c *candidatedomain.Candidate) *candidatedomain.Candidate {
	dup := *c
	dup.Skills = slices.Clone(c.Skills)
	return &dup
}
