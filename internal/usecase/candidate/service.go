package candidate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "talentpool/backend/internal/domain/candidate"

	"github.com/google/uuid"
)

// Service encapsulates candidate use cases.
type Service struct {
	repo  domain.Repository
	newID func() string
}

// NewService constructs a candidate service.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:  repo,
		newID: uuid.NewString,
	}
}

// Create stores a new candidate and returns the document id and its UUID.
func (s *Service) Create(ctx context.Context, input domain.Candidate) (string, string, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return "", "", err
	}

	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return "", "", domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", "", err
	}

	input.UUID = s.newID()
	id, err := s.repo.Create(ctx, &input)
	if err != nil {
		return "", "", err
	}
	return id, input.UUID, nil
}

// Get fetches a candidate by UUID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: uuid is required", domain.ErrValidation)
	}
	return s.repo.GetByUUID(ctx, id)
}

// Update replaces the stored candidate document. The UUID in the path wins
// over any UUID in the payload.
func (s *Service) Update(ctx context.Context, id string, input domain.Candidate) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: uuid is required", domain.ErrValidation)
	}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByUUID(ctx, id); err != nil {
		return err
	}
	input.UUID = id
	return s.repo.Replace(ctx, id, &input)
}

// Delete removes a candidate.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: uuid is required", domain.ErrValidation)
	}
	if _, err := s.repo.GetByUUID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List retrieves all candidates.
func (s *Service) List(ctx context.Context) ([]*domain.Candidate, error) {
	return s.repo.List(ctx)
}

// Search returns candidates whose attribute contains value, ignoring case.
func (s *Service) Search(ctx context.Context, attribute, value string) ([]*domain.Candidate, error) {
	field, err := domain.ParseSearchField(attribute)
	if err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, field, value)
}
