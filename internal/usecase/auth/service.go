package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "talentpool/backend/internal/domain/auth"

	"github.com/google/uuid"
)

// DefaultAccessTokenTTL is the lifetime of tokens issued by IssueTokenFor.
const DefaultAccessTokenTTL = 30 * time.Minute

// Service coordinates authentication workflows between domain and infrastructure.
type Service struct {
	users     domain.UserRepository
	tokens    TokenCodec
	hasher    PasswordHasher
	accessTTL time.Duration
	newID     func() string
}

// Option customises a Service.
type Option func(*Service)

// WithAccessTokenTTL overrides the lifetime of issued access tokens.
func WithAccessTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.accessTTL = ttl
		}
	}
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository, tokens TokenCodec, hasher PasswordHasher, opts ...Option) *Service {
	s := &Service{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		accessTTL: DefaultAccessTokenTTL,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInput is the identity draft accepted by Register.
type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates a new identity and returns its identifier.
func (s *Service) Register(ctx context.Context, input RegisterInput) (string, error) {
	email := strings.TrimSpace(input.Email)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)

	var missing []string
	if firstName == "" {
		missing = append(missing, "first_name")
	}
	if lastName == "" {
		missing = append(missing, "last_name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", err
	}

	identity := &domain.Identity{
		UUID:         s.newID(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hashed,
	}
	if _, err := s.users.Create(ctx, identity); err != nil {
		return "", err
	}
	return identity.UUID, nil
}

// VerifyCredentials returns the stored identity when the password matches.
// An unknown email yields ErrUserNotFound, a wrong password ErrInvalidCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	identity, err := s.users.GetByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(creds.Password, identity.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return identity, nil
}

// IssueTokenFor signs an access token whose subject is the email.
func (s *Service) IssueTokenFor(email string) (string, error) {
	return s.tokens.IssueWithTTL(map[string]any{"sub": email}, s.accessTTL)
}

// ResolveCurrentIdentity maps a bearer token back to the identity it names.
// Every token problem, including a subject that no longer exists, is reported
// as a *domain.RejectionError.
func (s *Service) ResolveCurrentIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.tokens.Resolve(token)
	if err != nil {
		var rejection *domain.RejectionError
		if errors.As(err, &rejection) {
			return nil, rejection
		}
		return nil, domain.Reject(domain.RejectMalformed, err)
	}

	email, _ := claims["sub"].(string)
	if email == "" {
		return nil, domain.Reject(domain.RejectSubjectMissing, errors.New("sub claim missing"))
	}

	identity, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.Reject(domain.RejectSubjectMissing, err)
		}
		return nil, err
	}
	return identity, nil
}

// ListIdentities returns every stored identity, unfiltered.
func (s *Service) ListIdentities(ctx context.Context) ([]*domain.Identity, error) {
	return s.users.List(ctx)
}

// GetIdentity fetches an identity by its identifier.
func (s *Service) GetIdentity(ctx context.Context, id string) (*domain.Identity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	return s.users.GetByUUID(ctx, id)
}
