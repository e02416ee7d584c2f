package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	domain "talentpool/backend/internal/domain/auth"
	"talentpool/backend/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }
func (fakeHasher) Verify(plaintext, digest string) bool  { return digest == "hashed:"+plaintext }

type issued struct {
	claims map[string]any
	ttl    time.Duration
}

type fakeCodec struct {
	mu       sync.Mutex
	tokens   map[string]issued
	rejectAs *domain.RejectionError
	plainErr error
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{tokens: map[string]issued{}}
}

func (c *fakeCodec) IssueWithTTL(claims map[string]any, ttl time.Duration) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tok := fmt.Sprintf("tok-%d", len(c.tokens)+1)
	c.tokens[tok] = issued{claims: claims, ttl: ttl}
	return tok, nil
}

func (c *fakeCodec) Resolve(token string) (map[string]any, error) {
	if c.rejectAs != nil {
		return nil, c.rejectAs
	}
	if c.plainErr != nil {
		return nil, c.plainErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.tokens[token]
	if !ok {
		return nil, domain.Reject(domain.RejectBadSignature, nil)
	}
	if entry.ttl <= 0 {
		return nil, domain.Reject(domain.RejectExpired, nil)
	}
	return entry.claims, nil
}

type failingUsers struct {
	domain.UserRepository
	err error
}

func (f failingUsers) GetByEmail(context.Context, string) (*domain.Identity, error) {
	return nil, f.err
}

// --- helpers ---

func newTestService(t *testing.T, opts ...Option) (*Service, *memory.UserRepository, *fakeCodec) {
	t.Helper()
	users := memory.NewUserRepository()
	codec := newFakeCodec()
	return NewService(users, codec, fakeHasher{}, opts...), users, codec
}

func register(t *testing.T, svc *Service, email, password string) string {
	t.Helper()
	id, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return id
}

func requireReason(t *testing.T, err error, want domain.RejectionReason) {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	var rejection *domain.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, want, rejection.Reason)
}

// --- tests ---

func TestRegister_StoresHashedIdentity(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	id := register(t, svc, "a@x.com", "secret")
	require.NotEmpty(t, id)

	stored, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, stored.UUID)
	assert.Equal(t, "hashed:secret", stored.PasswordHash)
	assert.Equal(t, "Test", stored.FirstName)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc, users, _ := newTestService(t)

	first := register(t, svc, "a@x.com", "secret")
	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "a@x.com",
		Password:  "other",
	})
	require.ErrorIs(t, err, domain.ErrEmailExists)

	stored, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first, stored.UUID)

	all, err := svc.ListIdentities(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegister_EmailLookupIsCaseSensitive(t *testing.T) {
	svc, _, _ := newTestService(t)

	register(t, svc, "a@x.com", "secret")
	register(t, svc, "A@x.com", "secret")
}

func TestRegister_Validation(t *testing.T) {
	complete := RegisterInput{FirstName: "Ada", LastName: "Lovelace", Email: "a@x.com", Password: "p"}
	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		missing string
	}{
		{"first name", func(in *RegisterInput) { in.FirstName = "" }, "first_name"},
		{"last name blank", func(in *RegisterInput) { in.LastName = "  " }, "last_name"},
		{"email", func(in *RegisterInput) { in.Email = " " }, "email"},
		{"password", func(in *RegisterInput) { in.Password = "" }, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestService(t)
			input := complete
			tt.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.missing)

			all, err := users.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestRegister_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("store down")
	svc := NewService(failingUsers{err: boom}, newFakeCodec(), fakeHasher{})

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@x.com",
		Password:  "p",
	})
	require.ErrorIs(t, err, boom)
}

func TestVerifyCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	id := register(t, svc, "a@x.com", "secret")

	identity, err := svc.VerifyCredentials(ctx, domain.Credentials{Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, id, identity.UUID)

	_, err = svc.VerifyCredentials(ctx, domain.Credentials{Email: "a@x.com", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.VerifyCredentials(ctx, domain.Credentials{Email: "nobody@x.com", Password: "secret"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestIssueTokenFor_UsesSubjectAndAccessTTL(t *testing.T) {
	svc, _, codec := newTestService(t)

	tok, err := svc.IssueTokenFor("a@x.com")
	require.NoError(t, err)

	entry := codec.tokens[tok]
	assert.Equal(t, map[string]any{"sub": "a@x.com"}, entry.claims)
	assert.Equal(t, DefaultAccessTokenTTL, entry.ttl)
}

func TestIssueTokenFor_CustomTTL(t *testing.T) {
	svc, _, codec := newTestService(t, WithAccessTokenTTL(5*time.Minute), WithAccessTokenTTL(0))

	tok, err := svc.IssueTokenFor("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, codec.tokens[tok].ttl)
}

func TestResolveCurrentIdentity_Success(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := register(t, svc, "a@x.com", "secret")

	tok, err := svc.IssueTokenFor("a@x.com")
	require.NoError(t, err)

	identity, err := svc.ResolveCurrentIdentity(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, id, identity.UUID)
}

func TestResolveCurrentIdentity_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("codec rejection is passed through", func(t *testing.T) {
		svc, _, codec := newTestService(t)
		codec.rejectAs = domain.Reject(domain.RejectExpired, nil)

		_, err := svc.ResolveCurrentIdentity(ctx, "anything")
		requireReason(t, err, domain.RejectExpired)
	})

	t.Run("untagged codec error becomes malformed", func(t *testing.T) {
		svc, _, codec := newTestService(t)
		codec.plainErr = errors.New("weird")

		_, err := svc.ResolveCurrentIdentity(ctx, "anything")
		requireReason(t, err, domain.RejectMalformed)
	})

	t.Run("missing sub", func(t *testing.T) {
		svc, _, codec := newTestService(t)
		tok, _ := codec.IssueWithTTL(map[string]any{"scope": "x"}, time.Minute)

		_, err := svc.ResolveCurrentIdentity(ctx, tok)
		requireReason(t, err, domain.RejectSubjectMissing)
	})

	t.Run("non string sub", func(t *testing.T) {
		svc, _, codec := newTestService(t)
		tok, _ := codec.IssueWithTTL(map[string]any{"sub": 42}, time.Minute)

		_, err := svc.ResolveCurrentIdentity(ctx, tok)
		requireReason(t, err, domain.RejectSubjectMissing)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		tok, err := svc.IssueTokenFor("ghost@x.com")
		require.NoError(t, err)

		_, err = svc.ResolveCurrentIdentity(ctx, tok)
		requireReason(t, err, domain.RejectSubjectMissing)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestResolveCurrentIdentity_StoreFailureIsNotARejection(t *testing.T) {
	boom := errors.New("store down")
	codec := newFakeCodec()
	svc := NewService(failingUsers{err: boom}, codec, fakeHasher{})
	tok, _ := codec.IssueWithTTL(map[string]any{"sub": "a@x.com"}, time.Minute)

	_, err := svc.ResolveCurrentIdentity(context.Background(), tok)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListIdentities_IncludesHashes(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc, "a@x.com", "one")
	register(t, svc, "b@x.com", "two")

	all, err := svc.ListIdentities(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, identity := range all {
		assert.True(t, strings.HasPrefix(identity.PasswordHash, "hashed:"))
	}
}

func TestGetIdentity(t *testing.T) {
	svc, _, _ := newTestService(t)
	id := register(t, svc, "a@x.com", "secret")

	identity, err := svc.GetIdentity(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Email)

	_, err = svc.GetIdentity(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.GetIdentity(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrValidation)
}
