package token

import (
	"errors"
	"fmt"
	"maps"
	"time"

	domain "talentpool/backend/internal/domain/auth"
	usecase "talentpool/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL applies when Issue is called without WithTTL.
const DefaultTTL = 15 * time.Minute

// JWTManager issues and validates JWT tokens.
type JWTManager struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// Ensure JWTManager implements the TokenCodec interface.
var _ usecase.TokenCodec = (*JWTManager)(nil)

// NewJWTManager constructs a manager with the provided secret and algorithm.
// Only the HMAC family is accepted since the secret is symmetric.
func NewJWTManager(secret, algorithm string) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &JWTManager{
		secret: []byte(secret),
		method: method,
		now:    time.Now,
	}, nil
}

// Algorithm reports the configured signing algorithm.
func (m *JWTManager) Algorithm() string {
	return m.method.Alg()
}

type issueOptions struct {
	ttl time.Duration
}

// IssueOption customises a single Issue call.
type IssueOption func(*issueOptions)

// WithTTL sets the token lifetime. A zero or negative TTL produces a token
// that is already expired.
func WithTTL(ttl time.Duration) IssueOption {
	return func(o *issueOptions) {
		o.ttl = ttl
	}
}

// Issue signs the claims plus an exp claim.
func (m *JWTManager) Issue(claims map[string]any, opts ...IssueOption) (string, error) {
	o := issueOptions{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&o)
	}

	toEncode := jwt.MapClaims{}
	maps.Copy(toEncode, claims)
	toEncode["exp"] = jwt.NewNumericDate(m.now().UTC().Add(o.ttl))

	return jwt.NewWithClaims(m.method, toEncode).SignedString(m.secret)
}

// IssueWithTTL is Issue with an explicit lifetime.
func (m *JWTManager) IssueWithTTL(claims map[string]any, ttl time.Duration) (string, error) {
	return m.Issue(claims, WithTTL(ttl))
}

// Resolve verifies the token and returns its claims. Failures are
// *domain.RejectionError values tagged with the reason.
func (m *JWTManager) Resolve(tokenString string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, domain.Reject(domain.RejectMalformed, errors.New("invalid token claims"))
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domain.Reject(domain.RejectMalformed, errors.New("exp claim unusable"))
	}
	if !exp.Time.After(m.now()) {
		return nil, domain.Reject(domain.RejectExpired, jwt.ErrTokenExpired)
	}

	out := make(map[string]any, len(claims))
	maps.Copy(out, claims)
	return out, nil
}

func classify(err error) *domain.RejectionError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.Reject(domain.RejectExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.Reject(domain.RejectBadSignature, err)
	default:
		return domain.Reject(domain.RejectMalformed, err)
	}
}
