package auth

import "time"

// TokenCodec abstracts token issuance and verification.
// Resolve failures are *auth.RejectionError values.
type TokenCodec interface {
	IssueWithTTL(claims map[string]any, ttl time.Duration) (string, error)
	Resolve(token string) (map[string]any, error)
}

// PasswordHasher abstracts one-way password hashing.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
