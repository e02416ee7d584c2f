package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	domain "talentpool/backend/internal/domain/auth"
)

// UserRepository persists identities as JSONB documents in PostgreSQL.
type UserRepository struct {
	db DBTX
}

var _ domain.UserRepository = (*UserRepository)(nil)

// NewUserRepository constructs a repository.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new identity document and returns its row id.
func (r *UserRepository) Create(ctx context.Context, identity *domain.Identity) (string, error) {
	const query = `
INSERT INTO users (doc)
VALUES ($1::jsonb)
RETURNING id
`
	doc, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, string(doc)).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrEmailExists
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// GetByEmail fetches an identity by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `
SELECT doc FROM users
WHERE doc->>'email' = $1
LIMIT 1
`
	return scanIdentity(r.db.QueryRowContext(ctx, query, email))
}

// GetByUUID retrieves an identity by its identifier.
func (r *UserRepository) GetByUUID(ctx context.Context, id string) (*domain.Identity, error) {
	const query = `
SELECT doc FROM users
WHERE doc->>'uuid' = $1
LIMIT 1
`
	return scanIdentity(r.db.QueryRowContext(ctx, query, id))
}

// List returns every identity in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]*domain.Identity, error) {
	const query = `SELECT doc FROM users ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := []*domain.Identity{}
	for rows.Next() {
		u, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdentity(row rowScanner) (*domain.Identity, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	var u domain.Identity
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
