package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	domain "talentpool/backend/internal/domain/candidate"
)

// CandidateRepository persists candidates as JSONB documents in PostgreSQL.
type CandidateRepository struct {
	db DBTX
}

var _ domain.Repository = (*CandidateRepository)(nil)

// NewCandidateRepository constructs a repository.
func NewCandidateRepository(db DBTX) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create inserts a new candidate document and returns its row id.
func (r *CandidateRepository) Create(ctx context.Context, c *domain.Candidate) (string, error) {
	const query = `
INSERT INTO candidates (doc)
VALUES ($1::jsonb)
RETURNING id
`
	doc, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode candidate: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, string(doc)).Scan(&id); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// GetByUUID fetches a candidate by UUID.
func (r *CandidateRepository) GetByUUID(ctx context.Context, id string) (*domain.Candidate, error) {
	const query = `
SELECT doc FROM candidates
WHERE doc->>'UUID' = $1
LIMIT 1
`
	return scanCandidate(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail fetches a candidate by email.
func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	const query = `
SELECT doc FROM candidates
WHERE doc->>'email' = $1
LIMIT 1
`
	return scanCandidate(r.db.QueryRowContext(ctx, query, email))
}

// Replace overwrites the candidate document stored under id.
func (r *CandidateRepository) Replace(ctx context.Context, id string, c *domain.Candidate) error {
	const query = `
UPDATE candidates
SET doc = $2::jsonb,
    updated_at = now()
WHERE doc->>'UUID' = $1
`
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode candidate: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, id, string(doc))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a candidate by UUID.
func (r *CandidateRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM candidates WHERE doc->>'UUID' = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

// List returns all candidates in insertion order.
func (r *CandidateRepository) List(ctx context.Context) ([]*domain.Candidate, error) {
	const query = `SELECT doc FROM candidates ORDER BY id ASC`
	return r.query(ctx, query)
}

// Search matches value as a case-insensitive substring of the field.
// The field comes from the allow-list and is still passed as a parameter.
func (r *CandidateRepository) Search(ctx context.Context, field domain.SearchField, value string) ([]*domain.Candidate, error) {
	pattern := "%" + escapeLike(value) + "%"
	if field == domain.FieldSkills {
		const query = `
SELECT doc FROM candidates
WHERE EXISTS (
    SELECT 1 FROM jsonb_array_elements_text(doc->'skills') AS skill
    WHERE skill ILIKE $1 ESCAPE '\'
)
ORDER BY id ASC
`
		return r.query(ctx, query, pattern)
	}

	const query = `
SELECT doc FROM candidates
WHERE doc->>$1 ILIKE $2 ESCAPE '\'
ORDER BY id ASC
`
	return r.query(ctx, query, string(field), pattern)
}

func (r *CandidateRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := []*domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func scanCandidate(row rowScanner) (*domain.Candidate, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	var c domain.Candidate
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	return &c, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
