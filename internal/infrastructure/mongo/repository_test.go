package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	authdomain "talentpool/backend/internal/domain/auth"
	candidatedomain "talentpool/backend/internal/domain/candidate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInsertedID(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), insertedID(oid))
	assert.Equal(t, "42", insertedID(42))
}

// openTestDatabase connects to MONGO_TEST_URL and drops the scratch database
// afterwards. Tests are skipped when the variable is unset.
func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URL")
	if uri == "" {
		t.Skip("MONGO_TEST_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := New(ctx, uri, fmt.Sprintf("talentpool_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, db.EnsureIndexes(ctx))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.DB.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

func TestUserRepository_Integration(t *testing.T) {
	db := openTestDatabase(t)
	repo := NewUserRepository(db.DB)
	ctx := context.Background()

	id, err := repo.Create(ctx, &authdomain.Identity{UUID: "u-1", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = repo.Create(ctx, &authdomain.Identity{UUID: "u-2", Email: "a@x.com"})
	require.ErrorIs(t, err, authdomain.ErrEmailExists)

	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UUID)
	assert.Equal(t, "h", got.PasswordHash)

	_, err = repo.GetByUUID(ctx, "missing")
	require.ErrorIs(t, err, authdomain.ErrUserNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCandidateRepository_Integration(t *testing.T) {
	db := openTestDatabase(t)
	repo := NewCandidateRepository(db.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, &candidatedomain.Candidate{UUID: "c-1", Email: "a@x.com", City: "Vientiane", Skills: []string{"Go"}})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &candidatedomain.Candidate{UUID: "c-2", Email: "b@x.com", City: "v.ntiane", Skills: []string{"Rust"}})
	require.NoError(t, err)

	found, err := repo.Search(ctx, candidatedomain.FieldCity, "VIENT")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "c-1", found[0].UUID)

	found, err = repo.Search(ctx, candidatedomain.FieldCity, "v.")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "c-2", found[0].UUID)

	found, err = repo.Search(ctx, candidatedomain.FieldSkills, "rus")
	require.NoError(t, err)
	require.Len(t, found, 1)

	require.NoError(t, repo.Replace(ctx, "c-1", &candidatedomain.Candidate{UUID: "c-1", Email: "a@x.com", City: "Pakse"}))
	got, err := repo.GetByUUID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Pakse", got.City)

	require.ErrorIs(t, repo.Replace(ctx, "nope", &candidatedomain.Candidate{UUID: "nope"}), candidatedomain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "c-1"))
	require.ErrorIs(t, repo.Delete(ctx, "c-1"), candidatedomain.ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
