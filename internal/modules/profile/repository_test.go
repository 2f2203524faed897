package profile

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/jstrader/tradejournal/internal/domain"
)

func setupUsersDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TABLE users (
			user_id    TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func strptr(s string) *string { return &s }

func TestRepository_GetAbsentProfileIsNilNil(t *testing.T) {
	repo := NewRepository(setupUsersDB(t), zerolog.Nop())

	profile, err := repo.Get(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupUsersDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "user-1", domain.UserProfile{
		Name:          "山田太郎",
		Email:         "taro@example.com",
		EmailVerified: true,
	}))

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "山田太郎", got.Name)
	assert.Equal(t, "taro@example.com", got.Email)
	assert.NotEmpty(t, got.CreatedAt)
	assert.NotEmpty(t, got.UpdatedAt)
}

func TestRepository_PutMergesPartially(t *testing.T) {
	repo := NewRepository(setupUsersDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "user-1", domain.UserProfile{
		Name: "山田太郎",
		Bio:  "デイトレ3年目",
	}))

	got, err := repo.Put(ctx, "user-1", domain.ProfileUpdate{Bio: strptr("スイングに転向")})
	require.NoError(t, err)

	// Name untouched, bio replaced.
	assert.Equal(t, "山田太郎", got.Name)
	assert.Equal(t, "スイングに転向", got.Bio)
}

func TestRepository_PutAllowsClearingFields(t *testing.T) {
	repo := NewRepository(setupUsersDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "user-1", domain.UserProfile{Bio: "something"}))

	// Explicit empty string clears; nil would preserve.
	got, err := repo.Put(ctx, "user-1", domain.ProfileUpdate{Bio: strptr("")})
	require.NoError(t, err)
	assert.Empty(t, got.Bio)
}

func TestRepository_PutWithoutProfileFails(t *testing.T) {
	repo := NewRepository(setupUsersDB(t), zerolog.Nop())

	_, err := repo.Put(context.Background(), "user-1", domain.ProfileUpdate{Name: strptr("x")})
	assert.Error(t, err)
}
