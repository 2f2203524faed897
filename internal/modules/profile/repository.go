// Package profile manages per-user profile documents: created at sign-up,
// partially merged on edit, never deleted by the app.
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/jst"
)

// Repository handles user profile documents in journal.db.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new profile repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "profiles").Logger(),
	}
}

// Get returns the profile document for a user, or (nil, nil) when no profile
// exists. Absence is a domain state (account without completed sign-up), not
// an error.
func (r *Repository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT data FROM users WHERE user_id = ?", userID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("malformed profile document for %s: %w", userID, err)
	}
	return &profile, nil
}

// Put merges a partial update into the stored profile and refreshes
// updatedAt. Fields absent from the update are preserved as stored.
func (r *Repository) Put(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	current, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no profile exists for user %s", userID)
	}

	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Bio != nil {
		current.Bio = *update.Bio
	}
	current.UpdatedAt = jst.Timestamp()

	if err := r.write(ctx, userID, *current); err != nil {
		return nil, err
	}
	return current, nil
}

// Create writes a full profile document. Used by the sign-up completion path;
// overwrites any partial leftover from an interrupted sign-up.
func (r *Repository) Create(ctx context.Context, userID string, profile domain.UserProfile) error {
	now := jst.Timestamp()
	if profile.CreatedAt == "" {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	return r.write(ctx, userID, profile)
}

func (r *Repository) write(ctx context.Context, userID string, profile domain.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, userID, data, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to write profile for %s: %w", userID, err)
	}
	return nil
}

var _ domain.ProfileStore = (*Repository)(nil)
