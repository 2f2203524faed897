// Package journal implements the trade record store adapter and the
// month-scoped fetch/save operations of the trading journal.
//
// Entries are stored one document per user per JST calendar date, with the
// canonical YYYY-MM-DD date key as part of the primary key. The repository is
// a pure adapter: request shaping only, no aggregation logic.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/jst"
)

// EntryRepository handles trade entry documents in journal.db.
type EntryRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewEntryRepository creates a new trade entry repository.
func NewEntryRepository(db *sql.DB, log zerolog.Logger) *EntryRepository {
	return &EntryRepository{
		db:  db,
		log: log.With().Str("repository", "entries").Logger(),
	}
}

// Range returns the date-key -> TradeDay mapping for one user, bounded
// inclusively by start/end date keys (empty bounds mean unbounded).
// Records flagged deleted are excluded from the result: every read-side
// computation depends on this filter.
func (r *EntryRepository) Range(ctx context.Context, userID, start, end string) (domain.TradeDataStore, error) {
	query := "SELECT date, data FROM trade_entries WHERE user_id = ?"
	args := []interface{}{userID}
	if start != "" {
		query += " AND date >= ?"
		args = append(args, start)
	}
	if end != "" {
		query += " AND date <= ?"
		args = append(args, end)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade entries: %w", err)
	}
	defer rows.Close()

	store := make(domain.TradeDataStore)
	for rows.Next() {
		var date string
		var data []byte
		if err := rows.Scan(&date, &data); err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan trade entry row")
			continue
		}

		var entry domain.TradeEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			r.log.Warn().Err(err).Str("date", date).Msg("Skipping malformed trade entry document")
			continue
		}
		if entry.Deleted {
			continue
		}
		store[date] = entry.Day()
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade entries: %w", err)
	}

	return store, nil
}

// Save creates or overwrites the entry for one date wholesale. The document
// stores the date key redundantly plus a JST civil-time updatedAt timestamp.
func (r *EntryRepository) Save(ctx context.Context, userID, dateKey string, day domain.TradeDay) error {
	if _, err := jst.ParseKey(dateKey); err != nil {
		return err
	}

	updatedAt := jst.Timestamp()
	entry := domain.TradeEntry{
		Date:          dateKey,
		PnL:           day.PnL,
		RulesFollowed: day.RulesFollowed,
		Memo:          day.Memo,
		Deleted:       day.Deleted,
		UpdatedAt:     updatedAt,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal trade entry: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO trade_entries (user_id, date, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, userID, dateKey, data, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to save trade entry %s: %w", dateKey, err)
	}
	return nil
}

// Delete removes the underlying record entirely. Save-with-null in the
// client maps to this hard delete; the deleted flag filtering in Range stays
// in place regardless.
func (r *EntryRepository) Delete(ctx context.Context, userID, dateKey string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM trade_entries WHERE user_id = ? AND date = ?", userID, dateKey)
	if err != nil {
		return fmt.Errorf("failed to delete trade entry %s: %w", dateKey, err)
	}
	return nil
}

var _ domain.EntryStore = (*EntryRepository)(nil)
