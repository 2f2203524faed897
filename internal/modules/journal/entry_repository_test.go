package journal

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

func setupEntriesDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TABLE trade_entries (
			user_id    TEXT NOT NULL,
			date       TEXT NOT NULL,
			data       TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (user_id, date)
		)
	`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func TestEntryRepository_SaveAndRange(t *testing.T) {
	repo := NewEntryRepository(setupEntriesDB(t), zerolog.Nop())
	ctx := context.Background()

	day := domain.TradeDay{
		PnL:           1500,
		RulesFollowed: []domain.TradeRule{{Name: "損切りを守る", Followed: true}},
		Memo:          "朝一のブレイクアウトのみ",
	}
	require.NoError(t, repo.Save(ctx, "user-1", "2024-05-10", day))

	store, err := repo.Range(ctx, "user-1", "", "")
	require.NoError(t, err)
	require.Len(t, store, 1)
	assert.Equal(t, day, store["2024-05-10"])
}

func TestEntryRepository_SaveOverwritesWholesale(t *testing.T) {
	repo := NewEntryRepository(setupEntriesDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "user-1", "2024-05-10", domain.TradeDay{
		PnL:  100,
		Memo: "first",
		RulesFollowed: []domain.TradeRule{
			{Name: "A", Followed: true},
			{Name: "B", Followed: false},
		},
	}))
	require.NoError(t, repo.Save(ctx, "user-1", "2024-05-10", domain.TradeDay{PnL: -50}))

	store, err := repo.Range(ctx, "user-1", "", "")
	require.NoError(t, err)
	require.Len(t, store, 1)

	// The second save replaces the document; nothing merges through.
	assert.Equal(t, -50, store["2024-05-10"].PnL)
	assert.Empty(t, store["2024-05-10"].Memo)
	assert.Empty(t, store["2024-05-10"].RulesFollowed)
}

func TestEntryRepository_RangeBoundsAreInclusive(t *testing.T) {
	repo := NewEntryRepository(setupEntriesDB(t), zerolog.Nop())
	ctx := context.Background()

	for _, key := range []string{"2024-04-30", "2024-05-01", "2024-05-31", "2024-06-01"} {
		require.NoError(t, repo.Save(ctx, "user-1", key, domain.TradeDay{PnL: 1}))
	}

	store, err := repo.Range(ctx, "user-1", "2024-05-01", "2024-05-31")
	require.NoError(t, err)

	assert.Len(t, store, 2)
	assert.Contains(t, store, "2024-05-01")
	assert.Contains(t, store, "2024-05-31")
}

func TestEntryRepository_RangeIsScopedToUser(t *testing.T) {
	repo := NewEntryRepository(setupEntriesDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "user-1", "2024-05-10", domain.TradeDay{PnL: 100}))
	require.NoError(t, repo.Save(ctx, "user-2", "2024-05-10", domain.TradeDay{PnL: 999}))

	store, err := repo.Range(ctx, "user-1", "", "")
	require.NoError(t, err)

	require.Len(t, store, 1)
	assert.Equal(t, 100, store["2024-05-10"].PnL)
}

func TestEntryRepository_DeletedFlagExcludedFromReads(t *testing.T) {
	repo := NewEntryRepository(setupEntriesDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "user-1", "2024-05-10", domain.TradeDay{PnL: 100}))
	require.NoError(t, repo.Save(ctx, "user-1", "2024-05-11", domain.TradeDay{PnL: 999, Deleted: true}))

	store, err := repo.Range(ctx, "user-1", "", "")
	require.NoError(t, err)

	require.Len(t, store, 1)
	assert.NotContains(t, store, "2024-05-11")
}

func TestEntryRepository_DeleteIsHard(t *testing.T) {
	db := setupEntriesDB(t)
	repo := NewEntryRepository(db, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "user-1", "2024-05-10", domain.TradeDay{PnL: 100}))
	require.NoError(t, repo.Delete(ctx, "user-1", "2024-05-10"))

	// The row is gone, not just flagged.
	var count int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM trade_entries WHERE user_id = ? AND date = ?",
		"user-1", "2024-05-10").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestEntryRepository_SkipsMalformedDocuments(t *testing.T) {
	db := setupEntriesDB(t)
	repo := NewEntryRepository(db, zerolog.Nop())
	ctx := context.Background()

	_, err := db.Exec(`
		INSERT INTO trade_entries (user_id, date, data, updated_at)
		VALUES (?, ?, ?, ?)
	`, "user-1", "2024-05-09", "{not json", "2024-05-09T00:00:00+09:00")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "user-1", "2024-05-10", domain.TradeDay{PnL: 100}))

	store, err := repo.Range(ctx, "user-1", "", "")
	require.NoError(t, err)

	require.Len(t, store, 1)
	assert.Contains(t, store, "2024-05-10")
}

func TestEntryRepository_SaveRejectsBadDateKey(t *testing.T) {
	repo := NewEntryRepository(setupEntriesDB(t), zerolog.Nop())

	err := repo.Save(context.Background(), "user-1", "05/10/2024", domain.TradeDay{PnL: 1})
	assert.Error(t, err)
}
