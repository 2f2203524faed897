package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/jstrader/tradejournal/internal/domain"
)

// MonthCacheTTL bounds staleness of cached month snapshots. The cache only
// short-circuits repeat navigation within a session; saves invalidate the
// affected month immediately.
const MonthCacheTTL = 10 * time.Minute

// MonthCache persists per-(user, month) snapshots of trade data in cache.db.
// Snapshots are msgpack blobs with an expiry; writes are last-fetch-wins per
// key, which makes overwrite behavior auditable in isolation from UI code.
type MonthCache struct {
	db *sql.DB
}

// NewMonthCache creates a new month cache over cache.db.
func NewMonthCache(db *sql.DB) *MonthCache {
	return &MonthCache{db: db}
}

// Get returns the cached snapshot for a month key, or (nil, false) on miss
// or expiry.
func (c *MonthCache) Get(userID, monthKey string) (domain.TradeDataStore, bool) {
	var data []byte
	var expiresAt int64
	err := c.db.QueryRow(`
		SELECT data, expires_at FROM month_cache
		WHERE user_id = ? AND month_key = ?
	`, userID, monthKey).Scan(&data, &expiresAt)
	if err != nil {
		return nil, false
	}
	if time.Now().Unix() > expiresAt {
		return nil, false
	}

	var store domain.TradeDataStore
	if err := msgpack.Unmarshal(data, &store); err != nil {
		return nil, false
	}
	return store, true
}

// Put stores a month snapshot, replacing any previous snapshot for the key.
func (c *MonthCache) Put(userID, monthKey string, store domain.TradeDataStore) error {
	data, err := msgpack.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to encode month snapshot: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO month_cache (user_id, month_key, data, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, month_key) DO UPDATE SET
			data = excluded.data,
			expires_at = excluded.expires_at
	`, userID, monthKey, data, time.Now().Add(MonthCacheTTL).Unix())
	if err != nil {
		return fmt.Errorf("failed to store month snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot for one month key. Called after every save
// and delete so the next fetch reflects the write.
func (c *MonthCache) Invalidate(userID, monthKey string) error {
	_, err := c.db.Exec(
		"DELETE FROM month_cache WHERE user_id = ? AND month_key = ?", userID, monthKey)
	if err != nil {
		return fmt.Errorf("failed to invalidate month snapshot: %w", err)
	}
	return nil
}

// PurgeExpired removes expired snapshots and returns the number purged.
// Run periodically by the cache cleanup job.
func (c *MonthCache) PurgeExpired() (int64, error) {
	res, err := c.db.Exec("DELETE FROM month_cache WHERE expires_at < ?", time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired month snapshots: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
