package stats

import (
	"time"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/jst"
)

// Window lengths are raw durations, not calendar months: "3 months" is
// literally 90 x 24h from now.
const (
	oneMonth    = 30 * 24 * time.Hour
	threeMonths = 90 * 24 * time.Hour
	sixMonths   = 180 * 24 * time.Hour
	oneYear     = 365 * 24 * time.Hour
)

// TradeStatsAt computes the five fixed rolling-window summaries from a store
// snapshot, as of the given instant. Window membership is decided on JST
// civil dates: a record whose date key is on or after the window start's
// civil date is included, so a record dated exactly 30x24h before now lands
// inside the one-month window.
func TradeStatsAt(store domain.TradeDataStore, now time.Time) domain.TradeStats {
	records := collect(store)

	cut := func(window time.Duration) string {
		return jst.DateKey(now.Add(-window))
	}

	return domain.TradeStats{
		OneMonthStats:    Calculate(days(since(records, cut(oneMonth)))),
		ThreeMonthsStats: Calculate(days(since(records, cut(threeMonths)))),
		SixMonthsStats:   Calculate(days(since(records, cut(sixMonths)))),
		OneYearStats:     Calculate(days(since(records, cut(oneYear)))),
		TotalStats:       Calculate(days(records)),
		AccountSize:      domain.AccountSize,
	}
}

// TradeStats computes the rolling-window summaries as of the current time.
func TradeStats(store domain.TradeDataStore) domain.TradeStats {
	return TradeStatsAt(store, time.Now())
}

// since filters date-sorted records to those with key >= startKey.
// Lexicographic comparison on canonical date keys is chronological.
func since(records []dated, startKey string) []dated {
	// records are sorted ascending; binary search for the boundary.
	lo, hi := 0, len(records)
	for lo < hi {
		mid := (lo + hi) / 2
		if records[mid].key < startKey {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return records[lo:]
}
