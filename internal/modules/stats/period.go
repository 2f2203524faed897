// Package stats computes the journal's aggregated statistics: per-period
// summaries, rolling windows, calendar summaries, the cumulative P&L series
// and the extended metrics behind the achievements view.
//
// Aggregations never fail: empty or missing input degenerates to zero-valued
// output. Inputs are assumed to be already filtered of deleted records (the
// store adapter guarantees this); collect re-applies the filter defensively
// since double-counting cleared days is the one invariant violation that
// corrupts every figure downstream.
package stats

import (
	"sort"

	"github.com/jstrader/tradejournal/internal/domain"
)

// dated pairs a trade day with its date key for window filtering and
// ordered folds.
type dated struct {
	key string
	day domain.TradeDay
}

// collect flattens a store into date-sorted records, dropping deleted ones.
func collect(store domain.TradeDataStore) []dated {
	records := make([]dated, 0, len(store))
	for key, day := range store {
		if day.Deleted {
			continue
		}
		records = append(records, dated{key: key, day: day})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].key < records[j].key })
	return records
}

// Calculate is the primary period aggregator.
//
// winRate counts records with pnl > 0 against ALL records: a breakeven day
// is a non-win that still occupies the denominator. ruleAdherence is
// rule-weighted - days with more rules contribute proportionally more.
func Calculate(records []domain.TradeDay) domain.PeriodStats {
	if len(records) == 0 {
		return domain.PeriodStats{}
	}

	var totalPnL, wins, totalRules, followedRules int
	for _, day := range records {
		if day.Deleted {
			continue
		}
		totalPnL += day.PnL
		if day.PnL > 0 {
			wins++
		}
		for _, rule := range day.RulesFollowed {
			totalRules++
			if rule.Followed {
				followedRules++
			}
		}
	}

	stats := domain.PeriodStats{
		TotalPnL:    totalPnL,
		TradingDays: countLive(records),
	}
	if stats.TradingDays > 0 {
		stats.WinRate = float64(wins) / float64(stats.TradingDays) * 100
	}
	if totalRules > 0 {
		stats.RuleAdherence = float64(followedRules) / float64(totalRules) * 100
	}
	return stats
}

// CalculateCalendar is the policy-divergent variant used by the monthly and
// yearly calendar summaries.
//
// winRate and tradingDays consider only records with pnl != 0 (exact
// breakeven days are excluded from both numerator and denominator), while
// totalPnL and ruleAdherence cover every record in scope. The asymmetry is
// deliberate and must not be unified with Calculate.
func CalculateCalendar(records []domain.TradeDay) domain.PeriodStats {
	if len(records) == 0 {
		return domain.PeriodStats{}
	}

	var totalPnL, activeDays, wins, totalRules, followedRules int
	for _, day := range records {
		if day.Deleted {
			continue
		}
		totalPnL += day.PnL
		if day.PnL != 0 {
			activeDays++
			if day.PnL > 0 {
				wins++
			}
		}
		for _, rule := range day.RulesFollowed {
			totalRules++
			if rule.Followed {
				followedRules++
			}
		}
	}

	stats := domain.PeriodStats{
		TotalPnL:    totalPnL,
		TradingDays: activeDays,
	}
	if activeDays > 0 {
		stats.WinRate = float64(wins) / float64(activeDays) * 100
	}
	if totalRules > 0 {
		stats.RuleAdherence = float64(followedRules) / float64(totalRules) * 100
	}
	return stats
}

// countLive counts non-deleted records.
func countLive(records []domain.TradeDay) int {
	n := 0
	for _, day := range records {
		if !day.Deleted {
			n++
		}
	}
	return n
}

// days projects dated records to their TradeDay values.
func days(records []dated) []domain.TradeDay {
	out := make([]domain.TradeDay, len(records))
	for i, r := range records {
		out[i] = r.day
	}
	return out
}
