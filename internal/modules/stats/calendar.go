package stats

import (
	"strings"
	"time"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/jst"
)

// MonthlyStats summarizes one civil month for the calendar view, using the
// calendar aggregator variant (breakeven days excluded from win rate and
// trading-day count, included in total P&L and rule adherence).
func MonthlyStats(store domain.TradeDataStore, year int, month time.Month) domain.PeriodStats {
	start, end := jst.MonthRange(year, month)
	return CalculateCalendar(days(between(collect(store), start, end)))
}

// YearlyStats summarizes one calendar year for the profile view, calendar
// variant.
func YearlyStats(store domain.TradeDataStore, year int) domain.PeriodStats {
	start, end := jst.YearRange(year)
	return CalculateCalendar(days(between(collect(store), start, end)))
}

// MonthlyPnLBuckets returns total P&L per YYYY-MM bucket, date-sorted.
// Feeds the profitable-month streak in the extended metrics.
func MonthlyPnLBuckets(store domain.TradeDataStore) ([]string, []int) {
	records := collect(store)

	var months []string
	totals := make(map[string]int)
	for _, r := range records {
		monthKey := r.key[:strings.LastIndex(r.key, "-")]
		if _, seen := totals[monthKey]; !seen {
			months = append(months, monthKey)
		}
		totals[monthKey] += r.day.PnL
	}

	sums := make([]int, len(months))
	for i, m := range months {
		sums[i] = totals[m]
	}
	return months, sums
}

// between filters date-sorted records to start <= key <= end.
func between(records []dated, start, end string) []dated {
	filtered := since(records, start)
	hi := len(filtered)
	for hi > 0 && filtered[hi-1].key > end {
		hi--
	}
	return filtered[:hi]
}
