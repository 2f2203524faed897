package stats

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/jst"
)

// ExtendedStatsAt computes the longer-horizon metrics behind the
// achievements view from an all-time store snapshot, as of the given
// instant. Like every aggregator here it never fails; an empty store yields
// zero values throughout.
func ExtendedStatsAt(store domain.TradeDataStore, now time.Time) domain.ExtendedStats {
	records := collect(store)

	ext := domain.ExtendedStats{
		PeriodStats: Calculate(days(records)),
	}
	if len(records) == 0 {
		return ext
	}

	// Profit/loss ratio: mean win over mean loss magnitude.
	var wins, losses []float64
	daily := make([]float64, 0, len(records))
	for _, r := range records {
		pnl := float64(r.day.PnL)
		daily = append(daily, pnl)
		switch {
		case r.day.PnL > 0:
			wins = append(wins, pnl)
		case r.day.PnL < 0:
			losses = append(losses, -pnl)
		}
	}
	if len(wins) > 0 && len(losses) > 0 {
		ext.ProfitLossRatio = stat.Mean(wins, nil) / stat.Mean(losses, nil)
	}
	if len(daily) > 1 {
		ext.DailyPnLVolatility = stat.StdDev(daily, nil)
	}

	// Current-month and current-year P&L under the JST civil calendar.
	civil := jst.ToCivilDate(now)
	monthStart, monthEnd := jst.MonthRange(civil.Year, civil.Month)
	for _, r := range between(records, monthStart, monthEnd) {
		ext.MonthlyPnL += r.day.PnL
	}
	yearStart, yearEnd := jst.YearRange(civil.Year)
	for _, r := range between(records, yearStart, yearEnd) {
		ext.YearlyPnL += r.day.PnL
	}

	// Trailing streak of profitable months, ending at the most recent month
	// with any entries.
	_, monthlySums := MonthlyPnLBuckets(store)
	for i := len(monthlySums) - 1; i >= 0; i-- {
		if monthlySums[i] <= 0 {
			break
		}
		ext.ProfitableMonthStrk++
	}

	// Longest run of consecutive winning days, in date order.
	run := 0
	for _, r := range records {
		if r.day.PnL > 0 {
			run++
			if run > ext.MaxConsecutiveWins {
				ext.MaxConsecutiveWins = run
			}
		} else {
			run = 0
		}
	}

	// Max drawdown of the cumulative P&L curve (peak-to-trough).
	running, peak := 0, 0
	for _, r := range records {
		running += r.day.PnL
		if running > peak {
			peak = running
		}
		if dd := peak - running; dd > ext.MaxDrawdown {
			ext.MaxDrawdown = dd
		}
	}

	return ext
}

// ExtendedStats computes the extended metrics as of the current time.
func ExtendedStats(store domain.TradeDataStore) domain.ExtendedStats {
	return ExtendedStatsAt(store, time.Now())
}
