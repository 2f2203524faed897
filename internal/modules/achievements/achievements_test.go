package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrader/tradejournal/internal/domain"
)

func findStatus(t *testing.T, statuses []Status, id string) Status {
	t.Helper()
	for _, s := range statuses {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("achievement %q not in result", id)
	return Status{}
}

func TestEvaluate_CoversWholeCatalog(t *testing.T) {
	statuses := Evaluate(domain.ExtendedStats{})
	require.Len(t, statuses, len(Catalog))
}

func TestEvaluate_ConsistencyTiers(t *testing.T) {
	stats := domain.ExtendedStats{
		PeriodStats: domain.PeriodStats{TradingDays: 30},
	}
	statuses := Evaluate(stats)

	assert.True(t, findStatus(t, statuses, "rookie-trader").Unlocked)
	assert.True(t, findStatus(t, statuses, "persistent-trader").Unlocked)
	assert.False(t, findStatus(t, statuses, "master-of-persistence").Unlocked)
	assert.InDelta(t, 30.0, findStatus(t, statuses, "master-of-persistence").Progress, 1e-9)
}

func TestEvaluate_ProgressCappedAtHundred(t *testing.T) {
	stats := domain.ExtendedStats{
		PeriodStats: domain.PeriodStats{TradingDays: 500},
	}
	statuses := Evaluate(stats)

	assert.InDelta(t, 100.0, findStatus(t, statuses, "rookie-trader").Progress, 1e-9)
}

func TestEvaluate_YearlyProfitNeedsVolume(t *testing.T) {
	// Positive year alone is not enough without 100 trading days.
	statuses := Evaluate(domain.ExtendedStats{
		PeriodStats: domain.PeriodStats{TradingDays: 50},
		YearlyPnL:   10_000,
	})
	assert.False(t, findStatus(t, statuses, "profit-legend").Unlocked)

	statuses = Evaluate(domain.ExtendedStats{
		PeriodStats: domain.PeriodStats{TradingDays: 120},
		YearlyPnL:   10_000,
	})
	assert.True(t, findStatus(t, statuses, "profit-legend").Unlocked)
}

func TestEvaluate_UnlockedWithoutProgressFuncReportsFull(t *testing.T) {
	statuses := Evaluate(domain.ExtendedStats{MonthlyPnL: 1})
	got := findStatus(t, statuses, "profit-seed")

	assert.True(t, got.Unlocked)
	assert.InDelta(t, 100.0, got.Progress, 1e-9)
}

func TestEvaluate_RiskRatioProgress(t *testing.T) {
	statuses := Evaluate(domain.ExtendedStats{ProfitLossRatio: 1.5})

	assert.True(t, findStatus(t, statuses, "risk-apprentice").Unlocked)
	assert.InDelta(t, 75.0, findStatus(t, statuses, "risk-sage").Progress, 1e-9)
	assert.InDelta(t, 50.0, findStatus(t, statuses, "risk-master").Progress, 1e-9)
}
