package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/jst"
)

func TestCumulativeSeries_SortsBeforeFolding(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, jst.Zone)

	// Map iteration order is unspecified; the fold must sort first.
	store := domain.TradeDataStore{
		"2024-01-03": {PnL: 50},
		"2024-01-01": {PnL: 100},
		"2024-01-02": {PnL: -20},
	}

	points := CumulativeSeriesAt(store, now)

	require.Len(t, points, 3)
	assert.Equal(t, "2024-01-01", points[0].Date)
	assert.Equal(t, 100, points[0].Cumulative)
	assert.Equal(t, "2024-01-02", points[1].Date)
	assert.Equal(t, 80, points[1].Cumulative)
	assert.Equal(t, "2024-01-03", points[2].Date)
	assert.Equal(t, 130, points[2].Cumulative)
}

func TestCumulativeSeries_TrailingYearOnly(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, jst.Zone)

	store := domain.TradeDataStore{
		jst.DateKey(now.Add(-400 * 24 * time.Hour)): {PnL: 999}, // too old
		jst.DateKey(now.Add(-10 * 24 * time.Hour)):  {PnL: 10},
	}

	points := CumulativeSeriesAt(store, now)

	require.Len(t, points, 1)
	assert.Equal(t, 10, points[0].Cumulative)
}

func TestCumulativeSeries_SkipsDeleted(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, jst.Zone)
	store := domain.TradeDataStore{
		"2024-01-01": {PnL: 100},
		"2024-01-02": {PnL: 1_000_000, Deleted: true},
		"2024-01-03": {PnL: -30},
	}

	points := CumulativeSeriesAt(store, now)

	require.Len(t, points, 2)
	assert.Equal(t, 70, points[1].Cumulative)
}

func TestCumulativeSeries_EmptyStore(t *testing.T) {
	points := CumulativeSeriesAt(domain.TradeDataStore{}, time.Now())
	assert.Empty(t, points)
}

func TestCumulativeSeries_SmoothingOverlayPresent(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, jst.Zone)

	store := domain.TradeDataStore{}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, jst.Zone)
	for i := 0; i < 10; i++ {
		store[jst.DateKey(day.AddDate(0, 0, i))] = domain.TradeDay{PnL: 100}
	}

	points := CumulativeSeriesAt(store, now)

	require.Len(t, points, 10)
	// Past the warm-up window the EMA tracks the series.
	assert.NotZero(t, points[len(points)-1].Smoothed)
}
