package stats

import (
	"time"

	"github.com/markcheno/go-talib"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/jst"
)

// smoothingPeriod is the EMA window applied to the cumulative series for the
// chart overlay.
const smoothingPeriod = 7

// CumulativeSeriesAt folds the trailing-365-day slice of a store into a
// running P&L sum keyed by date, as of the given instant.
//
// The fold is order-sensitive: entries are sorted by date key ascending
// before summing, since store iteration order is not guaranteed. When enough
// points exist, each point also carries an EMA-smoothed value for the chart
// overlay.
func CumulativeSeriesAt(store domain.TradeDataStore, now time.Time) []domain.SeriesPoint {
	startKey := jst.DateKey(now.Add(-oneYear))
	records := since(collect(store), startKey)
	if len(records) == 0 {
		return []domain.SeriesPoint{}
	}

	points := make([]domain.SeriesPoint, len(records))
	running := 0
	for i, r := range records {
		running += r.day.PnL
		points[i] = domain.SeriesPoint{Date: r.key, Cumulative: running}
	}

	// EMA overlay; talib returns zeros for the warm-up prefix, which the
	// chart omits.
	if len(points) >= smoothingPeriod {
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = float64(p.Cumulative)
		}
		smoothed := talib.Ema(values, smoothingPeriod)
		for i := range points {
			points[i].Smoothed = smoothed[i]
		}
	}

	return points
}

// CumulativeSeries folds the trailing year as of the current time.
func CumulativeSeries(store domain.TradeDataStore) []domain.SeriesPoint {
	return CumulativeSeriesAt(store, time.Now())
}
