// Package domain contains the pure data model of the trading journal.
// The domain layer has no infrastructure dependencies; repositories and
// services operate on these types and the interfaces in interfaces.go.
package domain

// TradeRule is a single self-defined trading rule checked for one day.
// Rules have no identity beyond their position in the owning day's list;
// order is display order only. The UI bounds a day's list to 1-7 rules, the
// data model does not enforce it.
type TradeRule struct {
	Name     string `json:"name" msgpack:"name"`
	Followed bool   `json:"followed" msgpack:"followed"`
}

// TradeDay is one journal record for one JST calendar date.
// The record is created or overwritten wholesale on save; there are no
// partial field updates. Records flagged Deleted are excluded from every
// read-side computation.
type TradeDay struct {
	PnL           int         `json:"pnl" msgpack:"pnl"`
	RulesFollowed []TradeRule `json:"rulesFollowed" msgpack:"rulesFollowed"`
	Memo          string      `json:"memo,omitempty" msgpack:"memo,omitempty"`
	Deleted       bool        `json:"deleted,omitempty" msgpack:"deleted,omitempty"`
}

// TradeEntry is the persisted form of a TradeDay: the date key is stored
// redundantly in the document, plus a JST civil-time updatedAt timestamp.
type TradeEntry struct {
	Date          string      `json:"date"`
	PnL           int         `json:"pnl"`
	RulesFollowed []TradeRule `json:"rulesFollowed"`
	Memo          string      `json:"memo,omitempty"`
	Deleted       bool        `json:"deleted,omitempty"`
	UpdatedAt     string      `json:"updatedAt"`
}

// Day projects the persisted entry back to its in-memory TradeDay form.
func (e TradeEntry) Day() TradeDay {
	return TradeDay{
		PnL:           e.PnL,
		RulesFollowed: e.RulesFollowed,
		Memo:          e.Memo,
		Deleted:       e.Deleted,
	}
}

// TradeDataStore maps date keys (YYYY-MM-DD) to trade days. It is a
// transient read-side projection, re-fetched and re-merged on navigation,
// never persisted as a whole.
type TradeDataStore map[string]TradeDay

// Clone returns a shallow copy of the store. Aggregations operate on
// immutable snapshots, so callers hand out clones rather than live maps.
func (s TradeDataStore) Clone() TradeDataStore {
	out := make(TradeDataStore, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// UserProfile is the per-user profile document. It is created at sign-up,
// updated with partial-merge semantics, and never deleted by the app.
type UserProfile struct {
	Name          string `json:"name"`
	Bio           string `json:"bio"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// ProfileUpdate carries a partial profile edit. Nil fields are preserved on
// merge.
type ProfileUpdate struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
}

// PeriodStats is an immutable summary of one time window. It is always
// recomputed from a TradeDataStore slice, never stored.
type PeriodStats struct {
	TotalPnL      int     `json:"totalPnL"`
	WinRate       float64 `json:"winRate"`       // percent, 0-100
	TradingDays   int     `json:"tradingDays"`   // one record = one trading day
	RuleAdherence float64 `json:"ruleAdherence"` // percent, 0-100, rule-weighted
}

// TradeStats bundles the five fixed rolling windows plus the account size
// constant used by the stats view.
type TradeStats struct {
	OneMonthStats    PeriodStats `json:"oneMonthStats"`
	ThreeMonthsStats PeriodStats `json:"threeMonthsStats"`
	SixMonthsStats   PeriodStats `json:"sixMonthsStats"`
	OneYearStats     PeriodStats `json:"oneYearStats"`
	TotalStats       PeriodStats `json:"totalStats"`
	AccountSize      int         `json:"accountSize"`
}

// AccountSize is the fixed account size reported with TradeStats.
const AccountSize = 1_000_000

// SeriesPoint is one point of the cumulative P&L chart series.
type SeriesPoint struct {
	Date       string  `json:"date"`
	Cumulative int     `json:"cumulative"`
	Smoothed   float64 `json:"smoothed,omitempty"`
}

// ExtendedStats holds the longer-horizon metrics consumed by the
// achievements view: it extends the all-time PeriodStats with risk and
// streak figures.
type ExtendedStats struct {
	PeriodStats
	ProfitLossRatio      float64 `json:"profitLossRatio"`      // avg win / avg loss magnitude
	MonthlyPnL           int     `json:"monthlyPnL"`           // current JST civil month
	YearlyPnL            int     `json:"yearlyPnL"`            // current JST calendar year
	ProfitableMonthStrk  int     `json:"consecutiveProfitableMonths"`
	MaxConsecutiveWins   int     `json:"maxConsecutiveWins"`
	DailyPnLVolatility   float64 `json:"dailyPnLVolatility"`   // stddev of daily P&L
	MaxDrawdown          int     `json:"maxDrawdown"`          // peak-to-trough of cumulative P&L
}
