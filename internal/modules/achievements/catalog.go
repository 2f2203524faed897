package achievements

import "github.com/jstrader/tradejournal/internal/domain"

// Catalog is the full set of unlockable milestones. Thresholds operate on
// the all-time extended statistics.
var Catalog = []Achievement{
	// Consistency.
	{
		ID:          "rookie-trader",
		Title:       "駆け出しトレーダー",
		Description: "10日以上の取引を達成",
		Category:    CategoryConsistency,
		Difficulty:  DifficultyBeginner,
		Condition:   func(s domain.ExtendedStats) bool { return s.TradingDays >= 10 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(float64(s.TradingDays), 10) },
	},
	{
		ID:          "persistent-trader",
		Title:       "情熱の継続者",
		Description: "30日以上の取引を達成",
		Category:    CategoryConsistency,
		Difficulty:  DifficultyIntermediate,
		Condition:   func(s domain.ExtendedStats) bool { return s.TradingDays >= 30 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(float64(s.TradingDays), 30) },
	},
	{
		ID:          "master-of-persistence",
		Title:       "不屈の継続王",
		Description: "100日以上の取引を達成",
		Category:    CategoryConsistency,
		Difficulty:  DifficultyExpert,
		Condition:   func(s domain.ExtendedStats) bool { return s.TradingDays >= 100 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(float64(s.TradingDays), 100) },
	},

	// Risk management.
	{
		ID:          "risk-apprentice",
		Title:       "リスクの芽生え",
		Description: "平均利益が平均損失の1.5倍以上を達成",
		Category:    CategoryRisk,
		Difficulty:  DifficultyBeginner,
		Condition:   func(s domain.ExtendedStats) bool { return s.ProfitLossRatio >= 1.5 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(s.ProfitLossRatio, 1.5) },
	},
	{
		ID:          "risk-sage",
		Title:       "損小利大の賢者",
		Description: "平均利益が平均損失の2倍以上を達成",
		Category:    CategoryRisk,
		Difficulty:  DifficultyIntermediate,
		Condition:   func(s domain.ExtendedStats) bool { return s.ProfitLossRatio >= 2.0 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(s.ProfitLossRatio, 2.0) },
	},
	{
		ID:          "risk-master",
		Title:       "リスクの支配者",
		Description: "平均利益が平均損失の3倍以上を達成",
		Category:    CategoryRisk,
		Difficulty:  DifficultyExpert,
		Condition:   func(s domain.ExtendedStats) bool { return s.ProfitLossRatio >= 3.0 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(s.ProfitLossRatio, 3.0) },
	},

	// Rule adherence.
	{
		ID:          "rule-novice",
		Title:       "ルールの友",
		Description: "ルール遵守率60%以上を達成",
		Category:    CategoryRules,
		Difficulty:  DifficultyBeginner,
		Condition:   func(s domain.ExtendedStats) bool { return s.RuleAdherence >= 60 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(s.RuleAdherence, 60) },
	},
	{
		ID:          "rule-keeper",
		Title:       "ルールの守護者",
		Description: "ルール遵守率80%以上を達成",
		Category:    CategoryRules,
		Difficulty:  DifficultyIntermediate,
		Condition:   func(s domain.ExtendedStats) bool { return s.RuleAdherence >= 80 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(s.RuleAdherence, 80) },
	},
	{
		ID:          "rule-master",
		Title:       "ルールの化身",
		Description: "ルール遵守率90%以上を達成",
		Category:    CategoryRules,
		Difficulty:  DifficultyExpert,
		Condition:   func(s domain.ExtendedStats) bool { return s.RuleAdherence >= 90 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(s.RuleAdherence, 90) },
	},

	// Profitability.
	{
		ID:          "profit-seed",
		Title:       "収益の種",
		Description: "月間プラスを達成",
		Category:    CategoryProfit,
		Difficulty:  DifficultyBeginner,
		Condition:   func(s domain.ExtendedStats) bool { return s.MonthlyPnL > 0 },
	},
	{
		ID:          "profit-bloom",
		Title:       "収益の開花",
		Description: "3ヶ月連続でプラスを達成",
		Category:    CategoryProfit,
		Difficulty:  DifficultyIntermediate,
		Condition:   func(s domain.ExtendedStats) bool { return s.ProfitableMonthStrk >= 3 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(float64(s.ProfitableMonthStrk), 3) },
	},
	{
		ID:          "profit-legend",
		Title:       "黄金の果実",
		Description: "年間を通してプラスを維持",
		Category:    CategoryProfit,
		Difficulty:  DifficultyExpert,
		Condition: func(s domain.ExtendedStats) bool {
			return s.YearlyPnL > 0 && s.TradingDays >= 100
		},
	},

	// Special.
	{
		ID:          "special-streak",
		Title:       "不敗の一週間",
		Description: "1週間連続で負けなし",
		Category:    CategorySpecial,
		Difficulty:  DifficultyIntermediate,
		Condition:   func(s domain.ExtendedStats) bool { return s.MaxConsecutiveWins >= 5 },
		Progress:    func(s domain.ExtendedStats) float64 { return ratio(float64(s.MaxConsecutiveWins), 5) },
	},
}
