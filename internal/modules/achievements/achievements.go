// Package achievements evaluates the gamified milestone catalog against a
// user's extended journal statistics.
package achievements

import (
	"github.com/jstrader/tradejournal/internal/domain"
)

// Category groups achievements in the profile view.
type Category string

const (
	CategoryConsistency Category = "consistency"
	CategoryRisk        Category = "risk"
	CategoryRules       Category = "rules"
	CategoryProfit      Category = "profit"
	CategorySpecial     Category = "special"
)

// Difficulty is the display tier of an achievement.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyExpert       Difficulty = "expert"
)

// Achievement is one catalog entry. Condition decides unlock state;
// Progress (optional) reports completion toward it in percent, capped at
// 100.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Difficulty  Difficulty
	Condition   func(domain.ExtendedStats) bool
	Progress    func(domain.ExtendedStats) float64
}

// Status is an evaluated achievement for one user.
type Status struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Unlocked    bool       `json:"unlocked"`
	Progress    float64    `json:"progress"`
}

// Evaluate runs the whole catalog against the given stats.
func Evaluate(stats domain.ExtendedStats) []Status {
	out := make([]Status, 0, len(Catalog))
	for _, a := range Catalog {
		s := Status{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Category:    a.Category,
			Difficulty:  a.Difficulty,
			Unlocked:    a.Condition(stats),
		}
		if a.Progress != nil {
			s.Progress = a.Progress(stats)
		} else if s.Unlocked {
			s.Progress = 100
		}
		out = append(out, s)
	}
	return out
}

// ratio caps a progress fraction at 100 percent.
func ratio(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := value / target * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
