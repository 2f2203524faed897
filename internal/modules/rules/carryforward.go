// Package rules implements the rule carry-forward proposal: seeding a new
// day's checklist from the most recent prior day's rule set.
package rules

import (
	"sort"

	"github.com/jstrader/tradejournal/internal/domain"
)

// DefaultRuleName is the placeholder name for a brand-new rule, matching the
// checklist the UI seeds for first-time users.
const DefaultRuleName = "新しいルール"

// NewDefaultRule returns the single starter rule used when no prior rule set
// exists.
func NewDefaultRule() domain.TradeRule {
	return domain.TradeRule{Name: DefaultRuleName, Followed: true}
}

// CarryForward proposes the rule checklist for a target date.
//
// If the target date already has a saved entry with a non-empty rule list,
// that list is returned unchanged (idempotent load). Otherwise the most
// recent prior date in the store with a non-empty rule list supplies the
// names, with every followed flag forced to true: a new day assumes
// compliance rather than carrying forward violation state. With no prior
// record at all, a single default rule is returned.
//
// The store passed in must already exclude deleted records (the store
// adapter guarantees this) and should cover at least the preceding month so
// proposals survive month boundaries.
func CarryForward(store domain.TradeDataStore, targetKey string) []domain.TradeRule {
	if day, ok := store[targetKey]; ok && len(day.RulesFollowed) > 0 {
		return day.RulesFollowed
	}

	// Most recent prior date: lexicographic order on canonical date keys is
	// chronological order.
	var keys []string
	for key, day := range store {
		if key < targetKey && len(day.RulesFollowed) > 0 {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return []domain.TradeRule{NewDefaultRule()}
	}
	sort.Strings(keys)
	latest := keys[len(keys)-1]

	prior := store[latest].RulesFollowed
	proposed := make([]domain.TradeRule, len(prior))
	for i, rule := range prior {
		proposed[i] = domain.TradeRule{Name: rule.Name, Followed: true}
	}
	return proposed
}
