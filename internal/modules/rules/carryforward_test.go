package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrader/tradejournal/internal/domain"
)

func TestCarryForward_IdempotentOnSavedDay(t *testing.T) {
	saved := []domain.TradeRule{
		{Name: "損切りは-2%で", Followed: false},
		{Name: "ポジションは3つまで", Followed: true},
	}
	store := domain.TradeDataStore{
		"2024-05-10": {PnL: 1200, RulesFollowed: saved},
	}

	got := CarryForward(store, "2024-05-10")

	// Exactly the saved list, followed flags untouched.
	assert.Equal(t, saved, got)
	assert.False(t, got[0].Followed)
}

func TestCarryForward_ProposesMostRecentPriorRules(t *testing.T) {
	store := domain.TradeDataStore{
		"2024-05-01": {PnL: 100, RulesFollowed: []domain.TradeRule{{Name: "old", Followed: true}}},
		"2024-05-08": {PnL: -50, RulesFollowed: []domain.TradeRule{
			{Name: "A", Followed: false},
			{Name: "B", Followed: true},
		}},
		"2024-05-12": {PnL: 30, RulesFollowed: []domain.TradeRule{{Name: "later", Followed: true}}},
	}

	// 2024-05-10 has no entry; 2024-05-08 is the nearest prior date.
	got := CarryForward(store, "2024-05-10")

	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
	// All flags forced true regardless of the prior day's violations.
	assert.True(t, got[0].Followed)
	assert.True(t, got[1].Followed)
}

func TestCarryForward_DoesNotMutateSource(t *testing.T) {
	store := domain.TradeDataStore{
		"2024-05-08": {PnL: -50, RulesFollowed: []domain.TradeRule{{Name: "A", Followed: false}}},
	}

	_ = CarryForward(store, "2024-05-10")

	assert.False(t, store["2024-05-08"].RulesFollowed[0].Followed, "prior day's flags must stay untouched")
}

func TestCarryForward_DefaultRuleWhenNoPrior(t *testing.T) {
	store := domain.TradeDataStore{
		// Only later dates exist.
		"2024-06-01": {PnL: 10, RulesFollowed: []domain.TradeRule{{Name: "X", Followed: true}}},
	}

	got := CarryForward(store, "2024-05-10")

	require.Len(t, got, 1)
	assert.Equal(t, DefaultRuleName, got[0].Name)
	assert.True(t, got[0].Followed)
}

func TestCarryForward_SkipsEmptyRuleLists(t *testing.T) {
	store := domain.TradeDataStore{
		"2024-05-09": {PnL: 0},
		"2024-05-07": {PnL: 5, RulesFollowed: []domain.TradeRule{{Name: "keep", Followed: false}}},
	}

	got := CarryForward(store, "2024-05-10")

	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].Name)
	assert.True(t, got[0].Followed)
}

func TestCarryForward_CrossesMonthBoundary(t *testing.T) {
	store := domain.TradeDataStore{
		"2024-04-30": {PnL: 800, RulesFollowed: []domain.TradeRule{{Name: "from-april", Followed: true}}},
	}

	got := CarryForward(store, "2024-05-01")

	require.Len(t, got, 1)
	assert.Equal(t, "from-april", got[0].Name)
}
