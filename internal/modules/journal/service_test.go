package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/events"
)

// fakeEntryStore is an in-memory EntryStore for service tests.
type fakeEntryStore struct {
	entries  map[string]domain.TradeDay
	rangeErr error
	saveErr  error
	saved    []string
	deleted  []string
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{entries: make(map[string]domain.TradeDay)}
}

func (f *fakeEntryStore) Range(_ context.Context, _ string, start, end string) (domain.TradeDataStore, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	store := make(domain.TradeDataStore)
	for key, day := range f.entries {
		if start != "" && key < start {
			continue
		}
		if end != "" && key > end {
			continue
		}
		store[key] = day
	}
	return store, nil
}

func (f *fakeEntryStore) Save(_ context.Context, _ string, dateKey string, day domain.TradeDay) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries[dateKey] = day
	f.saved = append(f.saved, dateKey)
	return nil
}

func (f *fakeEntryStore) Delete(_ context.Context, _ string, dateKey string) error {
	delete(f.entries, dateKey)
	f.deleted = append(f.deleted, dateKey)
	return nil
}

func TestService_FetchMonthMergesPreviousMonth(t *testing.T) {
	store := newFakeEntryStore()
	store.entries["2024-04-28"] = domain.TradeDay{PnL: 100}
	store.entries["2024-05-02"] = domain.TradeDay{PnL: 200}
	store.entries["2024-03-31"] = domain.TradeDay{PnL: 999} // outside the window

	svc := NewService(store, nil, nil, zerolog.Nop())
	got := svc.FetchMonth(context.Background(), "user-1", 2024, time.May)

	require.Len(t, got, 2)
	assert.Equal(t, 100, got["2024-04-28"].PnL)
	assert.Equal(t, 200, got["2024-05-02"].PnL)
}

func TestService_FetchMonthDegradesToEmptyOnStoreError(t *testing.T) {
	store := newFakeEntryStore()
	store.rangeErr = errors.New("disk on fire")

	svc := NewService(store, nil, nil, zerolog.Nop())
	got := svc.FetchMonth(context.Background(), "user-1", 2024, time.May)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_FetchYearScopesToCalendarYear(t *testing.T) {
	store := newFakeEntryStore()
	store.entries["2023-12-31"] = domain.TradeDay{PnL: 999}
	store.entries["2024-01-01"] = domain.TradeDay{PnL: 10}
	store.entries["2024-12-31"] = domain.TradeDay{PnL: 20}

	svc := NewService(store, nil, nil, zerolog.Nop())
	got := svc.FetchYear(context.Background(), "user-1", 2024)

	assert.Len(t, got, 2)
	assert.NotContains(t, got, "2023-12-31")
}

func TestService_SaveEntryPropagatesStoreError(t *testing.T) {
	store := newFakeEntryStore()
	store.saveErr = errors.New("write failed")

	svc := NewService(store, nil, nil, zerolog.Nop())
	err := svc.SaveEntry(context.Background(), "user-1", "2024-05-10", domain.TradeDay{PnL: 1})

	assert.Error(t, err)
}

func TestService_SaveEntryRejectsBadDateKey(t *testing.T) {
	store := newFakeEntryStore()
	svc := NewService(store, nil, nil, zerolog.Nop())

	err := svc.SaveEntry(context.Background(), "user-1", "not-a-date", domain.TradeDay{})

	assert.Error(t, err)
	assert.Empty(t, store.saved)
}

func TestService_MutationsPublishEvents(t *testing.T) {
	store := newFakeEntryStore()
	bus := events.NewBus(zerolog.Nop())
	svc := NewService(store, nil, bus, zerolog.Nop())

	_, ch := bus.Subscribe("user-1")

	require.NoError(t, svc.SaveEntry(context.Background(), "user-1", "2024-05-10", domain.TradeDay{PnL: 1}))
	require.NoError(t, svc.DeleteEntry(context.Background(), "user-1", "2024-05-10"))

	saved := <-ch
	assert.Equal(t, events.EntrySaved, saved.Type)
	assert.Equal(t, "2024-05-10", saved.DateKey)

	deleted := <-ch
	assert.Equal(t, events.EntryDeleted, deleted.Type)
}
