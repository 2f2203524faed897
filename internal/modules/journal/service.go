package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/events"
	"github.com/jstrader/tradejournal/internal/jst"
)

// Service orchestrates journal reads and writes: month-scoped fetches with
// previous-month merge, cache handling, and event publication on mutation.
type Service struct {
	store domain.EntryStore
	cache *MonthCache
	bus   *events.Bus
	log   zerolog.Logger
}

// NewService creates a new journal service. The cache and bus are optional;
// nil disables caching / event publication (used in tests).
func NewService(store domain.EntryStore, cache *MonthCache, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		cache: cache,
		bus:   bus,
		log:   log.With().Str("service", "journal").Logger(),
	}
}

// FetchMonth returns the trade data for one civil month merged with the
// preceding month. The extra month backs the calendar's carry-forward
// proposals and the rolling-window stats without a second round trip.
//
// Store failures are recoverable by design: they are logged once and
// surfaced as an empty store so the caller can show a retry affordance.
func (s *Service) FetchMonth(ctx context.Context, userID string, year int, month time.Month) domain.TradeDataStore {
	current := s.fetchCachedMonth(ctx, userID, year, month)

	prevYear, prevMonth := jst.PrevMonth(year, month)
	previous := s.fetchCachedMonth(ctx, userID, prevYear, prevMonth)

	// Merge: current month wins on key collision (there are none in
	// practice, the ranges are disjoint).
	merged := previous.Clone()
	for k, v := range current {
		merged[k] = v
	}
	return merged
}

// fetchCachedMonth serves one month through the cache. A miss falls through
// to the store; a store error degrades to an empty result.
func (s *Service) fetchCachedMonth(ctx context.Context, userID string, year int, month time.Month) domain.TradeDataStore {
	monthKey := fmt.Sprintf("%04d-%02d", year, int(month))

	if s.cache != nil {
		if store, ok := s.cache.Get(userID, monthKey); ok {
			return store
		}
	}

	start, end := jst.MonthRange(year, month)
	store, err := s.store.Range(ctx, userID, start, end)
	if err != nil {
		s.log.Error().Err(err).Str("month", monthKey).Msg("Failed to fetch month, returning empty result")
		return domain.TradeDataStore{}
	}

	if s.cache != nil {
		if err := s.cache.Put(userID, monthKey, store); err != nil {
			s.log.Warn().Err(err).Str("month", monthKey).Msg("Failed to cache month snapshot")
		}
	}
	return store
}

// FetchYear returns the trade data for one calendar year (profile and chart
// views). Bypasses the month cache; the store error policy matches
// FetchMonth.
func (s *Service) FetchYear(ctx context.Context, userID string, year int) domain.TradeDataStore {
	start, end := jst.YearRange(year)
	store, err := s.store.Range(ctx, userID, start, end)
	if err != nil {
		s.log.Error().Err(err).Int("year", year).Msg("Failed to fetch year, returning empty result")
		return domain.TradeDataStore{}
	}
	return store
}

// FetchAll returns every non-deleted entry for the user (all-time stats).
func (s *Service) FetchAll(ctx context.Context, userID string) domain.TradeDataStore {
	store, err := s.store.Range(ctx, userID, "", "")
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to fetch all entries, returning empty result")
		return domain.TradeDataStore{}
	}
	return store
}

// SaveEntry overwrites the entry for one date wholesale, invalidates the
// affected month snapshot and publishes EntrySaved. Save failures propagate
// to the caller; there is no automatic retry.
func (s *Service) SaveEntry(ctx context.Context, userID, dateKey string, day domain.TradeDay) error {
	civil, err := jst.ParseKey(dateKey)
	if err != nil {
		return err
	}

	if err := s.store.Save(ctx, userID, dateKey, day); err != nil {
		s.log.Error().Err(err).Str("date", dateKey).Msg("Failed to save trade entry")
		return err
	}

	s.invalidateMonth(userID, civil)

	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.EntrySaved, UserID: userID, DateKey: dateKey})
	}
	return nil
}

// DeleteEntry removes the record for one date entirely (hard delete).
func (s *Service) DeleteEntry(ctx context.Context, userID, dateKey string) error {
	civil, err := jst.ParseKey(dateKey)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, userID, dateKey); err != nil {
		s.log.Error().Err(err).Str("date", dateKey).Msg("Failed to delete trade entry")
		return err
	}

	s.invalidateMonth(userID, civil)

	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.EntryDeleted, UserID: userID, DateKey: dateKey})
	}
	return nil
}

func (s *Service) invalidateMonth(userID string, civil jst.CivilDate) {
	if s.cache == nil {
		return
	}
	monthKey := fmt.Sprintf("%04d-%02d", civil.Year, int(civil.Month))
	if err := s.cache.Invalidate(userID, monthKey); err != nil {
		s.log.Warn().Err(err).Str("month", monthKey).Msg("Failed to invalidate month snapshot")
	}
}
