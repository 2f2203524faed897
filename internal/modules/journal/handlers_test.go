package journal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrader/tradejournal/internal/auth"
	"github.com/jstrader/tradejournal/internal/domain"
)

func newTestRouter(store *fakeEntryStore) http.Handler {
	svc := NewService(store, nil, nil, zerolog.Nop())
	handler := NewHandler(svc, zerolog.Nop())

	r := chi.NewRouter()
	// Stand-in for the auth middleware.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), "user-1")))
		})
	})
	r.Route("/api/journal", handler.RegisterRoutes)
	return r
}

func TestHandleSaveEntry_RejectsNonNumericPnL(t *testing.T) {
	store := newFakeEntryStore()
	router := newTestRouter(store)

	body := `{"pnl": "千五百円", "rulesFollowed": [], "memo": ""}`
	req := httptest.NewRequest(http.MethodPut, "/api/journal/entries/2024-05-10", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Validation failed before any store call.
	assert.Empty(t, store.saved)
}

func TestHandleSaveEntry_RoundTrip(t *testing.T) {
	store := newFakeEntryStore()
	router := newTestRouter(store)

	body := `{"pnl": 1500, "rulesFollowed": [{"name": "損切りを守る", "followed": true}], "memo": "良い日"}`
	req := httptest.NewRequest(http.MethodPut, "/api/journal/entries/2024-05-10", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, store.entries, "2024-05-10")
	assert.Equal(t, 1500, store.entries["2024-05-10"].PnL)
}

func TestHandleSaveEntry_RejectsBadDateKey(t *testing.T) {
	store := newFakeEntryStore()
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPut, "/api/journal/entries/20240510", strings.NewReader(`{"pnl": 1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetMonth_ReturnsMergedWindow(t *testing.T) {
	store := newFakeEntryStore()
	store.entries["2024-04-28"] = domain.TradeDay{PnL: 100}
	store.entries["2024-05-02"] = domain.TradeDay{PnL: 200}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/journal/2024/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.TradeDataStore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestHandleGetMonth_RejectsBadMonth(t *testing.T) {
	router := newTestRouter(newFakeEntryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/journal/2024/13", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDeleteEntry(t *testing.T) {
	store := newFakeEntryStore()
	store.entries["2024-05-10"] = domain.TradeDay{PnL: 100}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/journal/entries/2024-05-10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"2024-05-10"}, store.deleted)
}

func TestHandleProposeRules_FallsBackToDefault(t *testing.T) {
	router := newTestRouter(newFakeEntryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/journal/entries/2024-05-10/rules", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.TradeRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "新しいルール", got[0].Name)
	assert.True(t, got[0].Followed)
}

func TestHandleProposeRules_CarriesForwardPriorRules(t *testing.T) {
	store := newFakeEntryStore()
	store.entries["2024-05-08"] = domain.TradeDay{
		PnL: -300,
		RulesFollowed: []domain.TradeRule{
			{Name: "損切りを守る", Followed: false},
			{Name: "枚数を増やさない", Followed: true},
		},
	}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/journal/entries/2024-05-10/rules", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.TradeRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	// Names carry over, followed flags reset to true.
	assert.Equal(t, "損切りを守る", got[0].Name)
	assert.True(t, got[0].Followed)
	assert.True(t, got[1].Followed)
}
