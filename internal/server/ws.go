package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/jstrader/tradejournal/internal/auth"
	"github.com/jstrader/tradejournal/internal/events"
)

// WebSocketHandler streams journal events to connected sessions so a save in
// one browser tab refreshes the calendar in another.
type WebSocketHandler struct {
	bus            *events.Bus
	originPatterns []string
	log            zerolog.Logger
}

// NewWebSocketHandler creates a new websocket event stream handler. Origin
// patterns are host patterns (e.g. "app.example.com", "*.example.com").
func NewWebSocketHandler(bus *events.Bus, originPatterns []string, log zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		bus:            bus,
		originPatterns: originPatterns,
		log:            log.With().Str("handler", "websocket").Logger(),
	}
}

// ServeHTTP upgrades the request and forwards the user's event stream until
// the client goes away.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	// Browsers never preflight websocket upgrades, so the CORS middleware
	// offers no origin protection here; the upgrade matches origins itself.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection dropped")

	subID, ch := h.bus.Subscribe(userID)
	defer h.bus.Unsubscribe(subID)

	h.log.Debug().Str("subscription", subID).Msg("WebSocket session started")

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "event bus closed")
				return
			}
			if err := h.writeEvent(ctx, conn, event); err != nil {
				closeStatus := websocket.CloseStatus(err)
				if closeStatus != websocket.StatusNormalClosure && closeStatus != websocket.StatusGoingAway {
					h.log.Debug().Err(err).Msg("WebSocket write failed")
				}
				return
			}
		}
	}
}

func (h *WebSocketHandler) writeEvent(ctx context.Context, conn *websocket.Conn, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
