package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/efreitasn/stocksim/internal/feed"
)

// FeedHandler upgrades GET /feed to a websocket and pushes the full price
// snapshot to the client on every tick. Delivery follows the hub's
// best-effort contract: a slow client misses snapshots instead of
// blocking the tick loop.
type FeedHandler struct {
	hub      *feed.Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(hub *feed.Hub, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Browser clients connect from arbitrary origins; the feed is
			// read-only public data.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe handles GET /feed.
func (h *FeedHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}
	defer conn.Close()

	id, snapshots := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	h.logger.Debug("feed subscriber connected", slog.String("subscriber_id", id))

	// Reader goroutine: the client sends nothing meaningful, but reading
	// is how we notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			if err := conn.WriteJSON(buildQuoteResponses(snapshot)); err != nil {
				h.logger.Debug("feed write failed",
					slog.String("subscriber_id", id),
					slog.String("error", err.Error()),
				)
				return
			}
		}
	}
}
