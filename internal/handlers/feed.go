package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/talentaworks/talenta-backend/internal/services"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

type FeedHandler struct {
	feed *services.FeedService
}

func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// Stream handles GET /ws/feed and streams activity events to the client until
// it disconnects. The connection is read-only from the client's perspective;
// incoming messages are drained just to detect the close.
func (h *FeedHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed websocket upgrade failed: %v", err)
		return
	}

	h.feed.Register(conn)
	defer func() {
		h.feed.Unregister(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
