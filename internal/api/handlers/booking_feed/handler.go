package booking_feed

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgFeedUnavailable     = "лента изменений недоступна"

	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	feed   FeedSubscriber
	logger Logger
}

func NewHandler(feed FeedSubscriber, logger Logger) *Handler {
	return &Handler{
		feed:   feed,
		logger: logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/admin/bookings/feed (websocket)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings/feed - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	messages, err := h.feed.Stream(ctx, tenantID)
	if err != nil {
		h.logger.Error("GET /admin/bookings/feed - Failed to subscribe: tenant=%s, error=%v", tenantID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgFeedUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту
		h.logger.Warn("GET /admin/bookings/feed - Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("GET /admin/bookings/feed - Client connected: tenant=%s", tenantID)

	// входящие сообщения игнорируются, чтение нужно для обнаружения отключения
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /admin/bookings/feed - Client disconnected: tenant=%s", tenantID)
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg, ok := <-messages:
			if !ok {
				h.logger.Warn("GET /admin/bookings/feed - Subscription closed: tenant=%s", tenantID)
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Warn("GET /admin/bookings/feed - Write failed: tenant=%s, error=%v", tenantID, err)
				return
			}
		}
	}
}
