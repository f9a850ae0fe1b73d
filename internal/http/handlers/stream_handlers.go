package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// latestItems keeps only the newest visible list for a slow writer.
type latestItems struct {
	mu sync.Mutex
	ch chan []models.Item
}

func (l *latestItems) push(items []models.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	select {
	case <-l.ch:
	default:
	}
	l.ch <- items
}

// StreamItemsHandler godoc
// @Summary Live item list over WebSocket
// @Description Pushes the visible list on every change. Text frames sent by the client replace the search query.
// @Tags items
// @Security BearerAuth
// @Param q query string false "Initial name search"
// @Param token query string false "JWT, for clients that cannot set headers"
// @Success 101 {object} StreamMessage
// @Failure 503 {string} string "Store unavailable"
// @Router /items/ws [get]
func StreamItemsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates := &latestItems{ch: make(chan []models.Item, 1)}
	vm, err := inventory.NewViewModel(store, updates.push,
		inventory.WithFilter(inventory.Filter{Query: r.URL.Query().Get("q")}))
	if err != nil {
		logger.Error("item stream subscribe failed", zap.Error(err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "inventory store unavailable"),
			time.Now().Add(writeWait))
		return
	}
	defer vm.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("item stream read failed", zap.Error(err))
				}
				return
			}
			if mt == websocket.TextMessage {
				vm.SetSearchQuery(string(data))
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case items := <-updates.ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := conn.WriteJSON(StreamMessage{
				Data: toItemResponses(items),
				Meta: Meta{TotalCount: len(items)},
			})
			if err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
