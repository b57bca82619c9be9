package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// PopupFeed is the read side of the popup sink
type PopupFeed interface {
	Recent() []*model.PopupRecord
	Subscribe() (<-chan *model.PopupRecord, func())
}

// PopupHandler serves popups to map widgets
type PopupHandler struct {
	feed     PopupFeed
	upgrader websocket.Upgrader
}

// NewPopupHandler creates a new PopupHandler
func NewPopupHandler(feed PopupFeed) *PopupHandler {
	return &PopupHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// map widgets are embedded on portal pages served from another origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// List returns retained popups, oldest first
func (h *PopupHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.feed.Recent())
}

// Stream upgrades to a websocket and pushes every new popup as JSON
func (h *PopupHandler) Stream(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.From(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Failed to upgrade popup stream", "error", err)
		return
	}
	defer conn.Close()

	records, cancel := h.feed.Subscribe()
	defer cancel()

	// reader goroutine detects client close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	logger.Debug("Popup stream opened")
	for {
		select {
		case <-closed:
			logger.Debug("Popup stream closed by client")
			return

		case rec, ok := <-records:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(rec); err != nil {
				logger.Debug("Failed to write popup", "error", err)
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
