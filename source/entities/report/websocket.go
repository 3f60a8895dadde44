package report

import (
	"context"
	"net/http"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"

	"github.com/gorilla/websocket"
)

const WS_ACTION_REFRESH = "refresh"

type StatsWSMessage struct {
	Action string `json:"action"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DashboardStatsWebSocket sends one stats frame on connect and one more per
// {"action":"refresh"} message.
func (h *Handler) DashboardStatsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if err := h.writeStats(r.Context(), conn); err != nil {
		return
	}

	for {
		msg := StatsWSMessage{}
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		if msg.Action != WS_ACTION_REFRESH {
			if err := conn.WriteJSON(schemas.ErrorResponse{Detail: "unknown action: " + msg.Action}); err != nil {
				break
			}
			continue
		}

		if err := h.writeStats(r.Context(), conn); err != nil {
			break
		}
	}
}

func (h *Handler) writeStats(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(ctx, database.MONGO_TIMEOUT)
	defer cancel()

	stats, err := h.dashboardStats(ctx)
	if err != nil {
		h.log.Error("cannot compute dashboard stats", "error", err)
		return conn.WriteJSON(schemas.ErrorResponse{Detail: err.Error()})
	}
	return conn.WriteJSON(stats)
}
