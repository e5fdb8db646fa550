package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fastprodman/TopupLedger/internal/repos/addmoney"
	"github.com/fastprodman/TopupLedger/internal/repos/orders"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
	"github.com/fastprodman/TopupLedger/internal/services/liveview"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Auth travels in access_token, never in cookies.
	CheckOrigin: func(*http.Request) bool { return true },
}

// liveMessage is one websocket frame of a live view.
type liveMessage[T any] struct {
	Data  T         `json:"data"`
	Error string    `json:"error,omitempty"`
	At    time.Time `json:"at"`
}

// serveStream upgrades the request and forwards every snapshot of the stream
// opened by open until the client goes away or the stream ends.
func serveStream[T any](w http.ResponseWriter, r *http.Request, open func(ctx context.Context) *liveview.Stream[T]) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	stream := open(ctx)
	defer stream.Close()

	// The reader only exists to process control frames and notice the
	// client hanging up.
	_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	go func() {
		defer cancel()

		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(livePingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(liveWriteWait))
			return

		case snap, ok := <-stream.C:
			if !ok {
				return
			}

			msg := liveMessage[T]{Data: snap.Data, At: snap.At}
			if snap.Err != nil {
				_, msg.Error = statusFor(snap.Err)
			}

			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))

			err := conn.WriteJSON(msg)
			if err != nil {
				return
			}

		case <-ping.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait))
			if err != nil {
				return
			}
		}
	}
}

// LiveProfileHandler handles GET /me/live/profile
func (h *HandlerProvider) LiveProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid := userFrom(r.Context()).ID

	serveStream(w, r, func(ctx context.Context) *liveview.Stream[users.User] {
		return h.svc.WatchProfile(ctx, uid)
	})
}

// LiveOrdersHandler handles GET /me/live/orders
func (h *HandlerProvider) LiveOrdersHandler(w http.ResponseWriter, r *http.Request) {
	uid := userFrom(r.Context()).ID

	serveStream(w, r, func(ctx context.Context) *liveview.Stream[[]orders.Order] {
		return h.svc.WatchUserOrders(ctx, uid)
	})
}

// LiveAddMoneyHandler handles GET /me/live/add-money
func (h *HandlerProvider) LiveAddMoneyHandler(w http.ResponseWriter, r *http.Request) {
	uid := userFrom(r.Context()).ID

	serveStream(w, r, func(ctx context.Context) *liveview.Stream[[]addmoney.Request] {
		return h.svc.WatchUserAddMoney(ctx, uid)
	})
}

// AdminLiveOrdersHandler handles GET /admin/live/orders
func (h *HandlerProvider) AdminLiveOrdersHandler(w http.ResponseWriter, r *http.Request) {
	serveStream(w, r, h.svc.WatchRecentOrders)
}

// AdminLiveAddMoneyHandler handles GET /admin/live/add-money
func (h *HandlerProvider) AdminLiveAddMoneyHandler(w http.ResponseWriter, r *http.Request) {
	serveStream(w, r, h.svc.WatchPendingAddMoney)
}

// AdminLiveStatsHandler handles GET /admin/live/stats
func (h *HandlerProvider) AdminLiveStatsHandler(w http.ResponseWriter, r *http.Request) {
	serveStream(w, r, h.svc.WatchAdminStats)
}
