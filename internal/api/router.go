package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter registers all API endpoints on a chi router.
func NewRouter(h *HandlerProvider) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/games", h.ListGamesHandler)
		r.Get("/games/{gameId}", h.GetGameHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", h.GetProfileHandler)
			r.Get("/orders", h.ListOrdersHandler)
			r.Post("/orders", h.PlaceOrderHandler)
			r.Get("/add-money", h.ListAddMoneyHandler)
			r.Post("/add-money", h.CreateAddMoneyHandler)

			r.Get("/live/profile", h.LiveProfileHandler)
			r.Get("/live/orders", h.LiveOrdersHandler)
			r.Get("/live/add-money", h.LiveAddMoneyHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)

			r.Get("/stats", h.AdminStatsHandler)
			r.Get("/orders", h.RecentOrdersHandler)
			r.Post("/orders/{orderId}/status", h.UpdateOrderStatusHandler)
			r.Get("/add-money", h.ListAddMoneyByStatusHandler)
			r.Post("/add-money/{requestId}/approve", h.ApproveAddMoneyHandler)
			r.Post("/add-money/{requestId}/reject", h.RejectAddMoneyHandler)

			r.Get("/live/orders", h.AdminLiveOrdersHandler)
			r.Get("/live/add-money", h.AdminLiveAddMoneyHandler)
			r.Get("/live/stats", h.AdminLiveStatsHandler)
		})
	})

	return r
}
