package api

import (
	"fmt"
	"net/http"
	"time"
)

// NewServer creates and returns a configured *http.Server for the ledger API.
// Websocket connections clear these deadlines once upgraded.
func NewServer(port uint16, h *HandlerProvider) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewRouter(h),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
