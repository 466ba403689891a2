package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat routes. limit wraps only the chat endpoint.
func RegisterRoutes(r chi.Router, h *Handler, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/chat", h.Chat)
}
