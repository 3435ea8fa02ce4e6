package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"log/slog"

	"wabridge/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. Every route sits behind the JWT auth middleware; the authenticated
// sender identity is the only source of the userPhoneID downstream.
type Handler struct {
	campaigns port.CampaignUseCase
	chats     port.ChatUseCase
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(campaigns port.CampaignUseCase, chats port.ChatUseCase, auth *Auth, logger *slog.Logger) *Handler {
	h := &Handler{campaigns: campaigns, chats: chats, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Post("/campaigns/send", h.handleSendCampaign)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/templates", h.handleListTemplates)
		r.Get("/chats", h.handleListChats)
		r.Get("/chats/{threadID}/messages", h.handleListMessages)
		r.Put("/chats/client", h.handleRenameClient)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
