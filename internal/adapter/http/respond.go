package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"wabridge/internal/core/domain"
)

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// respondError maps the domain error set to HTTP statuses. Anything
// outside the set is an internal error and is not detailed to the client.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var (
		badReq *domain.BadRequestError
		quota  *domain.QuotaExceededError
		media  *domain.MediaUploadError
	)
	switch {
	case errors.As(err, &badReq):
		h.respondJSON(w, http.StatusBadRequest, map[string]any{"message": badReq.Error()})
	case errors.As(err, &quota):
		h.respondJSON(w, http.StatusBadRequest, map[string]any{
			"message":   quota.Error(),
			"remaining": quota.Remaining,
		})
	case errors.Is(err, domain.ErrNoValidRecipients):
		h.respondJSON(w, http.StatusBadRequest, map[string]any{"message": "no valid numbers to send the campaign"})
	case errors.As(err, &media):
		h.respondJSON(w, http.StatusBadRequest, map[string]any{"message": media.Error()})
	case errors.Is(err, domain.ErrChatNotFound):
		h.respondJSON(w, http.StatusNotFound, map[string]any{"message": "chat not found"})
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondJSON(w, http.StatusInternalServerError, map[string]any{"message": "internal server error"})
	}
}
