package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type chatView struct {
	ThreadID    string `json:"threadId"`
	ClientPhone string `json:"clientPhone"`
	ClientName  string `json:"clientName"`
	CreatedAt   int64  `json:"createdAt"`
}

type messageView struct {
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chats.ListChats(r.Context(), SenderFromContext(r.Context()))
	if err != nil {
		h.respondError(w, err)
		return
	}

	views := make([]chatView, len(chats))
	for i, c := range chats {
		views[i] = chatView{
			ThreadID:    c.ThreadID,
			ClientPhone: c.ClientPhone,
			ClientName:  c.ClientName,
			CreatedAt:   c.CreatedAt.UnixMilli(),
		}
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"chats": views})
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	messages, err := h.chats.ListMessages(r.Context(), threadID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	views := make([]messageView, len(messages))
	for i, m := range messages {
		views[i] = messageView{
			Sender:    m.Sender,
			Body:      m.Body,
			Timestamp: m.Timestamp.UnixMilli(),
		}
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"messages": views})
}

// handleRenameClient updates a chat client's display name and notifies the
// sender's live connections.
func (h *Handler) handleRenameClient(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ClientPhone string `json:"clientPhone"`
		Name        string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid JSON"})
		return
	}
	if body.ClientPhone == "" || body.Name == "" {
		h.respondJSON(w, http.StatusBadRequest, map[string]any{"message": "clientPhone and name are required"})
		return
	}

	if err := h.chats.RenameClient(r.Context(), SenderFromContext(r.Context()), body.ClientPhone, body.Name); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"message": "client name updated"})
}
