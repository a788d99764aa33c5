package messages

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/microblog/backend/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Handler holds the message HTTP handlers. Like the account handlers, these
// are pass-through: decode, call the service, map the outcome to a status.
type Handler struct {
	messages *Service
}

func NewHandler(messages *Service) *Handler {
	return &Handler{messages: messages}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// Create posts a new message. 200 with the stored message on success, bare
// 400 on rejection.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	msg, err := h.messages.Create(r.Context(), req.AuthorID, req.Text, req.PostedAtEpochMillis)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// GetAll returns every stored message. Always 200.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.messages.GetAll(r.Context()))
}

// GetByAuthor returns the messages posted by one account. Always 200, empty
// array included.
func (h *Handler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := pathID(r, "account_id")
	if !ok {
		http.Error(w, `{"error":"invalid account id"}`, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.messages.GetByAuthor(r.Context(), authorID))
}

// GetByID returns one message, or an empty 200 body when it doesn't exist.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "message_id")
	if !ok {
		http.Error(w, `{"error":"invalid message id"}`, http.StatusBadRequest)
		return
	}

	msg, err := h.messages.GetByID(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// UpdateText patches the text of a message. 200 with the updated message on
// success, bare 400 on rejection.
func (h *Handler) UpdateText(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "message_id")
	if !ok {
		http.Error(w, `{"error":"invalid message id"}`, http.StatusBadRequest)
		return
	}

	var req models.UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	msg, err := h.messages.UpdateText(r.Context(), id, req.Text)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// DeleteByID removes a message. 200 with the deleted snapshot when something
// was deleted, empty 200 body when nothing was.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "message_id")
	if !ok {
		http.Error(w, `{"error":"invalid message id"}`, http.StatusBadRequest)
		return
	}

	msg, err := h.messages.DeleteByID(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
