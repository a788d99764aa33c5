package accounts

import (
	"encoding/json"
	"net/http"

	"github.com/ayush/microblog/backend/internal/models"
)

// Handler holds the account HTTP handlers. It deserializes the body, calls
// one service operation and maps the result to a status code — no decisions
// of its own.
type Handler struct {
	accounts *Service
}

func NewHandler(accounts *Service) *Handler {
	return &Handler{accounts: accounts}
}

// Register creates a new account. 200 with the stored account on success,
// bare 400 on rejection.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(account)
}

// Login checks credentials. 200 with the matching account on success, bare
// 401 otherwise.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	account, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(account)
}
