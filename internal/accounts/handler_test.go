package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/microblog/backend/internal/models"
)

func newTestRouter(store *fakeAccountStore) *chi.Mux {
	h := NewHandler(NewService(store, zerolog.Nop()))
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid account", `{"username":"bob","password":"abcd"}`, http.StatusOK},
		{"password too short", `{"username":"bob","password":"abc"}`, http.StatusBadRequest},
		{"empty username", `{"username":"","password":"abcd"}`, http.StatusBadRequest},
		{"malformed body", `{"username":`, http.StatusBadRequest},
		{"id in body is ignored", `{"id":99,"username":"carol","password":"abcd"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(newFakeAccountStore())
			w := doRequest(t, router, http.MethodPost, "/register", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRegisterEndpointAssignsID(t *testing.T) {
	router := newTestRouter(newFakeAccountStore())
	w := doRequest(t, router, http.MethodPost, "/register", `{"id":99,"username":"bob","password":"abcd"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var account models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, "bob", account.Username)
	assert.Equal(t, "abcd", account.Password)
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	router := newTestRouter(newFakeAccountStore())
	w := doRequest(t, router, http.MethodPost, "/register", `{"username":"bob","password":"abcd"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/register", `{"username":"bob","password":"efgh"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestLoginEndpoint(t *testing.T) {
	store := newFakeAccountStore()
	router := newTestRouter(store)
	w := doRequest(t, router, http.MethodPost, "/register", `{"username":"bob","password":"abcd"}`)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("matching credentials", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/login", `{"username":"bob","password":"abcd"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var account models.Account
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
		assert.Equal(t, int64(1), account.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/login", `{"username":"bob","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, w.Body.Len())
	})

	t.Run("unknown username", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/login", `{"username":"nobody","password":"abcd"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/login", `not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
