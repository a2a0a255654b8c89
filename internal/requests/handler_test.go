package requests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) http.Handler {
	h := NewHandler(svc, nil)
	r := chi.NewRouter()
	r.Post("/providers/response", h.ProviderResponse)
	r.Get("/requests/{id}/status", h.Status)
	return r
}

func TestProviderResponseEndpoint(t *testing.T) {
	svc, repo, _, _ := newTestService(nil)
	req := seedRequest(t, repo, StatusProviderNotified)
	router := newTestRouter(svc)

	body := fmt.Sprintf(`{"request_id":%q,"provider_id":%q,"accepted":true}`,
		req.ID, uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/providers/response", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload["message"], "confirmée pour vous")
}

func TestProviderResponseValidation(t *testing.T) {
	svc, _, _, _ := newTestService(nil)
	router := newTestRouter(svc)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"bad request id", `{"request_id":"nope","provider_id":"nope"}`, http.StatusBadRequest},
		{
			"unknown request",
			fmt.Sprintf(`{"request_id":%q,"provider_id":%q,"accepted":false}`, uuid.New(), uuid.New()),
			http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/providers/response", bytes.NewBufferString(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestStatusEndpoint(t *testing.T) {
	svc, repo, _, _ := newTestService(nil)
	req := seedRequest(t, repo, StatusProviderNotified)
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/requests/"+req.ID.String()+"/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, req.Reference(), payload["reference"])
	assert.Equal(t, string(StatusProviderNotified), payload["status"])
	assert.NotEmpty(t, payload["summary"])
}

func TestStatusEndpointErrors(t *testing.T) {
	svc, _, _, _ := newTestService(nil)
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/requests/not-a-uuid/status", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/requests/"+uuid.NewString()+"/status", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
