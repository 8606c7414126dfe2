package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesDocument(t *testing.T) {
	doc := New("https://api.example.com", "https://example.com/oauth")
	h := NewHandler(doc)

	req := httptest.NewRequest(http.MethodGet, WellKnownPath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"resource":"https://api.example.com","authorization_servers":["https://example.com/oauth"]}`, rec.Body.String())
}

func TestHandlerRejectsNonGET(t *testing.T) {
	h := NewHandler(New("https://api.example.com", "https://example.com/oauth"))

	req := httptest.NewRequest(http.MethodPost, WellKnownPath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlerIsByteIdenticalAcrossCalls(t *testing.T) {
	h := NewHandler(New("https://api.example.com", "https://example.com/oauth"))

	req := httptest.NewRequest(http.MethodGet, WellKnownPath, nil)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)

	assert.Equal(t, first.Body.String(), second.Body.String())
}
