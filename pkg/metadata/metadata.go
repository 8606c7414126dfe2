// Package metadata implements the Metadata Publisher (§4.A): the RFC 9728
// OAuth Protected Resource discovery document, assembled once at startup
// and served read-only thereafter.
package metadata

import (
	"encoding/json"
	"net/http"
)

// WellKnownPath is the RFC 9728 standard path for the Protected Resource
// metadata document. The path is case-sensitive and exact (§4.A) — no
// subpath matching, unlike some discovery client implementations.
const WellKnownPath = "/.well-known/oauth-protected-resource"

// Document is the immutable RFC 9728 metadata value (§3 Data Model). It is
// built once from configuration and never mutated.
type Document struct {
	Resource             string   `json:"resource"`
	AuthorizationServers []string `json:"authorization_servers"`
}

// New builds the Metadata Document from the upstream resource URL and its
// single authorization server, per §3.
func New(resource, authorizationServer string) Document {
	return Document{
		Resource:             resource,
		AuthorizationServers: []string{authorizationServer},
	}
}

// Handler serves the pre-rendered Document. The JSON encoding happens once
// at construction, not per-request, so repeated GETs are byte-identical
// (§8 round-trip property) and the hot path is a single write.
type Handler struct {
	body []byte
}

// NewHandler pre-renders doc to JSON. A marshal failure here is a startup
// configuration bug, not a runtime condition, so it panics rather than
// returning an error that every caller would have to check.
func NewHandler(doc Document) *Handler {
	body, err := json.Marshal(doc)
	if err != nil {
		panic("metadata: document must always marshal: " + err.Error())
	}
	return &Handler{body: body}
}

// ServeHTTP implements §4.A: GET returns 200 with the document;
// any other method returns 405.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.body)
}
