// Package challenge implements the Challenge Emitter (§4.D): RFC
// 6750-compliant 401 responses carrying a WWW-Authenticate header that
// points the caller at the resource metadata document.
package challenge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/oauthgw/prgateway/pkg/logger"
)

// Code names the `error` parameter of a WWW-Authenticate challenge and the
// body's "error" field. The zero value, CodeNone, omits the error
// parameter entirely — used for the bare "no credentials presented" case.
type Code string

const (
	// CodeNone is emitted when no Authorization header was present at
	// all; RFC 6750 permits a challenge with no error code in this case.
	CodeNone Code = ""
	// CodeInvalidRequest marks an extractor failure (malformed header or
	// unsupported scheme).
	CodeInvalidRequest Code = "invalid_request"
	// CodeInvalidToken marks a validator failure (upstream rejected the
	// token, or its response could not be turned into a Principal).
	CodeInvalidToken Code = "invalid_token"
)

// Emitter builds 401 challenges. realm and metadataURL are fixed at
// construction from PUBLIC_BASE_URL, the base under which the Metadata
// Publisher's document is served (§9 design notes: discovery + challenge
// coupling).
type Emitter struct {
	realm       string
	metadataURL string
}

// NewEmitter builds an Emitter. realm is the gateway's own
// PUBLIC_BASE_URL, the same configuration source metadataURL (the
// gateway's public /.well-known/oauth-protected-resource URL) is derived
// from — §9 requires both to come from one source so they stay coupled.
func NewEmitter(realm, metadataURL string) *Emitter {
	return &Emitter{realm: realm, metadataURL: metadataURL}
}

// Write emits a 401 response with the WWW-Authenticate header and a JSON
// body. description is safe, human-readable text; it must never contain a
// bearer token (§7: tokens are never included in any error payload).
func (e *Emitter) Write(w http.ResponseWriter, code Code, description string) {
	w.Header().Set("WWW-Authenticate", e.headerValue(code))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	body := struct {
		Error       string `json:"error,omitempty"`
		Description string `json:"error_description,omitempty"`
	}{
		Error:       string(code),
		Description: description,
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warnf("challenge: failed to encode 401 body: %v", err)
	}
}

// headerValue renders the WWW-Authenticate value per RFC 6750 §3 / RFC
// 9728: realm and resource_metadata are always present; error is appended
// only when code is non-empty.
func (e *Emitter) headerValue(code Code) string {
	parts := []string{
		fmt.Sprintf(`realm=%q`, e.realm),
		fmt.Sprintf(`resource_metadata=%q`, e.metadataURL),
	}
	if code != CodeNone {
		parts = append(parts, fmt.Sprintf(`error=%q`, string(code)))
	}
	return "Bearer " + strings.Join(parts, ", ")
}

// Unavailable writes the 503 response for a TransportFailure (§4.E step
// 2): no challenge header, no principal leaked, caller retries per
// Retry-After.
func Unavailable(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}{
		Error:       "temporarily_unavailable",
		Description: "token validation upstream did not respond",
	})
}
