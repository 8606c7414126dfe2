package token

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/oauthgw/prgateway/pkg/auth"
)

// Outcome classifies the result of a single introspection call.
type Outcome int

const (
	// Valid means the upstream returned 200 with a parseable Principal.
	Valid Outcome = iota
	// InvalidToken means the upstream rejected the token (401) or returned
	// a 200 body the gateway could not turn into a Principal. Never cached.
	InvalidToken
	// TransportFailure means a network error, timeout, or any other HTTP
	// status — treated as upstream misconfiguration, not a caller fault.
	// Never cached.
	TransportFailure
)

// Introspector performs the one external IO step of the Token Validator:
// an authenticated GET against the upstream's introspection endpoint.
type Introspector struct {
	url    string
	client *http.Client
}

// NewIntrospector builds an Introspector targeting introspectURL. client is
// expected to carry the caller's configured timeout and to reuse
// connections (keep-alive) to keep cache-miss latency low.
func NewIntrospector(introspectURL string, client *http.Client) *Introspector {
	return &Introspector{url: introspectURL, client: client}
}

// introspectionBody is the upstream's expected 200 response shape. Both
// key variants named in §4.C are accepted; scopes may arrive as an array
// or as a space-delimited string.
type introspectionBody struct {
	UserID string `json:"user_id"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
	Team   string `json:"team"`
	Scopes any    `json:"scopes"`
}

// Introspect validates token against the upstream introspection endpoint
// per §4.C's wire contract. It never holds any lock — callers are
// responsible for any caching around this call.
func (in *Introspector) Introspect(ctx context.Context, token string) (auth.Principal, Outcome) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.url, nil)
	if err != nil {
		return auth.Principal{}, TransportFailure
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := in.client.Do(req)
	if err != nil {
		return auth.Principal{}, TransportFailure
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return parsePrincipal(resp.Body)
	case resp.StatusCode == http.StatusUnauthorized:
		return auth.Principal{}, InvalidToken
	default:
		return auth.Principal{}, TransportFailure
	}
}

// parsePrincipal maps a 200 introspection body to a Principal. Missing or
// malformed required fields are an InvalidToken outcome (§4.C parsing
// policy), not a TransportFailure — the upstream considers the token
// valid, but the gateway cannot authenticate the caller with it.
func parsePrincipal(body io.Reader) (auth.Principal, Outcome) {
	const maxBodySize = 64 * 1024
	var parsed introspectionBody
	if err := json.NewDecoder(io.LimitReader(body, maxBodySize)).Decode(&parsed); err != nil {
		return auth.Principal{}, InvalidToken
	}

	userID := firstNonEmpty(parsed.UserID, parsed.User)
	teamID := firstNonEmpty(parsed.TeamID, parsed.Team)
	if userID == "" || teamID == "" {
		return auth.Principal{}, InvalidToken
	}

	scopes, ok := parseScopes(parsed.Scopes)
	if !ok {
		return auth.Principal{}, InvalidToken
	}

	return auth.NewPrincipal(userID, teamID, scopes), Valid
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseScopes accepts either a JSON array of strings or a single
// space-delimited string, per §4.C.
func parseScopes(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case string:
		return strings.Fields(v), true
	case []any:
		scopes := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			scopes = append(scopes, s)
		}
		return scopes, true
	default:
		return nil, false
	}
}
