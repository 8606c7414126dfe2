// Package dispatch implements a minimal, generic Tool Dispatcher
// satisfying the §4.G contract: it receives the validated principal and
// raw bearer from the Auth Gate's request context and forwards the call
// to the upstream REST API, re-presenting the bearer unchanged. It does
// not implement any resource-specific tool logic — that remains an
// external collaborator per spec.
package dispatch

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oauthgw/prgateway/pkg/auth"
	"github.com/oauthgw/prgateway/pkg/logger"
)

// Dispatcher forwards gated requests to the upstream REST API. Handlers
// built on top of it must not reread headers or perform a second
// validation (§4.G) — the bearer arrives solely via request context.
type Dispatcher struct {
	upstreamBase string
	client       *http.Client
}

// New builds a Dispatcher targeting upstreamBase (e.g.
// "https://api.upstream.example.com"). The inbound request path is
// appended verbatim to upstreamBase.
func New(upstreamBase string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		upstreamBase: strings.TrimRight(upstreamBase, "/"),
		client:       &http.Client{Timeout: timeout},
	}
}

// ServeHTTP implements the §4.G contract end to end: it reads the
// Principal and bearer attached by the Auth Gate, forwards the inbound
// method/path/body to the upstream with the bearer as the outbound
// Authorization header, and copies the upstream's response back — except
// an upstream 401, which is surfaced as 502 (the caller's token was fine
// at our edge; the failure is downstream, not a reason to re-challenge).
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		// A gated route reached without a principal is a routing setup
		// bug, not a caller fault (§4.F: handlers that omit the
		// extraction fail at compile/setup time in the intended design;
		// this is the runtime backstop).
		logger.Error("dispatch: handler reached without a principal in context")
		http.Error(w, "internal configuration error", http.StatusInternalServerError)
		return
	}

	bearer, ok := auth.BearerTokenFromContext(r.Context())
	if !ok {
		logger.Error("dispatch: handler reached without a bearer token in context")
		http.Error(w, "internal configuration error", http.StatusInternalServerError)
		return
	}

	logger.Debugw("dispatching tool call", "user_id", principal.UserID, "team_id", principal.TeamID, "path", r.URL.Path)

	upstreamReq, err := d.buildUpstreamRequest(r, bearer)
	if err != nil {
		logger.Errorf("dispatch: failed to build upstream request: %v", err)
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}

	resp, err := d.client.Do(upstreamReq)
	if err != nil {
		logger.Errorf("dispatch: upstream request failed: %v", err)
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// §4.G: downstream 401 must not imply the caller should
		// re-authenticate with this gateway.
		http.Error(w, "upstream rejected the forwarded credential", http.StatusBadGateway)
		return
	}

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Warnf("dispatch: failed to stream upstream response body: %v", err)
	}
}

func (d *Dispatcher) buildUpstreamRequest(r *http.Request, bearer string) (*http.Request, error) {
	target, err := url.Parse(d.upstreamBase + r.URL.Path)
	if err != nil {
		return nil, err
	}
	target.RawQuery = r.URL.RawQuery

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), r.Body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	return req, nil
}

// copyHeaders forwards response headers verbatim, including hop-by-hop
// ones (Connection, Transfer-Encoding, ...). Acceptable for this §4.G
// stub; a reverse proxy built on top of it would need to strip those.
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}
